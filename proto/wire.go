package proto

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshal encodes f in protobuf wire format. Zero values are omitted, as a
// proto3 encoder would.
func (f *Frame) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, f.Tick)
	b = appendDouble(b, 2, f.Width)
	b = appendDouble(b, 3, f.Height)
	b = appendMessage(b, 4, f.Left.marshal())
	b = appendMessage(b, 5, f.Right.marshal())
	b = appendMessage(b, 6, f.Ball.marshal())
	b = appendVarint(b, 7, uint64(f.LeftScore))
	b = appendVarint(b, 8, uint64(f.RightScore))
	b = appendMessage(b, 9, f.Events.marshal())
	return b
}

func (p *Paddle) marshal() []byte {
	var b []byte
	b = appendDouble(b, 1, p.X)
	b = appendDouble(b, 2, p.Y)
	b = appendDouble(b, 3, p.Width)
	b = appendDouble(b, 4, p.Height)
	b = appendString(b, 5, p.Color)
	b = appendBool(b, 6, p.Heuristic)
	return b
}

func (bl *Ball) marshal() []byte {
	var b []byte
	b = appendDouble(b, 1, bl.X)
	b = appendDouble(b, 2, bl.Y)
	b = appendDouble(b, 3, bl.Radius)
	b = appendDouble(b, 4, bl.Dx)
	b = appendDouble(b, 5, bl.Dy)
	b = appendString(b, 6, bl.Color)
	return b
}

func (e *Events) marshal() []byte {
	var b []byte
	b = appendBool(b, 1, e.WallBounce)
	b = appendBool(b, 2, e.PaddleHit)
	b = appendVarint(b, 3, uint64(e.HitSide))
	b = appendDouble(b, 4, e.CollidePoint)
	b = appendBool(b, 5, e.Scored)
	b = appendVarint(b, 6, uint64(e.Scorer))
	return b
}

// Unmarshal decodes a protobuf-encoded Frame. Unknown fields are skipped.
func Unmarshal(b []byte) (Frame, error) {
	var f Frame
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeVarint(typ, b, &f.Tick)
		case 2:
			return consumeDouble(typ, b, &f.Width)
		case 3:
			return consumeDouble(typ, b, &f.Height)
		case 4:
			return consumeMessage(typ, b, f.Left.unmarshal)
		case 5:
			return consumeMessage(typ, b, f.Right.unmarshal)
		case 6:
			return consumeMessage(typ, b, f.Ball.unmarshal)
		case 7:
			return consumeInt32(typ, b, &f.LeftScore)
		case 8:
			return consumeInt32(typ, b, &f.RightScore)
		case 9:
			return consumeMessage(typ, b, f.Events.unmarshal)
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}

func (p *Paddle) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeDouble(typ, b, &p.X)
		case 2:
			return consumeDouble(typ, b, &p.Y)
		case 3:
			return consumeDouble(typ, b, &p.Width)
		case 4:
			return consumeDouble(typ, b, &p.Height)
		case 5:
			return consumeString(typ, b, &p.Color)
		case 6:
			return consumeBool(typ, b, &p.Heuristic)
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

func (bl *Ball) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeDouble(typ, b, &bl.X)
		case 2:
			return consumeDouble(typ, b, &bl.Y)
		case 3:
			return consumeDouble(typ, b, &bl.Radius)
		case 4:
			return consumeDouble(typ, b, &bl.Dx)
		case 5:
			return consumeDouble(typ, b, &bl.Dy)
		case 6:
			return consumeString(typ, b, &bl.Color)
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

func (e *Events) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeBool(typ, b, &e.WallBounce)
		case 2:
			return consumeBool(typ, b, &e.PaddleHit)
		case 3:
			return consumeSide(typ, b, &e.HitSide)
		case 4:
			return consumeDouble(typ, b, &e.CollidePoint)
		case 5:
			return consumeBool(typ, b, &e.Scored)
		case 6:
			return consumeSide(typ, b, &e.Scorer)
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

// encoding helpers

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	if len(msg) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// decoding helpers

type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func consumeFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		if m < 0 {
			return fmt.Errorf("field %d: %w", num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}

func wireTypeError(want, got protowire.Type) error {
	return fmt.Errorf("wire type %d, want %d", got, want)
}

func consumeVarint(typ protowire.Type, b []byte, dst *uint64) (int, error) {
	if typ != protowire.VarintType {
		return 0, wireTypeError(protowire.VarintType, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	*dst = v
	return n, nil
}

func consumeInt32(typ protowire.Type, b []byte, dst *int32) (int, error) {
	var v uint64
	n, err := consumeVarint(typ, b, &v)
	*dst = int32(v)
	return n, err
}

func consumeSide(typ protowire.Type, b []byte, dst *Side) (int, error) {
	var v uint64
	n, err := consumeVarint(typ, b, &v)
	*dst = Side(v)
	return n, err
}

func consumeBool(typ protowire.Type, b []byte, dst *bool) (int, error) {
	var v uint64
	n, err := consumeVarint(typ, b, &v)
	*dst = protowire.DecodeBool(v)
	return n, err
}

func consumeDouble(typ protowire.Type, b []byte, dst *float64) (int, error) {
	if typ != protowire.Fixed64Type {
		return 0, wireTypeError(protowire.Fixed64Type, typ)
	}
	v, n := protowire.ConsumeFixed64(b)
	*dst = math.Float64frombits(v)
	return n, nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, wireTypeError(protowire.BytesType, typ)
	}
	v, n := protowire.ConsumeString(b)
	*dst = v
	return n, nil
}

func consumeMessage(typ protowire.Type, b []byte, decode func([]byte) error) (int, error) {
	if typ != protowire.BytesType {
		return 0, wireTypeError(protowire.BytesType, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	return n, decode(v)
}
