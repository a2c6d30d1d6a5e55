package proto

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec selects how frames are encoded for a spectator.
type Codec int

const (
	Protobuf Codec = iota
	Msgpack
)

func (c Codec) String() string {
	if c == Msgpack {
		return "msgpack"
	}
	return "protobuf"
}

// ParseCodec maps a query value to a Codec. An empty name means Protobuf.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "", "protobuf", "proto":
		return Protobuf, nil
	case "msgpack":
		return Msgpack, nil
	}
	return Protobuf, fmt.Errorf("unknown codec %q", name)
}

// Encode serializes f with the codec.
func (c Codec) Encode(f *Frame) ([]byte, error) {
	if c == Msgpack {
		b, err := msgpack.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encode msgpack frame: %w", err)
		}
		return b, nil
	}
	return f.Marshal(), nil
}

// Decode is the inverse of Encode.
func (c Codec) Decode(b []byte) (Frame, error) {
	if c == Msgpack {
		var f Frame
		if err := msgpack.Unmarshal(b, &f); err != nil {
			return Frame{}, fmt.Errorf("decode msgpack frame: %w", err)
		}
		return f, nil
	}
	return Unmarshal(b)
}
