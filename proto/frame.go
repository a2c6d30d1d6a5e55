// Package proto encodes frames for spectators. The protobuf encoding follows
// pong.proto and is written directly with protowire.
package proto

import (
	"github.com/mo-shahab/go-pong/game"
	"github.com/mo-shahab/go-pong/paddle"
)

type Frame struct {
	Tick       uint64  `msgpack:"tick"`
	Width      float64 `msgpack:"width"`
	Height     float64 `msgpack:"height"`
	Left       Paddle  `msgpack:"left"`
	Right      Paddle  `msgpack:"right"`
	Ball       Ball    `msgpack:"ball"`
	LeftScore  int32   `msgpack:"leftScore"`
	RightScore int32   `msgpack:"rightScore"`
	Events     Events  `msgpack:"events"`
}

type Paddle struct {
	X         float64 `msgpack:"x"`
	Y         float64 `msgpack:"y"`
	Width     float64 `msgpack:"width"`
	Height    float64 `msgpack:"height"`
	Color     string  `msgpack:"color"`
	Heuristic bool    `msgpack:"heuristic"`
}

type Ball struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Radius float64 `msgpack:"radius"`
	Dx     float64 `msgpack:"dx"`
	Dy     float64 `msgpack:"dy"`
	Color  string  `msgpack:"color"`
}

// Side mirrors the Side enum; 0 is left, 1 is right.
type Side int32

type Events struct {
	WallBounce   bool    `msgpack:"wallBounce"`
	PaddleHit    bool    `msgpack:"paddleHit"`
	HitSide      Side    `msgpack:"hitSide"`
	CollidePoint float64 `msgpack:"collidePoint"`
	Scored       bool    `msgpack:"scored"`
	Scorer       Side    `msgpack:"scorer"`
}

// FromGame converts an engine frame into its wire form.
func FromGame(f game.Frame) Frame {
	snap := f.Snapshot
	ev := f.Events

	return Frame{
		Tick:       snap.Tick,
		Width:      snap.Canvas.Width,
		Height:     snap.Canvas.Height,
		Left:       fromPaddle(snap.Paddle(paddle.Left)),
		Right:      fromPaddle(snap.Paddle(paddle.Right)),
		Ball: Ball{
			X:      snap.Ball.X,
			Y:      snap.Ball.Y,
			Radius: snap.Ball.Radius,
			Dx:     snap.Ball.Dx,
			Dy:     snap.Ball.Dy,
			Color:  snap.Ball.Color,
		},
		LeftScore:  int32(snap.Scores.Left),
		RightScore: int32(snap.Scores.Right),
		Events: Events{
			WallBounce:   ev.WallBounce,
			PaddleHit:    ev.PaddleHit,
			HitSide:      Side(ev.HitSide),
			CollidePoint: ev.CollidePoint,
			Scored:       ev.Scored,
			Scorer:       Side(ev.Scorer),
		},
	}
}

func fromPaddle(p paddle.Paddle) Paddle {
	return Paddle{
		X:         p.X,
		Y:         p.Y,
		Width:     p.Width,
		Height:    p.Height,
		Color:     p.Color,
		Heuristic: p.Policy == paddle.Heuristic,
	}
}
