package game

import (
	"github.com/mo-shahab/go-pong/ball"
	"github.com/mo-shahab/go-pong/canvas"
	"github.com/mo-shahab/go-pong/paddle"
	"github.com/mo-shahab/go-pong/scores"
)

// Sample is the latest pointer reading for the controlled paddle, in canvas
// units. OK is false until the first reading arrives.
type Sample struct {
	Y  float64
	OK bool
}

// Events records what happened during a single tick.
type Events struct {
	Tick uint64

	WallBounce bool

	PaddleHit    bool
	HitSide      paddle.Side
	CollidePoint float64

	Scored bool
	Scorer paddle.Side
}

// Snapshot is a point-in-time copy of the world, safe to read after the tick
// that produced it has returned.
type Snapshot struct {
	Tick    uint64
	Canvas  canvas.Canvas
	Paddles [2]paddle.Paddle
	Ball    ball.Ball
	Scores  scores.Scores
}

// Paddle returns the paddle defending side.
func (s Snapshot) Paddle(side paddle.Side) paddle.Paddle {
	return s.Paddles[side]
}

// Frame is what the engine hands to every FrameHandler once per tick.
type Frame struct {
	Snapshot Snapshot
	Events   Events
}

// FrameHandler consumes frames. HandleFrame runs on the engine goroutine right
// after the tick, so it must not block.
type FrameHandler interface {
	HandleFrame(Frame)
}

// FrameHandlerFunc adapts a function to FrameHandler.
type FrameHandlerFunc func(Frame)

func (f FrameHandlerFunc) HandleFrame(fr Frame) {
	f(fr)
}
