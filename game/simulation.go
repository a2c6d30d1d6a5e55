package game

import (
	"math/rand"

	"github.com/mo-shahab/go-pong/ball"
	"github.com/mo-shahab/go-pong/canvas"
	"github.com/mo-shahab/go-pong/paddle"
	"github.com/mo-shahab/go-pong/scores"
)

// Settings fixes the geometry and tuning of a match. All speeds are per tick.
type Settings struct {
	Width  float64
	Height float64

	PaddleWidth  float64
	PaddleHeight float64
	PaddleMargin float64

	BallDiameter float64
	BallSpeed    float64

	HeuristicSpeed float64
	DeadZone       float64

	LeftPolicy  paddle.Policy
	RightPolicy paddle.Policy

	LeftColor  string
	RightColor string
	BallColor  string
}

// DefaultSettings is the classic layout: a pointer-driven paddle on the left
// against a tracking paddle on the right.
func DefaultSettings() Settings {
	return Settings{
		Width:          800,
		Height:         600,
		PaddleWidth:    12,
		PaddleHeight:   100,
		PaddleMargin:   20,
		BallDiameter:   16,
		BallSpeed:      5,
		HeuristicSpeed: 4,
		DeadZone:       10,
		LeftPolicy:     paddle.Controlled,
		RightPolicy:    paddle.Heuristic,
		LeftColor:      "#1abc9c",
		RightColor:     "#e67e22",
		BallColor:      "#ffffff",
	}
}

// Simulation owns the whole world state and advances it one tick at a time.
// It is not safe for concurrent use; the engine is its only caller.
type Simulation struct {
	canvas  canvas.Canvas
	paddles [2]paddle.Paddle
	ball    ball.Ball
	scores  scores.Scores
	tick    uint64
	rng     *rand.Rand
}

// NewSimulation builds the world described by s and serves the first ball.
func NewSimulation(s Settings, rng *rand.Rand) *Simulation {
	c := canvas.New(s.Width, s.Height)

	sim := &Simulation{
		canvas: c,
		ball:   ball.New(c, s.BallDiameter, s.BallSpeed, s.BallColor),
		rng:    rng,
	}

	sim.paddles[paddle.Left] = newPaddle(paddle.Left, s.LeftPolicy, c, s, s.LeftColor)
	sim.paddles[paddle.Right] = newPaddle(paddle.Right, s.RightPolicy, c, s, s.RightColor)

	sim.ball.Reset(c, rng)

	return sim
}

func newPaddle(side paddle.Side, policy paddle.Policy, c canvas.Canvas, s Settings, color string) paddle.Paddle {
	p := paddle.New(side, policy, c, s.PaddleWidth, s.PaddleHeight, s.PaddleMargin, color)
	p.Speed = s.HeuristicSpeed
	p.DeadZone = s.DeadZone
	return p
}

// Tick advances the world by one step: paddle control, ball motion, wall and
// paddle collisions, then scoring.
func (s *Simulation) Tick(in Sample) Events {
	s.tick++
	ev := Events{Tick: s.tick}

	for i := range s.paddles {
		p := &s.paddles[i]
		switch p.Policy {
		case paddle.Controlled:
			if in.OK {
				p.MoveTo(in.Y, s.canvas)
			}
		case paddle.Heuristic:
			p.Track(s.ball.Y, s.canvas)
		}
	}

	s.ball.Advance()

	// A ball in a corner can bounce off a wall and a paddle in the same tick;
	// the paddle's vertical velocity then wins.
	ev.WallBounce = s.ball.BounceWalls(s.canvas)

	for i := range s.paddles {
		p := &s.paddles[i]
		if point, hit := p.Collide(&s.ball); hit {
			ev.PaddleHit = true
			ev.HitSide = p.Side
			ev.CollidePoint = point
		}
	}

	switch s.ball.OutOfBounds(s.canvas) {
	case ball.ExitLeft:
		s.scores.ScoreRight()
		ev.Scored, ev.Scorer = true, paddle.Right
		s.ball.Reset(s.canvas, s.rng)
	case ball.ExitRight:
		s.scores.ScoreLeft()
		ev.Scored, ev.Scorer = true, paddle.Left
		s.ball.Reset(s.canvas, s.rng)
	}

	return ev
}

// Snapshot copies the current world state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:    s.tick,
		Canvas:  s.canvas,
		Paddles: s.paddles,
		Ball:    s.ball,
		Scores:  s.scores,
	}
}
