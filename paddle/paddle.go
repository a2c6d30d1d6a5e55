package paddle

import "github.com/mo-shahab/go-pong/canvas"

// Side identifies which end of the canvas a paddle defends.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Policy decides what moves a paddle each tick.
type Policy int

const (
	// Controlled paddles follow the latest pointer sample.
	Controlled Policy = iota
	// Heuristic paddles chase the ball's current height.
	Heuristic
)

func (p Policy) String() string {
	if p == Controlled {
		return "controlled"
	}
	return "heuristic"
}

// Paddle is an axis-aligned rectangle anchored at its top-left corner. X never
// changes after construction.
type Paddle struct {
	Side   Side
	Policy Policy
	X, Y   float64
	Width  float64
	Height float64
	Color  string

	// Speed and DeadZone only apply to heuristic paddles.
	Speed    float64
	DeadZone float64
}

// New creates a paddle vertically centered on c, margin units away from the
// wall it defends.
func New(side Side, policy Policy, c canvas.Canvas, width, height, margin float64, color string) Paddle {
	x := margin
	if side == Right {
		x = c.Width - margin - width
	}

	return Paddle{
		Side:   side,
		Policy: policy,
		X:      x,
		Y:      c.Height/2 - height/2,
		Width:  width,
		Height: height,
		Color:  color,
	}
}

// CenterY is the vertical midpoint of the paddle.
func (p *Paddle) CenterY() float64 {
	return p.Y + p.Height/2
}
