package ball

import "github.com/mo-shahab/go-pong/canvas"

// Ball is positioned by its center point. Speed is the base speed used when
// serving and when converting a paddle strike into vertical velocity.
type Ball struct {
	X, Y   float64
	Dx, Dy float64
	Radius float64
	Speed  float64
	Color  string
}

// New places a motionless ball at the center of c. Call Reset to serve it.
func New(c canvas.Canvas, diameter, speed float64, color string) Ball {
	x, y := c.Center()
	return Ball{
		X:      x,
		Y:      y,
		Radius: diameter / 2,
		Speed:  speed,
		Color:  color,
	}
}

// Exit tells which horizontal boundary the ball has crossed, if any.
type Exit int

const (
	ExitNone Exit = iota
	ExitLeft
	ExitRight
)

func (e Exit) String() string {
	switch e {
	case ExitLeft:
		return "left"
	case ExitRight:
		return "right"
	default:
		return "none"
	}
}
