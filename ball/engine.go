package ball

import (
	"math/rand"

	"github.com/mo-shahab/go-pong/canvas"
)

// Advance moves the ball by one tick's worth of velocity.
func (b *Ball) Advance() {
	b.X += b.Dx
	b.Y += b.Dy
}

// BounceWalls reflects the ball off the top or bottom wall. The ball's edge is
// put back on the wall and only the sign of Dy changes.
func (b *Ball) BounceWalls(c canvas.Canvas) bool {
	if b.Y-b.Radius < 0 {
		b.Y = b.Radius
		b.Dy = -b.Dy
		return true
	}
	if b.Y+b.Radius > c.Height {
		b.Y = c.Height - b.Radius
		b.Dy = -b.Dy
		return true
	}
	return false
}

// OutOfBounds reports whether the ball's leading edge has left the canvas
// horizontally.
func (b *Ball) OutOfBounds(c canvas.Canvas) Exit {
	if b.X-b.Radius < 0 {
		return ExitLeft
	}
	if b.X+b.Radius > c.Width {
		return ExitRight
	}
	return ExitNone
}

// Reset serves the ball again from the center of the canvas towards a random
// side, with a random vertical component in [-Speed, Speed].
func (b *Ball) Reset(c canvas.Canvas, rng *rand.Rand) {
	b.X, b.Y = c.Center()

	direction := -1.0
	if rng.Float64() > 0.5 {
		direction = 1
	}
	b.Dx = direction * b.Speed
	b.Dy = (rng.Float64()*2 - 1) * b.Speed
}
