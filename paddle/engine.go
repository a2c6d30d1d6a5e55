package paddle

import (
	"github.com/mo-shahab/go-pong/ball"
	"github.com/mo-shahab/go-pong/canvas"
)

// Clamp keeps the paddle fully inside the canvas.
func (p *Paddle) Clamp(c canvas.Canvas) {
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y+p.Height > c.Height {
		p.Y = c.Height - p.Height
	}
}

// MoveTo centers the paddle on targetY, then clamps it.
func (p *Paddle) MoveTo(targetY float64, c canvas.Canvas) {
	p.Y = targetY - p.Height/2
	p.Clamp(c)
}

// Track moves the paddle one step towards ballY. Within DeadZone of the
// paddle center it holds still. It never predicts where the ball is going.
func (p *Paddle) Track(ballY float64, c canvas.Canvas) {
	center := p.CenterY()

	switch {
	case ballY < center-p.DeadZone:
		p.Y -= p.Speed
	case ballY > center+p.DeadZone:
		p.Y += p.Speed
	}

	p.Clamp(c)
}

// Collide bounces b off the paddle face when they overlap. The returned collide
// point is the strike offset from the paddle center, -1 at the top edge and 1
// at the bottom edge; it sets the outgoing vertical velocity.
func (p *Paddle) Collide(b *ball.Ball) (collidePoint float64, hit bool) {
	if !p.overlaps(b) {
		return 0, false
	}

	if p.Side == Left {
		b.X = p.X + p.Width + b.Radius
	} else {
		b.X = p.X - b.Radius
	}

	collidePoint = (b.Y - p.CenterY()) / (p.Height / 2)
	if collidePoint < -1 {
		collidePoint = -1
	} else if collidePoint > 1 {
		collidePoint = 1
	}

	b.Dx = -b.Dx
	b.Dy = b.Speed * collidePoint

	return collidePoint, true
}

func (p *Paddle) overlaps(b *ball.Ball) bool {
	if b.Y+b.Radius <= p.Y || b.Y-b.Radius >= p.Y+p.Height {
		return false
	}

	// the facing edge of the ball must sit strictly inside the paddle
	edge := b.X + b.Radius
	if p.Side == Left {
		edge = b.X - b.Radius
	}
	return edge > p.X && edge < p.X+p.Width
}
