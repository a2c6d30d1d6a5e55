package canvas

// Canvas is the fixed-size playing field. All positions are in canvas units
// with the origin at the top-left corner and y growing downwards.
type Canvas struct {
	Width  float64
	Height float64
}

func New(width, height float64) Canvas {
	return Canvas{Width: width, Height: height}
}

// Center returns the midpoint of the canvas.
func (c Canvas) Center() (x, y float64) {
	return c.Width / 2, c.Height / 2
}
