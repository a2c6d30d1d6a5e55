package game

import (
	"math"
	"sync/atomic"
)

// InputCell hands the most recent pointer position from the input goroutine to
// the frame driver. Older samples are overwritten, never queued.
type InputCell struct {
	bits atomic.Uint64
	set  atomic.Bool
}

// Store records a new target height for the controlled paddle.
func (c *InputCell) Store(y float64) {
	c.bits.Store(math.Float64bits(y))
	c.set.Store(true)
}

// Load returns the latest sample, or a zero Sample if nothing was stored yet.
func (c *InputCell) Load() Sample {
	if !c.set.Load() {
		return Sample{}
	}
	return Sample{Y: math.Float64frombits(c.bits.Load()), OK: true}
}
