package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultTickRate matches a 60 Hz display. Physics constants are tuned per
// tick, so a different rate speeds the game up or slows it down.
const DefaultTickRate = 60

// Engine is the frame driver: on every tick it reads the input cell, advances
// the simulation and hands the resulting frame to each handler in order.
type Engine struct {
	sim      *Simulation
	input    *InputCell
	period   time.Duration
	handlers []FrameHandler

	mu      sync.Mutex
	running bool
}

// NewEngine creates an engine ticking tickRate times per second. A
// non-positive rate falls back to DefaultTickRate.
func NewEngine(sim *Simulation, input *InputCell, tickRate int, handlers ...FrameHandler) *Engine {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	return &Engine{
		sim:      sim,
		input:    input,
		period:   time.Second / time.Duration(tickRate),
		handlers: handlers,
	}
}

// Period is the wall-clock time between ticks.
func (e *Engine) Period() time.Duration {
	return e.period
}

// Step runs exactly one frame on the calling goroutine.
func (e *Engine) Step() Frame {
	ev := e.sim.Tick(e.input.Load())
	frame := Frame{Snapshot: e.sim.Snapshot(), Events: ev}

	if ev.Scored {
		log.Printf("%s side scored, score %s", ev.Scorer, frame.Snapshot.Scores)
	}

	for _, h := range e.handlers {
		h.HandleFrame(frame)
	}

	return frame
}

// Run ticks until ctx is cancelled. Only one Run may be active at a time.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	ticker := time.NewTicker(e.period)
	defer ticker.Stop()

	log.Printf("Starting game engine at %v per tick", e.period)

	for {
		select {
		case <-ctx.Done():
			log.Println("Game engine stopped")
			return nil
		case <-ticker.C:
			e.Step()
		}
	}
}
