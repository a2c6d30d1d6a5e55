package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mo-shahab/go-pong/paddle"
)

func newTestSimulation(seed int64) *Simulation {
	return NewSimulation(DefaultSettings(), rand.New(rand.NewSource(seed)))
}

func TestPaddlesStayInsideCanvas(t *testing.T) {
	sim := newTestSimulation(1)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		in := Sample{Y: rng.Float64()*2000 - 700, OK: rng.Intn(4) != 0}
		sim.Tick(in)

		for _, p := range sim.paddles {
			if p.Y < 0 || p.Y > sim.canvas.Height-p.Height {
				t.Fatalf("tick %d: %s paddle out of bounds at y=%v", i, p.Side, p.Y)
			}
		}
	}
}

func TestHorizontalSpeedIsConserved(t *testing.T) {
	sim := newTestSimulation(2)
	in := Sample{}

	for i := 0; i < 5000; i++ {
		// keep the controlled paddle roughly on the ball so rallies happen
		in = Sample{Y: sim.ball.Y, OK: true}
		sim.Tick(in)

		if math.Abs(sim.ball.Dx) != sim.ball.Speed {
			t.Fatalf("tick %d: expected |dx| == %v, got %v", i, sim.ball.Speed, sim.ball.Dx)
		}
	}
}

func TestWallReflection(t *testing.T) {
	sim := newTestSimulation(3)
	sim.ball.X, sim.ball.Y = 400, -1
	sim.ball.Dx, sim.ball.Dy = 0, -5

	ev := sim.Tick(Sample{})

	if !ev.WallBounce {
		t.Error("expected a wall bounce event")
	}
	if sim.ball.Y < 0 {
		t.Errorf("expected y >= 0, got %v", sim.ball.Y)
	}
	if sim.ball.Dy != 5 {
		t.Errorf("expected dy 5, got %v", sim.ball.Dy)
	}
}

func TestSpinFromStrikePosition(t *testing.T) {
	tests := []struct {
		name      string
		ballY     float64
		wantPoint float64
	}{
		{name: "top edge", ballY: 250, wantPoint: -1},
		{name: "center", ballY: 300, wantPoint: 0},
		{name: "bottom edge", ballY: 350, wantPoint: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulation(4)
			sim.ball.X, sim.ball.Y = 44, tt.ballY
			sim.ball.Dx, sim.ball.Dy = -5, 0

			// pointer on the paddle's current center keeps it at y=250
			ev := sim.Tick(Sample{Y: 300, OK: true})

			if !ev.PaddleHit || ev.HitSide != paddle.Left {
				t.Fatalf("expected a left paddle hit, got %+v", ev)
			}
			if math.Abs(ev.CollidePoint-tt.wantPoint) > 1e-9 {
				t.Errorf("expected collide point %v, got %v", tt.wantPoint, ev.CollidePoint)
			}
			if math.Abs(sim.ball.Dy-5*tt.wantPoint) > 1e-9 {
				t.Errorf("expected dy %v, got %v", 5*tt.wantPoint, sim.ball.Dy)
			}
			if sim.ball.Dx != 5 {
				t.Errorf("expected dx 5, got %v", sim.ball.Dx)
			}
		})
	}
}

func TestScoringResetsBall(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		scorer    paddle.Side
		wantLeft  int
		wantRight int
	}{
		{name: "past right wall", x: 795, scorer: paddle.Left, wantLeft: 1, wantRight: 0},
		{name: "past left wall", x: 5, scorer: paddle.Right, wantLeft: 0, wantRight: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulation(5)
			sim.ball.X, sim.ball.Y = tt.x, 100
			sim.ball.Dx, sim.ball.Dy = 0, 0

			ev := sim.Tick(Sample{})

			if !ev.Scored || ev.Scorer != tt.scorer {
				t.Fatalf("expected %s to score, got %+v", tt.scorer, ev)
			}
			if sim.scores.Left != tt.wantLeft || sim.scores.Right != tt.wantRight {
				t.Errorf("expected score %d-%d, got %s", tt.wantLeft, tt.wantRight, sim.scores)
			}
			if sim.ball.X != 400 || sim.ball.Y != 300 {
				t.Errorf("expected ball at center, got (%v, %v)", sim.ball.X, sim.ball.Y)
			}
			if math.Abs(sim.ball.Dx) != 5 {
				t.Errorf("expected |dx| 5 after reset, got %v", sim.ball.Dx)
			}
			if sim.ball.Dy < -5 || sim.ball.Dy > 5 {
				t.Errorf("dy %v outside [-5, 5] after reset", sim.ball.Dy)
			}
		})
	}
}

func TestScoresNeverDecrease(t *testing.T) {
	sim := newTestSimulation(6)
	prev := sim.scores

	for i := 0; i < 20000; i++ {
		ev := sim.Tick(Sample{})
		cur := sim.scores

		if cur.Left < prev.Left || cur.Right < prev.Right {
			t.Fatalf("tick %d: score went from %s to %s", i, prev, cur)
		}
		if gained := (cur.Left - prev.Left) + (cur.Right - prev.Right); gained > 1 {
			t.Fatalf("tick %d: %d points in one tick", i, gained)
		} else if (gained == 1) != ev.Scored {
			t.Fatalf("tick %d: scored event %v does not match score change %d", i, ev.Scored, gained)
		}
		prev = cur
	}

	if prev.Right == 0 {
		t.Error("an idle controlled paddle should eventually concede")
	}
}

func TestHeuristicDeadZone(t *testing.T) {
	for _, offset := range []float64{-10, -4, 0, 6, 10} {
		sim := newTestSimulation(7)
		sim.ball.X, sim.ball.Y = 400, 300+offset
		sim.ball.Dx, sim.ball.Dy = 1, 0

		sim.Tick(Sample{})

		if got := sim.paddles[paddle.Right].Y; got != 250 {
			t.Errorf("offset %v: expected heuristic paddle to hold at 250, got %v", offset, got)
		}
	}

	sim := newTestSimulation(7)
	sim.ball.X, sim.ball.Y = 400, 311
	sim.ball.Dx, sim.ball.Dy = 1, 0
	sim.Tick(Sample{})
	if got := sim.paddles[paddle.Right].Y; got != 254 {
		t.Errorf("expected heuristic paddle to step down to 254, got %v", got)
	}
}

func TestControlledPaddleHoldsWithoutInput(t *testing.T) {
	sim := newTestSimulation(8)
	sim.paddles[paddle.Left].Y = 120

	sim.Tick(Sample{})
	if got := sim.paddles[paddle.Left].Y; got != 120 {
		t.Errorf("expected paddle to hold at 120, got %v", got)
	}

	sim.Tick(Sample{Y: 400, OK: true})
	if got := sim.paddles[paddle.Left].Y; got != 350 {
		t.Errorf("expected paddle centered on 400 (y=350), got %v", got)
	}
}

func TestRallyOffHeuristicPaddle(t *testing.T) {
	sim := newTestSimulation(9)
	sim.ball.X, sim.ball.Y = 400, 300
	sim.ball.Dx, sim.ball.Dy = 5, 0

	var hit Events
	for i := 0; i < 200; i++ {
		ev := sim.Tick(Sample{})
		if ev.Scored {
			t.Fatalf("tick %d: unexpected point %+v", i, ev)
		}
		if ev.PaddleHit {
			hit = ev
			break
		}
	}

	if !hit.PaddleHit || hit.HitSide != paddle.Right {
		t.Fatalf("expected the right paddle to return the ball, got %+v", hit)
	}
	if sim.ball.Dx != -5 {
		t.Errorf("expected dx -5, got %v", sim.ball.Dx)
	}
	if math.Abs(sim.ball.Dy) > 1e-9 {
		t.Errorf("expected a center hit to leave dy near 0, got %v", sim.ball.Dy)
	}
	if sim.ball.X != 760 {
		t.Errorf("expected ball flush against the right paddle at x=760, got %v", sim.ball.X)
	}
}

func TestCornerAppliesWallAndPaddle(t *testing.T) {
	sim := newTestSimulation(10)
	sim.paddles[paddle.Right].Y = 0
	sim.ball.X, sim.ball.Y = 760, 9
	sim.ball.Dx, sim.ball.Dy = 5, -5

	ev := sim.Tick(Sample{})

	if !ev.WallBounce || !ev.PaddleHit {
		t.Fatalf("expected both a wall bounce and a paddle hit, got %+v", ev)
	}
	want := 5 * (8.0 - 50) / 50
	if math.Abs(sim.ball.Dy-want) > 1e-9 {
		t.Errorf("expected paddle spin to override the wall bounce (dy %v), got %v", want, sim.ball.Dy)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	sim := newTestSimulation(11)
	snap := sim.Snapshot()

	snap.Ball.X = -1000
	snap.Paddles[paddle.Left].Y = -1000
	snap.Scores.Left = 99

	if sim.ball.X == -1000 || sim.paddles[paddle.Left].Y == -1000 || sim.scores.Left == 99 {
		t.Error("mutating a snapshot changed the simulation")
	}
	if got := snap.Paddle(paddle.Right).Policy; got != paddle.Heuristic {
		t.Errorf("expected right paddle to be heuristic, got %v", got)
	}
}

func TestDemoModeIgnoresInput(t *testing.T) {
	s := DefaultSettings()
	s.LeftPolicy = paddle.Heuristic
	sim := NewSimulation(s, rand.New(rand.NewSource(12)))
	sim.ball.X, sim.ball.Y = 400, 300
	sim.ball.Dx, sim.ball.Dy = 1, 0

	sim.Tick(Sample{Y: 0, OK: true})

	if got := sim.paddles[paddle.Left].Y; got != 250 {
		t.Errorf("expected heuristic left paddle to ignore pointer, got y=%v", got)
	}
}
