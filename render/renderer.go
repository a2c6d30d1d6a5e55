// Package render draws the game into a terminal with tcell and turns mouse
// motion into controlled-paddle input.
package render

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mo-shahab/go-pong/ball"
	"github.com/mo-shahab/go-pong/canvas"
	"github.com/mo-shahab/go-pong/game"
)

const (
	netWidth    = 4
	netDash     = 16
	netGap      = 32
	scoreOffset = 60
	scoreY      = 50
)

var (
	RgbBackground = tcell.NewRGBColor(0x22, 0x22, 0x22)
	RgbNet        = tcell.NewRGBColor(0xff, 0xff, 0xff)
)

// Renderer draws snapshots onto a tcell screen. HandleFrame and Listen may run
// on different goroutines; both only touch the screen, which does its own
// locking.
type Renderer struct {
	screen tcell.Screen
	arena  canvas.Canvas

	background tcell.Style

	// pointer is the last target sent to the input cell. Only Listen uses it.
	pointer float64
}

// OpenScreen initializes the terminal with mouse motion reporting enabled.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(RgbBackground))
	screen.Clear()
	return screen, nil
}

func New(screen tcell.Screen, arena canvas.Canvas) *Renderer {
	_, y := arena.Center()
	return &Renderer{
		screen:     screen,
		arena:      arena,
		background: tcell.StyleDefault.Background(RgbBackground),
		pointer:    y,
	}
}

// Viewport reflects the current terminal size.
func (r *Renderer) Viewport() Viewport {
	cols, rows := r.screen.Size()
	return Viewport{Arena: r.arena, Cols: cols, Rows: rows}
}

func (r *Renderer) HandleFrame(f game.Frame) {
	r.Draw(f.Snapshot)
}

// Draw paints one full frame and shows it.
func (r *Renderer) Draw(s game.Snapshot) {
	v := r.Viewport()
	if v.Cols <= 0 || v.Rows <= 0 {
		return
	}

	r.screen.Fill(' ', r.background)

	netStyle := r.background.Foreground(RgbNet)
	for y := 0.0; y < r.arena.Height; y += netGap {
		r.fillRect(v, r.arena.Width/2-netWidth/2, y, netWidth, netDash, '│', netStyle)
	}

	for _, p := range s.Paddles {
		r.fillRect(v, p.X, p.Y, p.Width, p.Height, '█', r.fg(p.Color))
	}

	r.drawBall(v, s.Ball)

	left, right := s.Paddles[0], s.Paddles[1]
	r.drawText(v, r.arena.Width/2-scoreOffset, scoreY, strconv.Itoa(s.Scores.Left), r.fg(left.Color).Bold(true))
	r.drawText(v, r.arena.Width/2+scoreOffset, scoreY, strconv.Itoa(s.Scores.Right), r.fg(right.Color).Bold(true))

	r.screen.Show()
}

func (r *Renderer) fg(color string) tcell.Style {
	return r.background.Foreground(tcell.GetColor(color))
}

func (r *Renderer) fillRect(v Viewport, x, y, w, h float64, ch rune, style tcell.Style) {
	c0, r0, c1, r1 := v.Rect(x, y, w, h)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

// drawBall fills every cell whose center lies inside the ball. A ball smaller
// than a cell still gets the cell it sits in.
func (r *Renderer) drawBall(v Viewport, b ball.Ball) {
	style := r.fg(b.Color)
	c0, r0, c1, r1 := v.Rect(b.X-b.Radius, b.Y-b.Radius, 2*b.Radius, 2*b.Radius)

	drawn := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := v.CellCenter(col, row)
			dx, dy := x-b.X, y-b.Y
			if dx*dx+dy*dy <= b.Radius*b.Radius {
				r.screen.SetContent(col, row, '█', nil, style)
				drawn = true
			}
		}
	}

	if !drawn {
		col, row := v.Cell(b.X, b.Y)
		r.screen.SetContent(col, row, '●', nil, style)
	}
}

// drawText centers text horizontally on the arena point (x, y).
func (r *Renderer) drawText(v Viewport, x, y float64, text string, style tcell.Style) {
	col, row := v.Cell(x, y)
	start := col - len(text)/2
	for i, ch := range text {
		if c := start + i; c >= 0 && c < v.Cols {
			r.screen.SetContent(c, row, ch, nil, style)
		}
	}
}

// Listen feeds terminal events into cell until ctx is done. Mouse motion sets
// the paddle target to the pointer's row; the arrow keys nudge it by one row.
// Esc, q and Ctrl-C call quit.
func (r *Renderer) Listen(ctx context.Context, cell *game.InputCell, quit func()) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			r.handleEvent(ev, cell, quit)
		}
	}
}

func (r *Renderer) handleEvent(ev tcell.Event, cell *game.InputCell, quit func()) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitKey(ev.Key(), ev.Rune()) {
			quit()
			return
		}
		r.nudge(ev.Key(), cell)

	case *tcell.EventMouse:
		_, row := ev.Position()
		r.point(row, cell)

	case *tcell.EventResize:
		cols, rows := ev.Size()
		log.Printf("Terminal resized to %dx%d", cols, rows)
		r.screen.Sync()
	}
}

func (r *Renderer) point(row int, cell *game.InputCell) {
	r.pointer = r.Viewport().ArenaY(row)
	cell.Store(r.pointer)
}

func (r *Renderer) nudge(key tcell.Key, cell *game.InputCell) {
	step := r.Viewport().RowHeight()
	switch key {
	case tcell.KeyUp:
		r.pointer -= step
	case tcell.KeyDown:
		r.pointer += step
	default:
		return
	}

	if r.pointer < 0 {
		r.pointer = 0
	}
	if r.pointer > r.arena.Height {
		r.pointer = r.arena.Height
	}
	cell.Store(r.pointer)
}

func isQuitKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ch == 'q' || ch == 'Q'
	}
	return false
}
