package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mo-shahab/go-pong/audio"
	"github.com/mo-shahab/go-pong/canvas"
	"github.com/mo-shahab/go-pong/config"
	"github.com/mo-shahab/go-pong/game"
	"github.com/mo-shahab/go-pong/render"
	"github.com/mo-shahab/go-pong/scores"
	"github.com/mo-shahab/go-pong/wsserver"
	"golang.org/x/sync/errgroup"
)

func main() {
	fs := flag.NewFlagSet("go-pong", flag.ContinueOnError)
	cfg, err := config.ParseConfig(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "go-pong: %v\n", err)
		os.Exit(2)
	}

	closeLog, err := setupLogging(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "go-pong: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, err := run(ctx, cfg)
	if err != nil {
		log.Printf("Exiting with error: %v", err)
		fmt.Fprintf(os.Stderr, "go-pong: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Final score %s\n", final)
}

// setupLogging routes the standard logger. The terminal renderer owns the
// screen, so unless a log file is configured its output is discarded;
// headless runs log to stderr.
func setupLogging(cfg config.Config, stderr io.Writer) (func(), error) {
	log.SetPrefix("[PONG] ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return func() { f.Close() }, nil
	case cfg.Headless:
		log.SetOutput(stderr)
	default:
		log.SetOutput(io.Discard)
	}
	return func() {}, nil
}

// run plays until ctx is cancelled or the player quits, and returns the final
// score.
func run(ctx context.Context, cfg config.Config) (scores.Scores, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Arena %vx%v, %d ticks/s, seed %d", cfg.Arena.Width, cfg.Arena.Height, cfg.TickRate, seed)

	sim := game.NewSimulation(cfg.Settings(), rand.New(rand.NewSource(seed)))
	var input game.InputCell
	var handlers []game.FrameHandler

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var renderer *render.Renderer
	if !cfg.Headless {
		screen, err := render.OpenScreen()
		if err != nil {
			return scores.Scores{}, err
		}
		defer screen.Fini()

		renderer = render.New(screen, canvas.New(cfg.Arena.Width, cfg.Arena.Height))
		handlers = append(handlers, renderer)

		if cfg.Audio {
			sm := audio.NewSoundManager()
			if err := sm.Initialize(); err != nil {
				log.Printf("Audio initialization failed: %v", err)
			} else {
				defer sm.Close()
				handlers = append(handlers, sm)
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Spectator.Listen != "" {
		srv := wsserver.New(cfg.Spectator.BroadcastEvery)
		handlers = append(handlers, srv)
		g.Go(func() error {
			if err := srv.ListenAndServe(ctx, cfg.Spectator.Listen); err != nil {
				log.Printf("Spectator feed disabled: %v", err)
			}
			return nil
		})
	}

	engine := game.NewEngine(sim, &input, cfg.TickRate, handlers...)
	g.Go(func() error {
		return engine.Run(ctx)
	})

	if renderer != nil {
		g.Go(func() error {
			renderer.Listen(ctx, &input, cancel)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return scores.Scores{}, err
	}

	final := sim.Snapshot().Scores
	log.Printf("Final score %s", final)
	return final, nil
}
