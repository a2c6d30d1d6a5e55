// Package config loads game settings from defaults, an optional TOML file,
// PONG_* environment variables and command-line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/gdamore/tcell/v2"
	"github.com/mo-shahab/go-pong/game"
	"github.com/mo-shahab/go-pong/paddle"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PONG_"

type Arena struct {
	Width  float64 `toml:"width" env:"WIDTH"`
	Height float64 `toml:"height" env:"HEIGHT"`
}

type Paddle struct {
	Width  float64 `toml:"width" env:"WIDTH"`
	Height float64 `toml:"height" env:"HEIGHT"`
	Margin float64 `toml:"margin" env:"MARGIN"`
}

type Ball struct {
	Diameter float64 `toml:"diameter" env:"DIAMETER"`
	Speed    float64 `toml:"speed" env:"SPEED"`
}

type Heuristic struct {
	Speed    float64 `toml:"speed" env:"SPEED"`
	DeadZone float64 `toml:"dead_zone" env:"DEAD_ZONE"`
}

type Colors struct {
	Left  string `toml:"left" env:"LEFT"`
	Right string `toml:"right" env:"RIGHT"`
	Ball  string `toml:"ball" env:"BALL"`
}

type Spectator struct {
	// Listen is the HTTP address for the spectator feed; empty disables it.
	Listen         string `toml:"listen" env:"LISTEN"`
	BroadcastEvery int    `toml:"broadcast_every" env:"BROADCAST_EVERY"`
}

type Config struct {
	Arena     Arena     `toml:"arena" envPrefix:"ARENA_"`
	Paddle    Paddle    `toml:"paddle" envPrefix:"PADDLE_"`
	Ball      Ball      `toml:"ball" envPrefix:"BALL_"`
	Heuristic Heuristic `toml:"heuristic" envPrefix:"HEURISTIC_"`
	Colors    Colors    `toml:"colors" envPrefix:"COLOR_"`
	Spectator Spectator `toml:"spectator" envPrefix:"SPECTATOR_"`

	TickRate int   `toml:"tick_rate" env:"TICK_RATE"`
	Seed     int64 `toml:"seed" env:"SEED"`

	// Demo hands the left paddle to the heuristic as well.
	Demo     bool   `toml:"demo" env:"DEMO"`
	Headless bool   `toml:"headless" env:"HEADLESS"`
	Audio    bool   `toml:"audio" env:"AUDIO"`
	LogFile  string `toml:"log_file" env:"LOG_FILE"`

	// File is the TOML file the config was read from, if any.
	File string `toml:"-" env:"CONFIG"`
}

// Default is the classic 800x600 layout at 60 ticks per second.
func Default() Config {
	s := game.DefaultSettings()
	return Config{
		Arena:     Arena{Width: s.Width, Height: s.Height},
		Paddle:    Paddle{Width: s.PaddleWidth, Height: s.PaddleHeight, Margin: s.PaddleMargin},
		Ball:      Ball{Diameter: s.BallDiameter, Speed: s.BallSpeed},
		Heuristic: Heuristic{Speed: s.HeuristicSpeed, DeadZone: s.DeadZone},
		Colors:    Colors{Left: s.LeftColor, Right: s.RightColor, Ball: s.BallColor},
		Spectator: Spectator{BroadcastEvery: 2},
		TickRate:  game.DefaultTickRate,
		Audio:     true,
	}
}

// ParseConfig builds a Config from defaults, the TOML file named by -config or
// PONG_CONFIG, the environment and finally args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	bindFlags(fs, &cfg)

	// Parse once to learn -config, then again after the file and environment
	// have been applied so explicit flags win.
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	path := cfg.File
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path over cfg. Keys missing from the file
// keep their current values.
func LoadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	cfg.File = path
	return nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.File, "config", cfg.File, "Path to a TOML config file")
	fs.Float64Var(&cfg.Arena.Width, "width", cfg.Arena.Width, "Arena width in game units")
	fs.Float64Var(&cfg.Arena.Height, "height", cfg.Arena.Height, "Arena height in game units")
	fs.Float64Var(&cfg.Paddle.Height, "paddle-height", cfg.Paddle.Height, "Paddle height in game units")
	fs.Float64Var(&cfg.Ball.Speed, "ball-speed", cfg.Ball.Speed, "Ball base speed per tick")
	fs.Float64Var(&cfg.Heuristic.Speed, "ai-speed", cfg.Heuristic.Speed, "Heuristic paddle speed per tick")
	fs.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "Simulation ticks per second")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for serves (0 picks one from the clock)")
	fs.BoolVar(&cfg.Demo, "demo", cfg.Demo, "Let the heuristic play both paddles")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without the terminal renderer")
	fs.BoolVar(&cfg.Audio, "audio", cfg.Audio, "Play sound effects")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file")
	fs.StringVar(&cfg.Spectator.Listen, "listen", cfg.Spectator.Listen, "Spectator feed address, e.g. :8080 (empty disables)")
	fs.IntVar(&cfg.Spectator.BroadcastEvery, "broadcast-every", cfg.Spectator.BroadcastEvery, "Send every Nth frame to spectators")
}

// Validate reports every setting that would break the simulation.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	positive("arena.width", c.Arena.Width)
	positive("arena.height", c.Arena.Height)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	nonNegative("paddle.margin", c.Paddle.Margin)
	positive("ball.diameter", c.Ball.Diameter)
	positive("ball.speed", c.Ball.Speed)
	nonNegative("heuristic.speed", c.Heuristic.Speed)
	nonNegative("heuristic.dead_zone", c.Heuristic.DeadZone)

	if c.Paddle.Height > c.Arena.Height {
		errs = append(errs, fmt.Errorf("paddle.height %v exceeds arena.height %v", c.Paddle.Height, c.Arena.Height))
	}
	if c.Ball.Diameter >= c.Arena.Height {
		errs = append(errs, fmt.Errorf("ball.diameter %v must be smaller than arena.height %v", c.Ball.Diameter, c.Arena.Height))
	}
	if minWidth := 2*(c.Paddle.Margin+c.Paddle.Width) + c.Ball.Diameter; c.Arena.Width <= minWidth {
		errs = append(errs, fmt.Errorf("arena.width %v leaves no room between the paddles (need more than %v)", c.Arena.Width, minWidth))
	}
	if c.TickRate < 1 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick_rate must be between 1 and 1000, got %d", c.TickRate))
	}
	if c.Spectator.BroadcastEvery < 1 {
		errs = append(errs, fmt.Errorf("spectator.broadcast_every must be at least 1, got %d", c.Spectator.BroadcastEvery))
	}

	for name, color := range map[string]string{"colors.left": c.Colors.Left, "colors.right": c.Colors.Right, "colors.ball": c.Colors.Ball} {
		if tcell.GetColor(color) == tcell.ColorDefault {
			errs = append(errs, fmt.Errorf("%s: unknown color %q", name, color))
		}
	}

	return errors.Join(errs...)
}

// Settings converts the config into simulation settings.
func (c Config) Settings() game.Settings {
	left := paddle.Controlled
	if c.Demo {
		left = paddle.Heuristic
	}

	return game.Settings{
		Width:          c.Arena.Width,
		Height:         c.Arena.Height,
		PaddleWidth:    c.Paddle.Width,
		PaddleHeight:   c.Paddle.Height,
		PaddleMargin:   c.Paddle.Margin,
		BallDiameter:   c.Ball.Diameter,
		BallSpeed:      c.Ball.Speed,
		HeuristicSpeed: c.Heuristic.Speed,
		DeadZone:       c.Heuristic.DeadZone,
		LeftPolicy:     left,
		RightPolicy:    paddle.Heuristic,
		LeftColor:      c.Colors.Left,
		RightColor:     c.Colors.Right,
		BallColor:      c.Colors.Ball,
	}
}
