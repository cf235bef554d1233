package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	Rule                string        `json:"rule"`
	Birth               string        `json:"birth"`
	Survive             string        `json:"survive"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	Workers             int           `json:"workers"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	Seed                int64         `json:"seed"`
	WithPatterns        bool          `json:"with_patterns"`
	CanvasMode          string        `json:"canvas_mode"`
	LiveColor           string        `json:"live_color"`
	Plain               bool          `json:"plain"`
	LogFile             string        `json:"log_file"`
}

// DefaultConfig returns sensible defaults. A zero Width or Height means fit the terminal.
func DefaultConfig() Config {
	return Config{
		Width:               0,
		Height:              0,
		FrameRate:           50 * time.Millisecond,
		Rule:                "B3/S23",
		Birth:               "",
		Survive:             "",
		AutoRestart:         false,
		StagnationThreshold: 5,
		Workers:             1,
		UseMemoryPool:       true,
		MaxGenerations:      0,
		RandomDensity:       0.5,
		Seed:                0, // 0 picks a time-based seed
		WithPatterns:        false,
		CanvasMode:          "basic",
		LiveColor:           "green",
		Plain:               false,
		LogFile:             "",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to the provided FlagSet, using current values as defaults
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells (0 fits the terminal)")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells (0 fits the terminal)")
	fs.DurationVar(&c.FrameRate, "frame", c.FrameRate, "delay between generations")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule preset name or B<digits>/S<digits>")
	fs.StringVar(&c.Birth, "birth", c.Birth, "custom birth digits, overrides -rule when set with -survive")
	fs.StringVar(&c.Survive, "survive", c.Survive, "custom survive digits, overrides -rule when set with -birth")
	fs.BoolVar(&c.AutoRestart, "auto-restart", c.AutoRestart, "reseed on extinction or stagnation")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stagnant generations before restarting")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation (-1 uses every CPU)")
	fs.BoolVar(&c.UseMemoryPool, "pool", c.UseMemoryPool, "recycle grids between generations")
	fs.IntVar(&c.MaxGenerations, "max-gen", c.MaxGenerations, "stop after this many generations (0 runs forever)")
	fs.Float64Var(&c.RandomDensity, "density", c.RandomDensity, "probability a cell starts alive")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial board (0 is time based)")
	fs.BoolVar(&c.WithPatterns, "patterns", c.WithPatterns, "add gliders and blinkers to the initial board")
	fs.StringVar(&c.CanvasMode, "canvas", c.CanvasMode, "canvas mode: basic or persisted")
	fs.StringVar(&c.LiveColor, "color", c.LiveColor, "live cell color name or #rrggbb")
	fs.BoolVar(&c.Plain, "plain", c.Plain, "print frames as text instead of the interactive screen")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "write logs to this file")
}

// CustomRule reports whether a birth/survive pair was given instead of a rule name
func (c Config) CustomRule() bool {
	return c.Birth != "" || c.Survive != ""
}

// Validate checks the settings that do not depend on the terminal
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative dimensions %dx%d", c.Width, c.Height)
	case c.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame rate must be positive, got %v", c.FrameRate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] density %v outside [0, 1]", c.RandomDensity)
	case c.StagnationThreshold < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] stagnation threshold must be at least 1, got %d", c.StagnationThreshold)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] max generations must not be negative, got %d", c.MaxGenerations)
	}
	return nil
}
