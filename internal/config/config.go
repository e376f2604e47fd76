// Package config holds the server and search settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/minimax-chess/internal/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr            string   `json:"addr"`
	AllowOrigins    []string `json:"allow_origins"`
	Depth           int      `json:"depth"`
	StrictRoot      bool     `json:"strict_root"`
	Seed            uint64   `json:"seed"`
	HumanColor      string   `json:"human_color"`
	LogLevel        string   `json:"log_level"`
	ClockSeconds    int      `json:"clock_seconds"`
	ReadBufferSize  int      `json:"read_buffer_size"`
	WriteBufferSize int      `json:"write_buffer_size"`
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowOrigins:    []string{"http://localhost:5173"},
		Depth:           engine.DefaultDepth,
		StrictRoot:      true,
		Seed:            0,
		HumanColor:      "white",
		LogLevel:        "info",
		ClockSeconds:    600,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// FromEnv starts from Default and applies the CHESS_* and LOG_LEVEL
// environment variables. The result is validated.
func FromEnv() (Config, error) {
	cfg := Default()
	if v := os.Getenv("CHESS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CHESS_ORIGINS"); v != "" {
		cfg.AllowOrigins = splitList(v)
	}
	if v := os.Getenv("CHESS_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: CHESS_DEPTH %q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Depth = depth
	}
	if v := os.Getenv("CHESS_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: CHESS_SEED %q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("CHESS_HUMAN"); v != "" {
		cfg.HumanColor = v
	}
	if v := os.Getenv("CHESS_CLOCK_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: CHESS_CLOCK_SECONDS %q: %v", ErrInvalidConfig, v, err)
		}
		cfg.ClockSeconds = secs
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalidConfig, c.Depth)
	}
	if _, err := engine.ParseColor(c.HumanColor); err != nil {
		return fmt.Errorf("%w: human color: %v", ErrInvalidConfig, err)
	}
	if c.ClockSeconds < 1 {
		return fmt.Errorf("%w: clock must be at least one second, got %d", ErrInvalidConfig, c.ClockSeconds)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Human is the validated default colour of the human player.
func (c Config) Human() engine.Color {
	color, _ := engine.ParseColor(c.HumanColor)
	return color
}

// Origins joins AllowOrigins the way fiber's cors middleware expects them.
func (c Config) Origins() string {
	return strings.Join(c.AllowOrigins, ", ")
}

var levels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func ParseLevel(s string) (log.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
