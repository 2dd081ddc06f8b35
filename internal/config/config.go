// Package config loads runtime settings for the hydronet CLI and server from
// an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/hydronet/hardycross"
)

// Environment variable names.
const (
	EnvPort          = "HYDRONET_PORT"
	EnvLogLevel      = "HYDRONET_LOG_LEVEL"
	EnvLogFormat     = "HYDRONET_LOG_FORMAT"
	EnvMaxIterations = "HYDRONET_MAX_ITERATIONS"
	EnvTolerance     = "HYDRONET_TOLERANCE"
	EnvExportDir     = "HYDRONET_EXPORT_DIR"
	EnvCORSOrigin    = "HYDRONET_CORS_ORIGIN"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Server ServerConfig
	Log    LogConfig
	Solver SolverConfig
	Export ExportConfig
}

type ServerConfig struct {
	Port       string
	CORSOrigin string
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // text | json
}

type SolverConfig struct {
	MaxIterations int
	Tolerance     float64
}

type ExportConfig struct {
	Dir string
}

// Load reads .env (if present) and the environment, applies defaults and validates.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	maxIter, err := getEnvAsInt(EnvMaxIterations, hardycross.DefaultMaxIterations)
	if err != nil {
		return nil, err
	}
	tol, err := getEnvAsFloat(EnvTolerance, hardycross.DefaultTolerance)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:       getEnv(EnvPort, "8080"),
			CORSOrigin: getEnv(EnvCORSOrigin, "*"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv(EnvLogLevel, "info")),
			Format: strings.ToLower(getEnv(EnvLogFormat, "text")),
		},
		Solver: SolverConfig{
			MaxIterations: maxIter,
			Tolerance:     tol,
		},
		Export: ExportConfig{
			Dir: getEnv(EnvExportDir, "."),
		},
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the solver or server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%s is required: %w", EnvPort, ErrInvalid)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%s=%q (want text or json): %w", EnvLogFormat, c.Log.Format, ErrInvalid)
	}
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("%s=%d must be positive: %w", EnvMaxIterations, c.Solver.MaxIterations, ErrInvalid)
	}
	if math.IsNaN(c.Solver.Tolerance) || math.IsInf(c.Solver.Tolerance, 0) || c.Solver.Tolerance <= 0 {
		return fmt.Errorf("%s=%g must be finite and positive: %w", EnvTolerance, c.Solver.Tolerance, ErrInvalid)
	}

	return nil
}

// SlogLevel maps Log.Level to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%s=%q: %w", EnvLogLevel, c.Log.Level, ErrInvalid)
	}

	return lvl, nil
}

// SolverOptions returns hardycross options seeded from the config.
func (c *Config) SolverOptions() hardycross.Options {
	opts := hardycross.DefaultOptions()
	opts.MaxIterations = c.Solver.MaxIterations
	opts.Tolerance = c.Solver.Tolerance

	return opts
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not an integer: %w", key, valueStr, ErrInvalid)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a number: %w", key, valueStr, ErrInvalid)
	}
	return value, nil
}
