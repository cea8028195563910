package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings shared by the GUI, CLI and server.
type Config struct {
	ResultsDir string  // directory for exported reports
	OutputBase string  // file name prefix for exported reports
	ListenAddr string  // serve mode listen address
	RateLimit  float64 // serve mode requests per second per client
	RateBurst  int
	Verbose    bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ResultsDir: "results",
		OutputBase: "ejector",
		ListenAddr: ":8080",
		RateLimit:  5,
		RateBurst:  10,
	}
}

// Load reads an optional .env file (envFile, or ".env" when empty) and then
// applies EJECTOR_* environment variables over the defaults. A missing .env
// file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()
	if v := os.Getenv("EJECTOR_RESULTS_DIR"); v != "" {
		cfg.ResultsDir = v
	}
	if v := os.Getenv("EJECTOR_OUTPUT_BASE"); v != "" {
		cfg.OutputBase = v
	}
	if v := os.Getenv("EJECTOR_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("EJECTOR_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("EJECTOR_RATE_LIMIT must be a number, got %q", v)
		}
		cfg.RateLimit = f
	}
	if v := os.Getenv("EJECTOR_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("EJECTOR_RATE_BURST must be an integer, got %q", v)
		}
		cfg.RateBurst = n
	}
	if v := os.Getenv("EJECTOR_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("EJECTOR_VERBOSE must be a boolean, got %q", v)
		}
		cfg.Verbose = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for unusable values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputBase) == "" {
		return errors.New("output base name is required")
	}
	if strings.ContainsAny(c.OutputBase, `/\`) {
		return fmt.Errorf("output base name must not contain path separators, got %q", c.OutputBase)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst)
	}
	return nil
}
