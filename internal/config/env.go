package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvAddr        = "VEGANSIM_ADDR"
	EnvMaxYear     = "VEGANSIM_MAX_YEAR"
	EnvSpeed       = "VEGANSIM_SPEED"
	EnvSnapshotDir = "VEGANSIM_SNAPSHOT_DIR"
	EnvGinMode     = "GIN_MODE"
)

// LoadDotEnv reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// FromEnv overrides c with any variables set in the environment.
func FromEnv(c *Config) {
	if v := getEnv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getEnv(EnvGinMode); v != "" {
		c.Server.GinMode = v
	}
	if v := getEnvInt(EnvMaxYear); v > 0 {
		c.Simulation.MaxYear = v
	}
	if v := getEnvFloat(EnvSpeed); v > 0 {
		c.Simulation.Speed = v
	}
	if v := getEnv(EnvSnapshotDir); v != "" {
		c.Snapshots.Dir = v
	}
}

// Resolve loads the optional YAML file at path, then applies environment
// overrides and validates the result.
func Resolve(path string) (*Config, error) {
	c := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	FromEnv(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvInt(key string) int {
	v, err := strconv.Atoi(getEnv(key))
	if err != nil {
		return 0
	}
	return v
}

func getEnvFloat(key string) float64 {
	v, err := strconv.ParseFloat(getEnv(key), 64)
	if err != nil {
		return 0
	}
	return v
}
