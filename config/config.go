// Package config loads CLI and server settings from an optional YAML file and
// the environment.
package config

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jsphweid/arckit/constants"
	"github.com/jsphweid/arckit/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	Jobs           int           `yaml:"jobs"`
	Sort           string        `yaml:"sort"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	WatchInterval  time.Duration `yaml:"watch_interval"`
	Debounce       time.Duration `yaml:"debounce"`
}

func Default() *Config {
	return &Config{
		Addr:          constants.DefaultAddr,
		Jobs:          constants.DefaultJobs,
		Sort:          model.SortByTiming.Keyword(),
		WatchInterval: constants.DefaultWatchInterval,
		Debounce:      constants.DefaultDebounce,
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then the environment.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		if err := c.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrapf(err, "decoding config %s", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(constants.EnvAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(constants.EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s", constants.EnvJobs)
		}
		c.Jobs = n
	}
	return nil
}

func (c *Config) validate() error {
	if c.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.WatchInterval <= 0 {
		return errors.Errorf("watch_interval must be positive, got %s", c.WatchInterval)
	}
	if c.Debounce < 0 {
		return errors.Errorf("debounce cannot be negative, got %s", c.Debounce)
	}
	if _, err := c.SortType(); err != nil {
		return err
	}
	return nil
}

func (c *Config) SortType() (model.SortType, error) {
	return model.ParseSortType(c.Sort)
}
