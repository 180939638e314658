package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mdclip"
	"gopkg.in/yaml.v3"
)

// Config holds defaults read from the YAML config file. Flags given on the
// command line take precedence over it.
type Config struct {
	Extractor   string        `yaml:"extractor"`
	Converter   string        `yaml:"converter"`
	Browser     *bool         `yaml:"browser"`
	Stealth     *bool         `yaml:"stealth"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
	Rate        *float64      `yaml:"rate"`
	DB          string        `yaml:"db"`
	Tokenizer   string        `yaml:"tokenizer"`
}

// LoadConfig reads the config file at path. A missing file yields an
// empty config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, mdclip.Errorf(mdclip.EINVALID, "invalid config %s: %v", path, err)
	}
	if cfg.Concurrency < 0 {
		return nil, mdclip.Errorf(mdclip.EINVALID, "invalid config %s: concurrency must not be negative", path)
	}
	return cfg, nil
}

// FlagValues returns the configured values keyed by flag name.
func (c *Config) FlagValues() map[string]string {
	values := make(map[string]string)
	if c.Extractor != "" {
		values["extractor"] = c.Extractor
	}
	if c.Converter != "" {
		values["converter"] = c.Converter
	}
	if c.Browser != nil {
		values["browser"] = strconv.FormatBool(*c.Browser)
	}
	if c.Stealth != nil {
		values["stealth"] = strconv.FormatBool(*c.Stealth)
	}
	if c.Timeout > 0 {
		values["timeout"] = c.Timeout.String()
	}
	if c.Concurrency > 0 {
		values["concurrency"] = strconv.Itoa(c.Concurrency)
	}
	if c.Rate != nil {
		values["rate"] = strconv.FormatFloat(*c.Rate, 'f', -1, 64)
	}
	if c.Tokenizer != "" {
		values["tokenizer"] = c.Tokenizer
	}
	return values
}

// Resolver supplies configured values for flags missing from the command line.
func (c *Config) Resolver() kong.Resolver {
	values := c.FlagValues()
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		value, ok := values[flag.Name]
		if !ok {
			return nil, nil
		}
		return value, nil
	})
}

func defaultConfigPath() string {
	if path := os.Getenv("MDCLIP_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mdclip", "config.yaml")
}
