package main

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/leonardohn/wisard"
)

// Config holds the model parameters read from the yaml config file.
// Command-line flags override individual fields.
type Config struct {
	InputSize int    `koanf:"input_size"`
	AddrSize  int    `koanf:"addr_size"`
	Seed      int64  `koanf:"seed"`
	Backend   string `koanf:"backend"`
	Bleach    int    `koanf:"bleach"`
	Bloom     struct {
		Capacity uint32  `koanf:"capacity"`
		FPRate   float64 `koanf:"fp_rate"`
	} `koanf:"bloom"`
}

func defaultConfig() *Config {
	cfg := &Config{
		AddrSize: 8,
		Backend:  "exact",
	}
	cfg.Bloom.Capacity = 1024
	cfg.Bloom.FPRate = 0.01
	return cfg
}

// loadConfig returns defaults overlaid with the yaml file at path, if any.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(raw), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// options translates the config into model construction options.
func (c *Config) options() ([]wisard.Option, error) {
	opts := []wisard.Option{wisard.WithSeed(c.Seed)}
	switch c.Backend {
	case "exact":
		opts = append(opts, wisard.WithBackend(wisard.Exact))
	case "counting":
		opts = append(opts, wisard.WithBackend(wisard.Counting))
	case "bloom":
		opts = append(opts,
			wisard.WithBackend(wisard.Bloom),
			wisard.WithBloomSizing(c.Bloom.Capacity, c.Bloom.FPRate),
		)
	default:
		return nil, fmt.Errorf("unknown backend %q (want exact, counting or bloom)", c.Backend)
	}
	if c.Bleach < 0 || c.Bleach > 255 {
		return nil, fmt.Errorf("bleach threshold %d out of range 0..255", c.Bleach)
	}
	if c.Bleach > 0 {
		opts = append(opts, wisard.WithBleach(uint8(c.Bleach)))
	}
	return opts, nil
}
