package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "BUCKINN_"

// Config holds everything the console needs at runtime. Values come from
// defaults, then an optional yaml file, then BUCKINN_* environment variables,
// each layer overriding the last.
type Config struct {
	Server struct {
		Host string `koanf:"host"`
		Port int    `koanf:"port"`
	} `koanf:"server"`

	API struct {
		// BaseURL is the root of the remote catalog API, e.g.
		// https://api.buckinn.example/api/v1.
		BaseURL string        `koanf:"baseurl"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"api"`

	State struct {
		// Dir is where persisted session credentials live.
		Dir string `koanf:"dir"`
	} `koanf:"state"`
}

// Load reads configuration. filePath may be empty, in which case only defaults
// and environment variables apply.
func Load(filePath string) (*Config, error) {
	cfg := &Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 4280
	cfg.API.BaseURL = "http://localhost:5000/api/v1"
	cfg.API.Timeout = 30 * time.Second

	if dir, err := os.UserConfigDir(); err == nil {
		cfg.State.Dir = filepath.Join(dir, "buckinn-console")
	} else {
		cfg.State.Dir = ".buckinn-console"
	}

	k := koanf.New(".")

	if filePath != "" {
		if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", filePath)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		return nil, errors.New("api.baseurl can't be empty")
	}

	return cfg, nil
}
