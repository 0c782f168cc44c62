package main

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// config holds CLI defaults loadable from a glot.yml file. Flags win over
// file values.
type config struct {
	Language string `koanf:"language"`
	MaxDepth int    `koanf:"max_depth"`
	Color    bool   `koanf:"color"`
}

const defaultConfigFile = "glot.yml"

// loadConfig reads the config file at path, or glot.yml in the current
// directory if it exists. A missing default file is not an error.
func loadConfig(path string) (*config, error) {
	cfg := &config{Color: true}

	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return cfg, nil
		}
		path = defaultConfigFile
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
