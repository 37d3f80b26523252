package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/journalkit/journal"
)

// createConfig is the YAML file accepted by "create --config".
//
//	size: 1048576
//	journal:
//	  block_size: 256
//	  blocks_per_page: 64
//	geometry:
//	  header_size: 4096
//
// Fields left out keep their defaults.
type createConfig struct {
	Size     int64              `yaml:"size"`
	Journal  journal.Parameters `yaml:"journal"`
	Geometry journal.Geometry   `yaml:"geometry"`
}

func defaultCreateConfig() createConfig {
	return createConfig{
		Journal:  journal.DefaultParameters(),
		Geometry: journal.DefaultGeometry(),
	}
}

func loadCreateConfig(path string) (createConfig, error) {
	cfg := defaultCreateConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
