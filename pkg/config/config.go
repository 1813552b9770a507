package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

type Config struct {
	// Workers bounds how many files are rewritten concurrently.
	Workers int `json:"workers"`
	// Exclude lists extra path fragments to skip during directory walks.
	Exclude []string `json:"exclude"`
}

func Default() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
	}
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}

	return config, nil
}
