package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		configJSON  string
		expectError bool
		workers     int
		exclude     []string
	}{
		{
			name:       "full config",
			configJSON: `{"workers": 4, "exclude": ["generated/", "third_party/"]}`,
			workers:    4,
			exclude:    []string{"generated/", "third_party/"},
		},
		{
			name:        "invalid json",
			configJSON:  `{"invalid": json}`,
			expectError: true,
		},
		{
			name:       "empty config keeps defaults",
			configJSON: `{}`,
			workers:    Default().Workers,
		},
		{
			name:       "non-positive workers clamped",
			configJSON: `{"workers": -3}`,
			workers:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile, err := os.CreateTemp("", "config_test_*.json")
			if err != nil {
				t.Fatalf("Failed to create temp file: %v", err)
			}
			defer os.Remove(tmpFile.Name())

			if _, err := tmpFile.WriteString(tt.configJSON); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			tmpFile.Close()

			config, err := LoadConfig(tmpFile.Name())

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if config.Workers != tt.workers {
				t.Errorf("Expected %d workers, got %d", tt.workers, config.Workers)
			}
			if len(config.Exclude) != len(tt.exclude) {
				t.Fatalf("Expected %d exclude entries, got %d", len(tt.exclude), len(config.Exclude))
			}
			for i, e := range tt.exclude {
				if config.Exclude[i] != e {
					t.Errorf("Exclude %d: expected %s, got %s", i, e, config.Exclude[i])
				}
			}
		})
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("nonexistent.json")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
