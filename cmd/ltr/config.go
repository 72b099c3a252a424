package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// config is the CLI configuration. Flags override whatever the config file
// sets.
type config struct {
	Prompt      string `json:"prompt" yaml:"prompt"`
	HistoryFile string `json:"history_file" yaml:"history_file"`
	HistorySize int    `json:"history_size" yaml:"history_size"`
	Prec        uint   `json:"precision" yaml:"precision"`
	Format      string `json:"format" yaml:"format"`
}

func defaultConfig() *config {
	return &config{
		Prompt:      "> ",
		HistoryFile: filepath.Join(os.TempDir(), "ltr_history"),
		HistorySize: 1000,
		Prec:        64,
		Format:      "%g",
	}
}

// loadConfig loads configuration from a YAML or JSON file, falling back to
// defaults when no path is given or the file does not exist.
func loadConfig(path string) (*config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	path = expandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %v", err)
		}
	default:
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %v", err)
		}
	}
	return conf, nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
