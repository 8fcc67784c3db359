package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/crategraph/pkg/errors"
)

// Config is the JSON run configuration accepted by resolve --config. It
// mirrors the flags; flags win when both are given. In test mode the graph is
// loaded from the target directory's snapshot fixture instead of the network.
type Config struct {
	PackageName string `json:"package_name"`
	Version     string `json:"version"`
	TestMode    bool   `json:"test_mode"`
	TargetDir   string `json:"target_dir"`
	MaxDepth    int    `json:"max_depth"`
	Exclude     string `json:"exclude"`
}

// loadConfig reads and validates a config file.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if cfg.PackageName == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: package_name is required", path)
	}
	if cfg.Version == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: version is required", path)
	}
	if cfg.TargetDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: target_dir is required", path)
	}
	return &cfg, nil
}

// snapshotPath returns the graph snapshot location inside the target
// directory.
func (c *Config) snapshotPath() string {
	return filepath.Join(c.TargetDir, "graph.json")
}
