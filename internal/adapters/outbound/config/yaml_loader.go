package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/testgap/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up at the project root.
const FileName = ".testgap.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .testgap.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .testgap.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	cfg = mergeConfig(domain.DefaultConfig(), cfg)

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// mergeConfig overlays explicit overrides on top of the defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := override

	if result.SourceDir == "" {
		result.SourceDir = base.SourceDir
	}
	if result.TestsDir == "" {
		result.TestsDir = base.TestsDir
	}
	if result.TestFilePattern == "" {
		result.TestFilePattern = base.TestFilePattern
	}
	if len(result.ExcludePaths) == 0 {
		result.ExcludePaths = base.ExcludePaths
	}
	if len(result.ExcludeNames) == 0 {
		result.ExcludeNames = base.ExcludeNames
	}
	if result.IncludeMethods == nil {
		result.IncludeMethods = base.IncludeMethods
	}

	return result
}
