package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// ErrInvalidConfig is wrapped by every config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultSourceDir       = "src"
	DefaultTestsDir        = "tests"
	DefaultTestFilePattern = "test_*.py"
)

// ProjectConfig holds project-level configuration loaded from .testgap.yaml.
type ProjectConfig struct {
	ProjectName     string        `yaml:"project_name"      json:"project_name,omitempty"`
	SourceDir       string        `yaml:"source_dir"        json:"source_dir,omitempty"`
	TestsDir        string        `yaml:"tests_dir"         json:"tests_dir,omitempty"`
	OutputDir       string        `yaml:"output_dir"        json:"output_dir,omitempty"`
	ReportPrefix    string        `yaml:"report_prefix"     json:"report_prefix,omitempty"`
	TestFilePattern string        `yaml:"test_file_pattern" json:"test_file_pattern,omitempty"`
	ExcludePaths    []string      `yaml:"exclude_paths"     json:"exclude_paths,omitempty"`
	ExcludeNames    []string      `yaml:"exclude_names"     json:"exclude_names,omitempty"`
	IncludeMethods  *bool         `yaml:"include_methods"   json:"include_methods,omitempty"`
	Reports         ReportsConfig `yaml:"reports"           json:"reports,omitempty"`
}

// ReportsConfig tunes report rendering.
type ReportsConfig struct {
	// InterpolateInsights fills in the percentages of the complexity-gap
	// insight. Off by default: that line has always been printed with its
	// placeholders.
	InterpolateInsights bool `yaml:"interpolate_insights" json:"interpolate_insights,omitempty"`
}

// DefaultConfig returns the conventional src/ + tests/ layout.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		SourceDir:       DefaultSourceDir,
		TestsDir:        DefaultTestsDir,
		TestFilePattern: DefaultTestFilePattern,
	}
}

// MethodsIncluded reports whether class methods are discovered as entities.
func (c ProjectConfig) MethodsIncluded() bool {
	return c.IncludeMethods == nil || *c.IncludeMethods
}

// EffectiveOutputDir is the directory reports land in, relative to the
// project root unless absolute.
func (c ProjectConfig) EffectiveOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.TestsDir
}

// EffectiveProjectName falls back to the base name of the project path.
func (c ProjectConfig) EffectiveProjectName(projectPath string) string {
	if c.ProjectName != "" {
		return c.ProjectName
	}
	return filepath.Base(projectPath)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// EffectiveReportPrefix is the file-name prefix of the Markdown reports.
func (c ProjectConfig) EffectiveReportPrefix(projectPath string) string {
	if c.ReportPrefix != "" {
		return c.ReportPrefix
	}
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(c.EffectiveProjectName(projectPath)), "_"), "_")
	if slug == "" {
		return "testgap"
	}
	return slug
}

// Validate checks the config for values that would make a run meaningless.
func (c ProjectConfig) Validate() error {
	var errs []string

	if filepath.IsAbs(c.SourceDir) {
		errs = append(errs, fmt.Sprintf("source_dir %q must be relative to the project root", c.SourceDir))
	}
	if filepath.IsAbs(c.TestsDir) {
		errs = append(errs, fmt.Sprintf("tests_dir %q must be relative to the project root", c.TestsDir))
	}
	if strings.TrimSpace(c.TestFilePattern) == "" {
		errs = append(errs, "test_file_pattern must not be empty")
	} else if _, err := glob.Compile(c.TestFilePattern); err != nil {
		errs = append(errs, fmt.Sprintf("test_file_pattern %q: %v", c.TestFilePattern, err))
	}
	for _, p := range c.ExcludePaths {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Sprintf("exclude_paths entry %q is not a valid pattern", p))
		}
	}
	for _, p := range c.ExcludeNames {
		if _, err := glob.Compile(p); err != nil {
			errs = append(errs, fmt.Sprintf("exclude_names entry %q: %v", p, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
