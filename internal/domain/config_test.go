package domain_test

import (
	"testing"

	"github.com/openkraft/testgap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "src", cfg.SourceDir)
	assert.Equal(t, "tests", cfg.TestsDir)
	assert.Equal(t, "test_*.py", cfg.TestFilePattern)
	assert.True(t, cfg.MethodsIncluded())
	assert.False(t, cfg.Reports.InterpolateInsights)
	assert.NoError(t, cfg.Validate())
}

func TestProjectConfig_MethodsIncluded(t *testing.T) {
	off := false
	cfg := domain.DefaultConfig()
	cfg.IncludeMethods = &off
	assert.False(t, cfg.MethodsIncluded())
}

func TestProjectConfig_EffectiveOutputDir(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "tests", cfg.EffectiveOutputDir())

	cfg.OutputDir = "reports"
	assert.Equal(t, "reports", cfg.EffectiveOutputDir())
}

func TestProjectConfig_EffectiveNames(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "doc-forge", cfg.EffectiveProjectName("/work/doc-forge"))
	assert.Equal(t, "doc_forge", cfg.EffectiveReportPrefix("/work/doc-forge"))
	assert.Equal(t, "my_app_2", cfg.EffectiveReportPrefix("/work/My App 2"))
	assert.Equal(t, "testgap", cfg.EffectiveReportPrefix("/work/---"))

	cfg.ProjectName = "Doc Forge"
	assert.Equal(t, "Doc Forge", cfg.EffectiveProjectName("/work/x"))
	assert.Equal(t, "doc_forge", cfg.EffectiveReportPrefix("/work/x"))

	cfg.ReportPrefix = "nightly"
	assert.Equal(t, "nightly", cfg.EffectiveReportPrefix("/work/x"))
}

func TestProjectConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ProjectConfig)
		errMsg string
	}{
		{"absolute source dir", func(c *domain.ProjectConfig) { c.SourceDir = "/src" }, "source_dir"},
		{"absolute tests dir", func(c *domain.ProjectConfig) { c.TestsDir = "/tests" }, "tests_dir"},
		{"empty pattern", func(c *domain.ProjectConfig) { c.TestFilePattern = "  " }, "must not be empty"},
		{"bad pattern", func(c *domain.ProjectConfig) { c.TestFilePattern = "test_[*.py" }, "test_file_pattern"},
		{"bad exclude path", func(c *domain.ProjectConfig) { c.ExcludePaths = []string{"legacy/["} }, "exclude_paths"},
		{"bad exclude name", func(c *domain.ProjectConfig) { c.ExcludeNames = []string{"_[x"} }, "exclude_names"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProjectConfig_ValidateAcceptsPatterns(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.ExcludePaths = []string{"legacy/**", "migrations"}
	cfg.ExcludeNames = []string{"_*", "__*__"}
	assert.NoError(t, cfg.Validate())
}
