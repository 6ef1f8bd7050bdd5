package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/openkraft/testgap/internal/adapters/outbound/config"
	"github.com/openkraft/testgap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".testgap.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
project_name: Doc Forge
source_dir: lib
output_dir: reports
exclude_paths:
  - "migrations/**"
exclude_names:
  - "_*"
include_methods: false
reports:
  interpolate_insights: true
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Doc Forge", cfg.ProjectName)
	assert.Equal(t, "lib", cfg.SourceDir)
	assert.Equal(t, "reports", cfg.EffectiveOutputDir())
	assert.Equal(t, []string{"migrations/**"}, cfg.ExcludePaths)
	assert.Equal(t, []string{"_*"}, cfg.ExcludeNames)
	assert.False(t, cfg.MethodsIncluded())
	assert.True(t, cfg.Reports.InterpolateInsights)
}

func TestYAMLLoader_OmittedFieldsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `project_name: shop`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSourceDir, cfg.SourceDir)
	assert.Equal(t, domain.DefaultTestsDir, cfg.TestsDir)
	assert.Equal(t, domain.DefaultTestFilePattern, cfg.TestFilePattern)
	assert.True(t, cfg.MethodsIncluded())
	assert.False(t, cfg.Reports.InterpolateInsights)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .testgap.yaml")
}

func TestYAMLLoader_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
tests_dir: /abs/tests
test_file_pattern: "test_[*.py"
`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "tests_dir")
	assert.Contains(t, err.Error(), "test_file_pattern")
}

func TestYAMLLoader_FixtureHasNoConfig(t *testing.T) {
	cfg, err := appconfig.New().Load("../../../../testdata/python-project")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}
