package domain

import (
	"context"
	"strings"
)

// SourceScanner lists the source files under a directory.
type SourceScanner interface {
	Scan(sourceDir string, excludePaths ...string) (*ScanResult, error)
}

// ScanResult holds the result of scanning a source directory.
type ScanResult struct {
	RootPath    string   `json:"root_path"`
	SourceFiles []string `json:"source_files"` // relative to RootPath
}

// AddFile records relPath when it is a Python file. Other files and paths
// already recorded are ignored.
func (s *ScanResult) AddFile(relPath string) {
	if !strings.HasSuffix(relPath, ".py") {
		return
	}
	for _, f := range s.SourceFiles {
		if f == relPath {
			return
		}
	}
	s.SourceFiles = append(s.SourceFiles, relPath)
}

// SourceParser turns a file on disk into its definitions.
type SourceParser interface {
	ParseFile(ctx context.Context, path string) (*SourceFile, error)
}

// EntityDiscoverer returns the raw code structures of a source directory.
type EntityDiscoverer interface {
	Discover(ctx context.Context, sourceDir string, opts DiscoveryOptions) ([]RawEntity, error)
}

// DiscoveryOptions narrows what discovery reports.
type DiscoveryOptions struct {
	ExcludePaths   []string // doublestar patterns relative to the source dir
	ExcludeNames   []string // glob patterns matched against entity names
	IncludeMethods bool
}

// TestInventoryReader builds the test inventory of a tests directory from
// the files whose base name matches filePattern.
type TestInventoryReader interface {
	Read(testsDir, filePattern string) (*TestInventory, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// GitInfo answers version-control questions about the project.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
}

// StubFile is a generated test scaffold.
type StubFile struct {
	Module  string
	Name    string
	Content string
	Items   int
}

// ReportRenderer turns an analysis into report documents.
type ReportRenderer interface {
	TODO(a *Analysis) string
	Coverage(a *Analysis) string
	Stubs(a *Analysis) []StubFile
	Visualization(a *Analysis) (string, error)
}
