package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/openkraft/testgap/internal/domain"
)

var skipDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".tox":          true,
	".venv":         true,
	"venv":          true,
	"__pycache__":   true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"node_modules":  true,
	"build":         true,
	"dist":          true,
}

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan lists the Python files under sourceDir. excludePaths are doublestar
// patterns relative to sourceDir; a pattern matching a directory prunes it.
func (s *FileScanner) Scan(sourceDir string, excludePaths ...string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", sourceDir)
	}

	result := &domain.ScanResult{
		RootPath: absPath,
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		if relPath == "." {
			return nil
		}
		slashed := filepath.ToSlash(relPath)

		if d.IsDir() {
			if skipDirs[d.Name()] || strings.HasSuffix(d.Name(), ".egg-info") || excluded(slashed, excludePaths) {
				return filepath.SkipDir
			}
			return nil
		}

		if excluded(slashed, excludePaths) {
			return nil
		}

		result.AddFile(relPath)
		return nil
	})

	return result, err
}

func excluded(relPath string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.TrimSuffix(p, "/")
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}
