// Package inventory reads test function names out of a tests directory.
package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gobwas/glob"

	"github.com/openkraft/testgap/internal/domain"
)

// testFuncPattern matches test function definitions by name only.
var testFuncPattern = regexp.MustCompile(`def\s+(test_[^\s(]+)`)

// Reader implements domain.TestInventoryReader.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// Read builds a fresh inventory from the files directly inside testsDir
// whose base name matches filePattern. A missing directory gives an empty
// inventory. Unreadable files are skipped.
func (r *Reader) Read(testsDir, filePattern string) (*domain.TestInventory, error) {
	matcher, err := glob.Compile(filePattern)
	if err != nil {
		return nil, fmt.Errorf("compiling test file pattern %q: %w", filePattern, err)
	}

	inv := domain.NewTestInventory()

	entries, err := os.ReadDir(testsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("tests directory not found", "dir", testsDir)
			return inv, nil
		}
		return nil, fmt.Errorf("reading tests directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !matcher.Match(entry.Name()) {
			continue
		}

		path := filepath.Join(testsDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			log.Debug("skipping unreadable test file", "path", path, "err", err)
			continue
		}

		inv.Add(domain.TestFile{
			Stem:      strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path:      path,
			Functions: TestFunctions(string(content)),
			Content:   string(content),
		})
	}

	log.Debug("test inventory built", "dir", testsDir, "files", len(inv.Files), "functions", inv.FunctionCount())
	return inv, nil
}

// TestFunctions returns the test function names defined in content, in
// order of appearance and with their original case.
func TestFunctions(content string) []string {
	matches := testFuncPattern.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
