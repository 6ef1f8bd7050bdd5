package cache

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/openkraft/testgap/internal/domain"
)

type entry struct {
	file *domain.SourceFile
	err  error
}

// Store is an in-memory implementation of domain.SourceParser that parses
// each file at most once. Failures are remembered too. A Store lives for a
// single analysis run.
type Store struct {
	parser domain.SourceParser

	mu      sync.Mutex
	entries map[string]entry
	misses  int
}

// New wraps parser with a per-run parse cache.
func New(parser domain.SourceParser) *Store {
	return &Store{
		parser:  parser,
		entries: make(map[string]entry),
	}
}

// ParseFile returns the cached parse of path, parsing it on first use.
func (s *Store) ParseFile(ctx context.Context, path string) (*domain.SourceFile, error) {
	key := cacheKey(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		return e.file, e.err
	}

	file, err := s.parser.ParseFile(ctx, path)
	s.entries[key] = entry{file: file, err: err}
	s.misses++
	return file, err
}

// Parses is the number of times the underlying parser ran.
func (s *Store) Parses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.misses
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
