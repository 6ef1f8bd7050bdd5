package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/testgap/internal/adapters/outbound/cache"
	"github.com/openkraft/testgap/internal/domain"
)

type countingParser struct {
	calls map[string]int
	err   error
}

func (p *countingParser) ParseFile(_ context.Context, path string) (*domain.SourceFile, error) {
	p.calls[path]++
	if p.err != nil {
		return nil, p.err
	}
	return &domain.SourceFile{Path: path}, nil
}

func TestStore_ParsesEachFileOnce(t *testing.T) {
	inner := &countingParser{calls: map[string]int{}}
	store := cache.New(inner)
	ctx := context.Background()

	first, err := store.ParseFile(ctx, "/src/a.py")
	require.NoError(t, err)
	second, err := store.ParseFile(ctx, "/src/a.py")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, inner.calls["/src/a.py"])
	assert.Equal(t, 1, store.Parses())
}

func TestStore_EquivalentPathsShareEntry(t *testing.T) {
	inner := &countingParser{calls: map[string]int{}}
	store := cache.New(inner)
	ctx := context.Background()

	_, err := store.ParseFile(ctx, "/src/pkg/../a.py")
	require.NoError(t, err)
	_, err = store.ParseFile(ctx, "/src/a.py")
	require.NoError(t, err)

	assert.Equal(t, 1, store.Parses())
}

func TestStore_RemembersFailures(t *testing.T) {
	boom := errors.New("boom")
	inner := &countingParser{calls: map[string]int{}, err: boom}
	store := cache.New(inner)
	ctx := context.Background()

	_, err := store.ParseFile(ctx, "/src/bad.py")
	assert.ErrorIs(t, err, boom)
	_, err = store.ParseFile(ctx, "/src/bad.py")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 1, inner.calls["/src/bad.py"])
}
