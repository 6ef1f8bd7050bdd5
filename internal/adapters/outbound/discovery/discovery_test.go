package discovery_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/testgap/internal/adapters/outbound/discovery"
	"github.com/openkraft/testgap/internal/adapters/outbound/parser"
	"github.com/openkraft/testgap/internal/adapters/outbound/scanner"
	"github.com/openkraft/testgap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceDir = "../../../../testdata/python-project/src"

type summary struct {
	Name  string
	Kind  domain.EntityKind
	Class string
	Line  int
}

func discover(t *testing.T, opts domain.DiscoveryOptions) []domain.RawEntity {
	t.Helper()
	d := discovery.New(scanner.New(), parser.New())
	entities, err := d.Discover(context.Background(), sourceDir, opts)
	require.NoError(t, err)
	return entities
}

func summarize(entities []domain.RawEntity) []summary {
	out := make([]summary, len(entities))
	for i, e := range entities {
		out[i] = summary{e.Name, e.Kind, e.ClassName, e.Line}
	}
	return out
}

func TestDiscoverer_FixtureProject(t *testing.T) {
	entities := discover(t, domain.DiscoveryOptions{IncludeMethods: true})

	assert.Equal(t, []summary{
		{"Cart", domain.KindClass, "", 4},
		{"__init__", domain.KindMethod, "Cart", 7},
		{"add_item", domain.KindMethod, "Cart", 11},
		{"total", domain.KindMethod, "Cart", 16},
		{"apply_discount", domain.KindFunction, "", 24},
		{"PaymentGateway", domain.KindClass, "", 1},
		{"__init__", domain.KindMethod, "PaymentGateway", 2},
		{"charge", domain.KindMethod, "PaymentGateway", 5},
		{"format_amount", domain.KindFunction, "", 17},
		{"slugify", domain.KindFunction, "", 1},
		{"helper", domain.KindFunction, "", 6},
	}, summarize(entities))
}

func TestDiscoverer_FilesAreAbsolute(t *testing.T) {
	entities := discover(t, domain.DiscoveryOptions{})

	require.NotEmpty(t, entities)
	for _, e := range entities {
		assert.True(t, filepath.IsAbs(e.File), e.File)
	}
	assert.Equal(t, filepath.Join("shop", "cart.py"), tail(entities[0].File, 2))
}

func TestDiscoverer_WithoutMethods(t *testing.T) {
	entities := discover(t, domain.DiscoveryOptions{IncludeMethods: false})

	for _, e := range entities {
		assert.NotEqual(t, domain.KindMethod, e.Kind)
	}
	assert.Len(t, entities, 6)
}

func TestDiscoverer_NestedFunctionsAreNotEntities(t *testing.T) {
	entities := discover(t, domain.DiscoveryOptions{IncludeMethods: true})

	for _, e := range entities {
		assert.NotEqual(t, "inner", e.Name)
	}
}

func TestDiscoverer_ExcludeNames(t *testing.T) {
	entities := discover(t, domain.DiscoveryOptions{
		IncludeMethods: true,
		ExcludeNames:   []string{"__*__", "format_*"},
	})

	for _, e := range entities {
		assert.NotEqual(t, "__init__", e.Name)
		assert.NotEqual(t, "format_amount", e.Name)
	}
	assert.Len(t, entities, 8)
}

func TestDiscoverer_ExcludePaths(t *testing.T) {
	entities := discover(t, domain.DiscoveryOptions{ExcludePaths: []string{"shop/payments"}})

	for _, e := range entities {
		assert.NotContains(t, e.File, "payments")
	}
}

func TestDiscoverer_InvalidNamePattern(t *testing.T) {
	d := discovery.New(scanner.New(), parser.New())
	_, err := d.Discover(context.Background(), sourceDir, domain.DiscoveryOptions{ExcludeNames: []string{"[abc"}})
	assert.Error(t, err)
}

func TestDiscoverer_MissingSourceDir(t *testing.T) {
	d := discovery.New(scanner.New(), parser.New())
	_, err := d.Discover(context.Background(), filepath.Join(t.TempDir(), "src"), domain.DiscoveryOptions{})
	assert.Error(t, err)
}

func TestDiscoverer_SyntaxErrorKeepsValidDefinitions(t *testing.T) {
	dir := t.TempDir()
	src := "def good():\n    return 1\n\n\nclass Fine:\n    pass\n\n\ndef bad(:\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mixed.py"), []byte(src), 0644))

	d := discovery.New(scanner.New(), parser.New())
	entities, err := d.Discover(context.Background(), dir, domain.DiscoveryOptions{IncludeMethods: true})
	require.NoError(t, err)

	assert.Equal(t, []summary{
		{"good", domain.KindFunction, "", 1},
		{"Fine", domain.KindClass, "", 5},
	}, summarize(entities))
}

func tail(path string, n int) string {
	parts := []string{}
	for i := 0; i < n; i++ {
		parts = append([]string{filepath.Base(path)}, parts...)
		path = filepath.Dir(path)
	}
	return filepath.Join(parts...)
}
