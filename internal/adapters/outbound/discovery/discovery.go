// Package discovery lists the functions, classes and methods of a Python
// source tree.
package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/gobwas/glob"

	"github.com/openkraft/testgap/internal/domain"
)

// Discoverer implements domain.EntityDiscoverer on top of a scanner and a
// parser. Pass the run's parse cache as parser so enrichment reuses the trees.
type Discoverer struct {
	scanner domain.SourceScanner
	parser  domain.SourceParser
}

func New(scanner domain.SourceScanner, parser domain.SourceParser) *Discoverer {
	return &Discoverer{scanner: scanner, parser: parser}
}

// Discover returns the module-level functions and classes of every Python
// file under sourceDir, plus methods when opts.IncludeMethods is set.
// Definitions inside function bodies are not entities. Files are visited in
// lexical order and entities come back in source order within a file.
// Files with syntax errors contribute the definitions outside the broken
// regions; files that cannot be read are skipped.
func (d *Discoverer) Discover(ctx context.Context, sourceDir string, opts domain.DiscoveryOptions) ([]domain.RawEntity, error) {
	excludeNames, err := compileAll(opts.ExcludeNames)
	if err != nil {
		return nil, err
	}

	scan, err := d.scanner.Scan(sourceDir, opts.ExcludePaths...)
	if err != nil {
		return nil, err
	}

	var entities []domain.RawEntity
	for _, rel := range scan.SourceFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(scan.RootPath, rel)
		file, err := d.parser.ParseFile(ctx, path)
		if err != nil {
			if file == nil {
				log.Debug("skipping unparsable file", "path", path, "err", err)
				continue
			}
			log.Debug("listing recovered definitions", "path", path, "err", err)
		}

		for _, def := range inSourceOrder(file.Definitions) {
			raw, ok := toRaw(path, def, opts.IncludeMethods)
			if !ok || matchesAny(excludeNames, raw.Name) {
				continue
			}
			entities = append(entities, raw)
		}
	}

	log.Debug("discovery complete", "dir", scan.RootPath, "files", len(scan.SourceFiles), "entities", len(entities))
	return entities, nil
}

func toRaw(path string, def domain.Definition, includeMethods bool) (domain.RawEntity, bool) {
	if def.Nested {
		return domain.RawEntity{}, false
	}

	raw := domain.RawEntity{File: path, Name: def.Name, Kind: def.Kind, Line: def.Line}
	if def.Kind == domain.KindFunction && def.Class != "" {
		if !includeMethods {
			return domain.RawEntity{}, false
		}
		raw.Kind = domain.KindMethod
		raw.ClassName = def.Class
	}
	return raw, true
}

func inSourceOrder(defs []domain.Definition) []domain.Definition {
	sorted := make([]domain.Definition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Line < sorted[j].Line
	})
	return sorted
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling name pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
