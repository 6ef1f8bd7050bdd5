package domain

import (
	"path/filepath"
	"strings"
)

// BaseComplexity is the score of any entity whose definition could not be
// analysed.
const BaseComplexity = 1

// ModulePath derives the dotted module path of file relative to root: the
// extension and the first path segment (the source root) are dropped.
// Files outside root yield an empty path.
func ModulePath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) <= 1 {
		return ""
	}
	return strings.Join(parts[1:], ".")
}

// Enrich builds an Entity from a raw discovery record. def may be nil when
// the definition could not be located; the entity then keeps its defaults.
// complexity is clamped to BaseComplexity.
func Enrich(raw RawEntity, modulePath string, def *Definition, complexity int) Entity {
	e := Entity{
		File:       raw.File,
		Name:       raw.Name,
		Kind:       raw.Kind,
		ClassName:  raw.ClassName,
		Line:       raw.Line,
		ModulePath: modulePath,
		Parameters: []string{},
		Complexity: complexity,
	}
	if e.Complexity < BaseComplexity {
		e.Complexity = BaseComplexity
	}
	if def == nil {
		return e
	}

	e.HasDocstring = def.HasDocstring
	if def.Kind == KindFunction {
		for _, p := range def.Parameters {
			if p == "self" || p == "cls" {
				continue
			}
			e.Parameters = append(e.Parameters, p)
		}
		e.ReturnType = def.ReturnType
	}
	return e
}
