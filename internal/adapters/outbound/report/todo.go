package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openkraft/testgap/internal/domain"
)

// TODO lists every entity grouped by module path, classes first, then
// functions, then methods.
func (r *Renderer) TODO(a *domain.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Comprehensive Test TODO\n\n", a.ProjectName)
	b.WriteString("This document outlines all testable code structures and their current test status.\n\n")
	if a.CommitHash != "" {
		fmt.Fprintf(&b, "*Commit: `%s`*\n\n", shortHash(a.CommitHash))
	}

	byModule := make(map[string][]domain.Entity)
	for _, e := range a.Entities {
		byModule[e.ModulePath] = append(byModule[e.ModulePath], e)
	}
	modules := make([]string, 0, len(byModule))
	for m := range byModule {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	for _, module := range modules {
		fmt.Fprintf(&b, "## Module: `%s`\n\n", module)

		var classes, functions, methods []domain.Entity
		for _, e := range byModule[module] {
			switch e.Kind {
			case domain.KindClass:
				classes = append(classes, e)
			case domain.KindFunction:
				functions = append(functions, e)
			case domain.KindMethod:
				methods = append(methods, e)
			}
		}

		if len(classes) > 0 {
			b.WriteString("### Classes\n\n")
			sortEntities(classes, false)
			for _, e := range classes {
				writeTODOLine(&b, a, e)
			}
		}
		if len(functions) > 0 {
			b.WriteString("\n### Functions\n\n")
			sortEntities(functions, false)
			for _, e := range functions {
				writeTODOLine(&b, a, e)
			}
		}
		if len(methods) > 0 {
			b.WriteString("\n### Methods\n\n")
			sortEntities(methods, true)
			for _, e := range methods {
				writeTODOLine(&b, a, e)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeTODOLine(b *strings.Builder, a *domain.Analysis, e domain.Entity) {
	name := fmt.Sprintf("**%s**", e.Name)
	if e.Kind == domain.KindMethod {
		name = fmt.Sprintf("**%s**.%s", e.ClassName, e.Name)
	}
	fmt.Fprintf(b, "- [%s] %s (%s) | Docstring: %s | Tested: %s | Complexity: %d\n",
		e.Kind.Title(),
		name,
		strings.Join(e.Parameters, ", "),
		mark(e.HasDocstring),
		mark(a.Coverage.IsTested(e)),
		e.Complexity,
	)
}

func sortEntities(entities []domain.Entity, byClass bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		if byClass && entities[i].ClassName != entities[j].ClassName {
			return entities[i].ClassName < entities[j].ClassName
		}
		return entities[i].Name < entities[j].Name
	})
}
