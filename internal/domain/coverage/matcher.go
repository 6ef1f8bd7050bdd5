// Package coverage decides which entities the test suite covers, by name
// pattern alone, and ranks the rest for test writing.
package coverage

import (
	"sort"
	"strings"

	"github.com/openkraft/testgap/internal/domain"
)

// RootModule groups entities whose module path has a single segment.
const RootModule = "root"

// Patterns returns the lower-cased test-name fragments whose presence in the
// inventory marks e as tested:
//
//	test_<name>
//	test_<last module segment>_<name>
//	test_<name>_            (classes only)
func Patterns(e domain.Entity) []string {
	name := strings.ToLower(e.Name)
	patterns := []string{"test_" + name}

	if parts := e.ModuleParts(); len(parts) > 0 {
		patterns = append(patterns, "test_"+strings.ToLower(parts[len(parts)-1])+"_"+name)
	} else {
		patterns = append(patterns, "test_"+name)
	}

	if e.Kind == domain.KindClass {
		patterns = append(patterns, "test_"+name+"_")
	}
	return patterns
}

// IsTested reports whether any pattern of e is a substring of any test name.
func IsTested(e domain.Entity, inv *domain.TestInventory) bool {
	for _, p := range Patterns(e) {
		if inv.ContainsSubstring(p) {
			return true
		}
	}
	return false
}

// ModuleName is the grouping key of e: every module-path segment but the
// last, or RootModule.
func ModuleName(e domain.Entity) string {
	parts := e.ModuleParts()
	if len(parts) > 1 {
		return strings.Join(parts[:len(parts)-1], ".")
	}
	return RootModule
}

// Match partitions entities into tested and untested. Both lists come back
// sorted by name; module groups keep the order in which modules were first
// seen and the input order within each group.
func Match(entities []domain.Entity, inv *domain.TestInventory) domain.Coverage {
	cov := domain.Coverage{
		Tested:   []domain.Entity{},
		Untested: []domain.Entity{},
	}
	index := make(map[string]int)

	for _, e := range entities {
		name := ModuleName(e)
		i, ok := index[name]
		if !ok {
			i = len(cov.Modules)
			index[name] = i
			cov.Modules = append(cov.Modules, domain.ModuleCoverage{
				Name:     name,
				Tested:   []domain.Entity{},
				Untested: []domain.Entity{},
			})
		}

		if IsTested(e, inv) {
			cov.Tested = append(cov.Tested, e)
			cov.Modules[i].Tested = append(cov.Modules[i].Tested, e)
		} else {
			cov.Untested = append(cov.Untested, e)
			cov.Modules[i].Untested = append(cov.Modules[i].Untested, e)
		}
	}

	sortByName(cov.Tested)
	sortByName(cov.Untested)
	return cov
}

func sortByName(entities []domain.Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Name < entities[j].Name
	})
}
