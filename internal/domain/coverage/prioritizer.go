package coverage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openkraft/testgap/internal/domain"
)

const (
	highThreshold   = 5
	mediumThreshold = 2
)

// PriorityFor buckets a complexity score: above 5 is high, above 2 medium,
// anything else low.
func PriorityFor(complexity int) domain.Priority {
	switch {
	case complexity > highThreshold:
		return domain.PriorityHigh
	case complexity > mediumThreshold:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// TestName is the proposed test function name for e.
func TestName(e domain.Entity) string {
	return "test_" + strings.ToLower(e.Name)
}

// Approach suggests how to test e.
func Approach(e domain.Entity) string {
	switch {
	case e.Kind == domain.KindClass:
		return fmt.Sprintf("Create a test class `Test%s` with a setUp method and an initialization test, then test each public method.", e.Name)
	case len(e.Parameters) > 0:
		return fmt.Sprintf("Test with various input combinations for parameters: %s.", strings.Join(e.Parameters, ", "))
	default:
		return "Create a simple function test that verifies expected behavior."
	}
}

// Prioritize orders untested entities most-important first and wraps each in
// a Suggestion. Ordering: complexity descending, classes before other kinds,
// undocumented before documented, then name.
func Prioritize(untested []domain.Entity) []domain.Suggestion {
	ranked := make([]domain.Entity, len(untested))
	copy(ranked, untested)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Complexity != b.Complexity {
			return a.Complexity > b.Complexity
		}
		if ac, bc := a.Kind == domain.KindClass, b.Kind == domain.KindClass; ac != bc {
			return ac
		}
		if a.HasDocstring != b.HasDocstring {
			return !a.HasDocstring
		}
		return a.Name < b.Name
	})

	suggestions := make([]domain.Suggestion, 0, len(ranked))
	for _, e := range ranked {
		suggestions = append(suggestions, domain.Suggestion{
			Entity:   e,
			Priority: PriorityFor(e.Complexity),
			Approach: Approach(e),
			TestName: TestName(e),
		})
	}
	return suggestions
}
