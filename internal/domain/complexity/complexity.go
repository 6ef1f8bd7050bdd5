// Package complexity estimates how hard an entity is to test from the
// structural counts of its definition. The score is a coarse heuristic used
// only to order test-writing work; it is not cyclomatic complexity.
package complexity

import (
	"strings"

	"github.com/openkraft/testgap/internal/domain"
)

const (
	callsPerPoint   = 5
	returnsPerPoint = 2
	classBonus      = 2
	exceptBonus     = 2
	asyncBonus      = 1
)

// Markers searched for in the rendered source of a definition.
const (
	ExceptMarker = "except"
	AsyncMarker  = "async"
)

// Estimate scores def as an entity of the given kind. A nil definition (not
// found, or the file failed to parse) scores domain.BaseComplexity.
func Estimate(kind domain.EntityKind, def *domain.Definition) int {
	if def == nil {
		return domain.BaseComplexity
	}

	score := domain.BaseComplexity + def.Branches + def.Calls/callsPerPoint + def.Returns/returnsPerPoint

	if kind == domain.KindClass {
		score += classBonus
	}
	if strings.Contains(def.Source, ExceptMarker) {
		score += exceptBonus
	}
	if strings.Contains(def.Source, AsyncMarker) {
		score += asyncBonus
	}
	return score
}

// Total sums the complexity of entities.
func Total(entities []domain.Entity) int {
	total := 0
	for _, e := range entities {
		total += e.Complexity
	}
	return total
}
