package coverage

import (
	"github.com/openkraft/testgap/internal/domain"
	"github.com/openkraft/testgap/internal/domain/complexity"
)

// Insights compares the share of entities tested with the share of total
// complexity those tested entities carry.
type Insights struct {
	TotalItems        int
	TotalComplexity   int
	AverageComplexity float64
	TestedPercent     float64
	ComplexityPercent float64
}

// ComplexityGap is true when tests favour the simpler entities.
func (i Insights) ComplexityGap() bool {
	return i.ComplexityPercent < i.TestedPercent
}

// ComputeInsights derives Insights from all entities and the tested subset.
// Empty inputs give zero percentages, not 100.
func ComputeInsights(entities, tested []domain.Entity) Insights {
	in := Insights{
		TotalItems:      len(entities),
		TotalComplexity: complexity.Total(entities),
	}
	testedComplexity := complexity.Total(tested)

	if in.TotalItems > 0 {
		in.AverageComplexity = float64(in.TotalComplexity) / float64(in.TotalItems)
		in.TestedPercent = float64(len(tested)) / float64(in.TotalItems) * 100
	}
	if in.TotalComplexity > 0 {
		in.ComplexityPercent = float64(testedComplexity) / float64(in.TotalComplexity) * 100
	}
	return in
}
