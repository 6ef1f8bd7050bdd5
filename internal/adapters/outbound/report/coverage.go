package report

import (
	"fmt"
	"strings"

	"github.com/openkraft/testgap/internal/domain"
	"github.com/openkraft/testgap/internal/domain/coverage"
)

var prioritySymbols = map[domain.Priority]string{
	domain.PriorityHigh:   "🔴",
	domain.PriorityMedium: "🟠",
	domain.PriorityLow:    "🟡",
}

// complexityGapTemplate is written verbatim unless insight interpolation is
// enabled in the project config.
const complexityGapTemplate = "While {tested_pct:.1f}% of items are tested, only {complexity_pct:.1f}% of complexity is covered."

// Coverage renders the coverage report: summary, per-module breakdown,
// tested items, prioritized untested items and insights.
func (r *Renderer) Coverage(a *domain.Analysis) string {
	var b strings.Builder
	cov := a.Coverage

	fmt.Fprintf(&b, "# 🔬 %s Test Coverage Report\n\n", a.ProjectName)
	b.WriteString("*An analysis of test coverage patterns*\n\n")
	if a.CommitHash != "" {
		fmt.Fprintf(&b, "*Commit: `%s`*\n\n", shortHash(a.CommitHash))
	}

	pct := cov.Percentage()
	b.WriteString("## Coverage Summary\n\n")
	fmt.Fprintf(&b, "- **Overall Coverage**: %.1f%% `%s` \n", pct, Bar(pct))
	fmt.Fprintf(&b, "- **Total Items**: %d\n", len(a.Entities))
	fmt.Fprintf(&b, "- **Tested Items**: %d %s\n", len(cov.Tested), checkMark)
	fmt.Fprintf(&b, "- **Untested Items**: %d %s\n\n", len(cov.Untested), crossMark)

	b.WriteString("## Coverage by Module\n\n")
	for _, m := range cov.Modules {
		if m.Total() == 0 {
			continue
		}
		modulePct := m.Percentage()
		fmt.Fprintf(&b, "### %s\n\n", m.Name)
		fmt.Fprintf(&b, "- **Coverage**: %.1f%% `%s`\n", modulePct, Bar(modulePct))
		fmt.Fprintf(&b, "- **Tested**: %d\n", len(m.Tested))
		fmt.Fprintf(&b, "- **Untested**: %d\n\n", len(m.Untested))
	}

	b.WriteString("## Tested Items\n\n")
	for _, e := range cov.Tested {
		fmt.Fprintf(&b, "- **%s**: `%s` (%s)\n", e.Kind.Title(), displayName(e), e.ModulePath)
	}

	b.WriteString("\n## Untested Items\n\n")
	for _, p := range domain.Priorities {
		tier := a.ByPriority(p)
		if len(tier) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s %s Priority\n\n", prioritySymbols[p], p.Title())
		for _, s := range tier {
			fmt.Fprintf(&b, "- **%s**: `%s` (%s)\n", s.Entity.Kind.Title(), displayName(s.Entity), s.Entity.ModulePath)
			fmt.Fprintf(&b, "  - **Suggestion**: %s\n", s.Approach)
			fmt.Fprintf(&b, "  - **Proposed Test Name**: `%s`\n\n", s.TestName)
		}
	}

	writeInsights(&b, a)
	return b.String()
}

func writeInsights(b *strings.Builder, a *domain.Analysis) {
	in := coverage.ComputeInsights(a.Entities, a.Coverage.Tested)

	b.WriteString("## 🧠 Insights\n\n")
	fmt.Fprintf(b, "- Average code complexity: **%.2f**\n", in.AverageComplexity)

	if in.ComplexityGap() {
		gap := complexityGapTemplate
		if a.Config.Reports.InterpolateInsights {
			gap = fmt.Sprintf("While %.1f%% of items are tested, only %.1f%% of complexity is covered.",
				in.TestedPercent, in.ComplexityPercent)
		}
		fmt.Fprintf(b, "- 🧩 **Complexity Gap**: %s\n", gap)
		b.WriteString("  - *Recommendation*: Focus on testing complex functions first to maximize impact.\n\n")
	} else {
		fmt.Fprintf(b, "- ✨ **Effective Testing**: %.1f%% of items are tested, covering %.1f%% of complexity.\n",
			in.TestedPercent, in.ComplexityPercent)
		b.WriteString("  - *Observation*: Your tests are effectively targeting complex code paths.\n\n")
	}

	b.WriteString("### 🚀 Next Steps\n\n")
	if high := a.ByPriority(domain.PriorityHigh); len(high) > 0 {
		top := high[0].Entity
		fmt.Fprintf(b, "1. Create a test for `%s` in the `%s` module.\n", displayName(top), top.ModulePath)
	}

	b.WriteString("\n### 📊 Visualization\n\n")
	b.WriteString("For an interactive visualization of test coverage, open the generated HTML report.\n")
}
