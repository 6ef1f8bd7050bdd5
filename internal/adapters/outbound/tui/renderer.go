package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/testgap/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

// maxSuggestions caps the suggestions listed in the summary.
const maxSuggestions = 5

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	priorityColors = map[domain.Priority]lipgloss.Color{
		domain.PriorityHigh:   danger,
		domain.PriorityMedium: warning,
		domain.PriorityLow:    info,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	moduleStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderCoverage formats the coverage summary of an analysis for the terminal.
func RenderCoverage(a *domain.Analysis) string {
	var b strings.Builder
	cov := a.Coverage
	pct := cov.Percentage()

	// ── Header ──
	title := headerStyle.Render("testgap")
	subtitle := dimStyle.Render(a.ProjectName + " · Test Gap Analysis")
	pctStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(coverageColor(pct)).
		Render(fmt.Sprintf("%.1f%% covered", pct))
	counts := dimStyle.Render(fmt.Sprintf("%d of %d entities tested", len(cov.Tested), cov.Total()))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + pctStyled + "\n" + counts))
	b.WriteString("\n\n")

	// ── Modules ──
	if len(cov.Modules) > 0 {
		b.WriteString("  " + titleStyle.Render("Modules") + "\n\n")
		for _, m := range cov.Modules {
			renderModule(&b, m)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Suggestions ──
	if len(a.Suggestions) == 0 {
		b.WriteString("  " + passStyle.Render("Every entity has a matching test.") + "\n\n")
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Untested"))
	b.WriteString("  ")
	for _, p := range domain.Priorities {
		if n := len(a.ByPriority(p)); n > 0 {
			b.WriteString(priorityTag(p).Render(fmt.Sprintf("%d %s", n, p)))
			b.WriteString("  ")
		}
	}
	b.WriteString("\n\n")

	for i, s := range a.Suggestions {
		if i == maxSuggestions {
			more := len(a.Suggestions) - maxSuggestions
			b.WriteString("    " + faintStyle.Render(fmt.Sprintf("… %d more in the coverage report", more)) + "\n")
			break
		}
		renderSuggestion(&b, s)
	}

	b.WriteString("\n")
	return b.String()
}

func renderModule(b *strings.Builder, m domain.ModuleCoverage) {
	pct := m.Percentage()
	bar := coloredBar(pct, 20)
	pctText := lipgloss.NewStyle().Bold(true).Foreground(coverageColor(pct)).Render(fmt.Sprintf("%5.1f%%", pct))
	counts := dimStyle.Render(fmt.Sprintf("%d/%d", len(m.Tested), m.Total()))

	name := moduleStyle.Render(padRight(m.Name, 24))
	fmt.Fprintf(b, "  %s %s  %s %s\n", name, bar, pctText, counts)
}

func renderSuggestion(b *strings.Builder, s domain.Suggestion) {
	e := s.Entity
	name := e.Name
	if e.Kind == domain.KindMethod && e.ClassName != "" {
		name = e.ClassName + "." + e.Name
	}

	icon := priorityTag(s.Priority).Render("●")
	label := padRight(fmt.Sprintf("%s %s", e.Kind, name), 40)
	score := dimStyle.Render(fmt.Sprintf("complexity %d", e.Complexity))

	fmt.Fprintf(b, "    %s %s %s\n", icon, label, score)
	fmt.Fprintf(b, "      %s\n", faintStyle.Render(s.TestName+"  "+e.ModulePath))
}

// RenderHistory lists past runs oldest first with the change against the
// previous run.
func RenderHistory(entries []domain.CoverageEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No coverage history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Coverage History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		pctStyled := lipgloss.NewStyle().
			Foreground(coverageColor(e.Percentage)).
			Render(fmt.Sprintf("%5.1f%%", e.Percentage))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			pctStyled,
			dimStyle.Render(fmt.Sprintf("%d/%d", e.Tested, e.Total)),
		)

		if i > 0 {
			diff := e.Percentage - entries[i-1].Percentage
			if diff >= 0.05 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%.1f", diff))
			} else if diff <= -0.05 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%.1f", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

func priorityTag(p domain.Priority) lipgloss.Style {
	if c, ok := priorityColors[p]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(p == domain.PriorityHigh)
	}
	return failStyle
}

func coloredBar(pct float64, width int) string {
	filled := max(0, min(int(pct)*width/100, width))
	empty := width - filled

	color := coverageColor(pct)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func coverageColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 80:
		return success
	case pct >= 60:
		return lipgloss.Color("#A3E635") // lime
	case pct >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
