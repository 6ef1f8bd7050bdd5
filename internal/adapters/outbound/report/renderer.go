// Package report renders an analysis as Markdown documents, Python test
// stubs and an HTML sunburst.
package report

import (
	"strings"

	"github.com/openkraft/testgap/internal/domain"
)

const (
	checkMark = "✅"
	crossMark = "❌"
	barWidth  = 50
)

// Renderer implements domain.ReportRenderer.
type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

// Bar draws pct as a fixed-width bar, filled cells rounded down.
func Bar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func mark(ok bool) string {
	if ok {
		return checkMark
	}
	return crossMark
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func displayName(e domain.Entity) string {
	if e.Kind == domain.KindMethod && e.ClassName != "" {
		return e.ClassName + "." + e.Name
	}
	return e.Name
}
