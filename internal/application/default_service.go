package application

import (
	"github.com/openkraft/testgap/internal/adapters/outbound/cache"
	"github.com/openkraft/testgap/internal/adapters/outbound/config"
	"github.com/openkraft/testgap/internal/adapters/outbound/discovery"
	"github.com/openkraft/testgap/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/testgap/internal/adapters/outbound/inventory"
	"github.com/openkraft/testgap/internal/adapters/outbound/parser"
	"github.com/openkraft/testgap/internal/adapters/outbound/scanner"
)

// NewDefaultAnalysisService wires the production adapters around one parse
// cache shared by discovery and enrichment.
func NewDefaultAnalysisService() *AnalysisService {
	parses := cache.New(parser.New())
	return NewAnalysisService(
		discovery.New(scanner.New(), parses),
		parses,
		inventory.New(),
		config.New(),
		gitinfo.New(),
	)
}
