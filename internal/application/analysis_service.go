package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/openkraft/testgap/internal/domain"
	"github.com/openkraft/testgap/internal/domain/complexity"
	"github.com/openkraft/testgap/internal/domain/coverage"
)

// AnalysisService orchestrates the analysis pipeline:
// config → discover → enrich → test inventory → match → prioritize → commit stamp.
//
// The parser given here should be the same parse cache the discoverer uses,
// so each source file is parsed once per run.
type AnalysisService struct {
	discoverer   domain.EntityDiscoverer
	parser       domain.SourceParser
	inventory    domain.TestInventoryReader
	configLoader domain.ConfigLoader
	git          domain.GitInfo
}

func NewAnalysisService(
	discoverer domain.EntityDiscoverer,
	parser domain.SourceParser,
	inventory domain.TestInventoryReader,
	configLoader domain.ConfigLoader,
	git domain.GitInfo,
) *AnalysisService {
	return &AnalysisService{
		discoverer:   discoverer,
		parser:       parser,
		inventory:    inventory,
		configLoader: configLoader,
		git:          git,
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, projectPath string) (*domain.Analysis, error) {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	// 0. Load config
	cfg, err := s.configLoader.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// 1. Discover raw entities
	sourceDir := filepath.Join(root, cfg.SourceDir)
	raws, err := s.discoverer.Discover(ctx, sourceDir, domain.DiscoveryOptions{
		ExcludePaths:   cfg.ExcludePaths,
		ExcludeNames:   cfg.ExcludeNames,
		IncludeMethods: cfg.MethodsIncluded(),
	})
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("discovering entities: %w", err)
		}
		log.Warn("source directory not found, nothing to analyze", "dir", sourceDir)
	}

	// 2. Enrich
	entities, err := s.enrich(ctx, root, raws)
	if err != nil {
		return nil, err
	}

	// 3. Build the test inventory
	inv, err := s.inventory.Read(filepath.Join(root, cfg.TestsDir), cfg.TestFilePattern)
	if err != nil {
		return nil, fmt.Errorf("reading tests: %w", err)
	}

	// 4. Match and prioritize
	cov := coverage.Match(entities, inv)
	suggestions := coverage.Prioritize(cov.Untested)

	// 5. Stamp the commit when the project is under git
	hash, err := s.git.CommitHash(root)
	if err != nil {
		log.Debug("no commit hash", "err", err)
	}

	log.Debug("analysis complete",
		"entities", len(entities),
		"tested", len(cov.Tested),
		"untested", len(cov.Untested),
	)

	return &domain.Analysis{
		ProjectName: cfg.EffectiveProjectName(root),
		Root:        root,
		Config:      cfg,
		Entities:    entities,
		Inventory:   inv,
		Coverage:    cov,
		Suggestions: suggestions,
		CommitHash:  hash,
	}, nil
}

// enrich attaches module path, signature and complexity to every raw
// entity. Parse failures leave an entity at its defaults.
func (s *AnalysisService) enrich(ctx context.Context, root string, raws []domain.RawEntity) ([]domain.Entity, error) {
	entities := make([]domain.Entity, 0, len(raws))
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var def *domain.Definition
		file, err := s.parser.ParseFile(ctx, raw.File)
		if err != nil {
			log.Debug("enrichment skipped", "entity", raw.Name, "path", raw.File, "err", err)
		} else {
			def = file.Find(raw.Kind, raw.Name, raw.ClassName)
		}

		entities = append(entities, domain.Enrich(
			raw,
			domain.ModulePath(root, raw.File),
			def,
			complexity.Estimate(raw.Kind, def),
		))
	}
	return entities, nil
}
