package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/openkraft/testgap/internal/domain"
)

// VisualizationFile is the file name of the HTML coverage sunburst.
const VisualizationFile = "coverage_visualization.html"

// ReportService writes rendered reports into an output directory. The
// directory is created on demand and existing reports are overwritten.
type ReportService struct {
	renderer domain.ReportRenderer
}

func NewReportService(renderer domain.ReportRenderer) *ReportService {
	return &ReportService{renderer: renderer}
}

// OutputDir is where reports for a are written: dir when given, else the
// configured output directory under the project root.
func OutputDir(a *domain.Analysis, dir string) string {
	if dir == "" {
		dir = a.Config.EffectiveOutputDir()
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(a.Root, dir)
		}
	}
	return dir
}

func (s *ReportService) WriteTODO(a *domain.Analysis, dir string) (string, error) {
	name := a.Config.EffectiveReportPrefix(a.Root) + "_todo.md"
	return s.write(OutputDir(a, dir), name, s.renderer.TODO(a))
}

func (s *ReportService) WriteCoverage(a *domain.Analysis, dir string) (string, error) {
	name := a.Config.EffectiveReportPrefix(a.Root) + "_coverage.md"
	return s.write(OutputDir(a, dir), name, s.renderer.Coverage(a))
}

func (s *ReportService) WriteStubs(a *domain.Analysis, dir string) ([]string, error) {
	out := OutputDir(a, dir)
	var paths []string
	for _, stub := range s.renderer.Stubs(a) {
		path, err := s.write(out, stub.Name, stub.Content)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *ReportService) WriteVisualization(a *domain.Analysis, dir string) (string, error) {
	html, err := s.renderer.Visualization(a)
	if err != nil {
		return "", err
	}
	return s.write(OutputDir(a, dir), VisualizationFile, html)
}

// WriteAll writes the TODO list, coverage report, stubs and visualization.
func (s *ReportService) WriteAll(a *domain.Analysis, dir string) (*domain.ReportSet, error) {
	var (
		set domain.ReportSet
		err error
	)

	if set.TODO, err = s.WriteTODO(a, dir); err != nil {
		return nil, err
	}
	if set.Coverage, err = s.WriteCoverage(a, dir); err != nil {
		return nil, err
	}
	if set.Stubs, err = s.WriteStubs(a, dir); err != nil {
		return nil, err
	}
	if set.Visualization, err = s.WriteVisualization(a, dir); err != nil {
		return nil, err
	}
	return &set, nil
}

func (s *ReportService) write(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	log.Debug("report written", "path", path)
	return path, nil
}
