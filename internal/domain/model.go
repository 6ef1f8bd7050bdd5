package domain

import "strings"

// EntityKind classifies a discovered code structure.
type EntityKind string

const (
	KindFunction EntityKind = "function"
	KindClass    EntityKind = "class"
	KindMethod   EntityKind = "method"
)

// Title returns the kind with its first letter upper-cased, as shown in reports.
func (k EntityKind) Title() string {
	return title(string(k))
}

func title(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RawEntity is what the discovery adapter reports for a single definition.
type RawEntity struct {
	File      string     `json:"file"`
	Name      string     `json:"name"`
	Kind      EntityKind `json:"type"`
	ClassName string     `json:"class_name,omitempty"`
	Line      int        `json:"line,omitempty"`
}

// Entity is a discovered code structure enriched with module, signature and
// complexity information.
type Entity struct {
	File         string     `json:"file"`
	Name         string     `json:"name"`
	Kind         EntityKind `json:"type"`
	ClassName    string     `json:"class_name,omitempty"`
	Line         int        `json:"line,omitempty"`
	ModulePath   string     `json:"module_path"`
	Parameters   []string   `json:"parameters"`
	HasDocstring bool       `json:"has_docstring"`
	ReturnType   string     `json:"return_type,omitempty"`
	Complexity   int        `json:"complexity"`
}

// ModuleParts splits the dotted module path. An empty path yields no parts.
func (e Entity) ModuleParts() []string {
	if e.ModulePath == "" {
		return nil
	}
	return strings.Split(e.ModulePath, ".")
}

// TestFile is a single scanned test file.
type TestFile struct {
	Stem      string   `json:"stem"`
	Path      string   `json:"path"`
	Functions []string `json:"functions"`
	Content   string   `json:"-"`
}

// TestInventory holds every test function name found in the tests directory.
type TestInventory struct {
	Files []TestFile          `json:"files"`
	Names map[string]struct{} `json:"-"`
}

// NewTestInventory returns an empty inventory ready for Add.
func NewTestInventory() *TestInventory {
	return &TestInventory{Names: make(map[string]struct{})}
}

// Add records a test file and folds its function names, lower-cased, into
// the global name set.
func (inv *TestInventory) Add(f TestFile) {
	inv.Files = append(inv.Files, f)
	for _, fn := range f.Functions {
		inv.Names[strings.ToLower(fn)] = struct{}{}
	}
}

// ContainsSubstring reports whether pattern occurs inside any recorded test
// function name.
func (inv *TestInventory) ContainsSubstring(pattern string) bool {
	if inv == nil {
		return false
	}
	for name := range inv.Names {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// FunctionCount is the number of distinct lower-cased test names.
func (inv *TestInventory) FunctionCount() int {
	if inv == nil {
		return 0
	}
	return len(inv.Names)
}

// ModuleCoverage is the tested/untested split for one module group.
type ModuleCoverage struct {
	Name     string   `json:"name"`
	Tested   []Entity `json:"tested"`
	Untested []Entity `json:"untested"`
}

func (m ModuleCoverage) Total() int { return len(m.Tested) + len(m.Untested) }

func (m ModuleCoverage) Percentage() float64 {
	return CoveragePercentage(len(m.Tested), len(m.Untested))
}

// Coverage partitions all entities into tested and untested.
type Coverage struct {
	Tested   []Entity         `json:"tested"`
	Untested []Entity         `json:"untested"`
	Modules  []ModuleCoverage `json:"by_module"`
}

func (c Coverage) Total() int { return len(c.Tested) + len(c.Untested) }

func (c Coverage) Percentage() float64 {
	return CoveragePercentage(len(c.Tested), len(c.Untested))
}

// IsTested reports whether the entity at file/kind/name landed in Tested.
func (c Coverage) IsTested(e Entity) bool {
	for _, t := range c.Tested {
		if t.File == e.File && t.Kind == e.Kind && t.Name == e.Name && t.ClassName == e.ClassName {
			return true
		}
	}
	return false
}

// CoveragePercentage returns tested/(tested+untested)*100. Nothing to test
// counts as full coverage.
func CoveragePercentage(tested, untested int) float64 {
	total := tested + untested
	if total == 0 {
		return 100.0
	}
	return float64(tested) / float64(total) * 100
}

// Priority is the test-writing tier of an untested entity.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Title() string {
	return title(string(p))
}

// Priorities lists tiers from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Suggestion proposes a test for one untested entity.
type Suggestion struct {
	Entity   Entity   `json:"item"`
	Priority Priority `json:"priority"`
	Approach string   `json:"suggested_approach"`
	TestName string   `json:"test_function_name"`
}

// Analysis is the complete result of one run.
type Analysis struct {
	ProjectName string         `json:"project_name"`
	Root        string         `json:"root"`
	Config      ProjectConfig  `json:"config"`
	Entities    []Entity       `json:"entities"`
	Inventory   *TestInventory `json:"test_inventory"`
	Coverage    Coverage       `json:"coverage"`
	Suggestions []Suggestion   `json:"suggestions"`
	CommitHash  string         `json:"commit_hash,omitempty"`
}

// ByPriority returns the suggestions of one tier, keeping their order.
func (a *Analysis) ByPriority(p Priority) []Suggestion {
	var out []Suggestion
	for _, s := range a.Suggestions {
		if s.Priority == p {
			out = append(out, s)
		}
	}
	return out
}

// ReportSet lists the files written by a report run.
type ReportSet struct {
	TODO          string   `json:"todo,omitempty"`
	Coverage      string   `json:"coverage,omitempty"`
	Stubs         []string `json:"stubs,omitempty"`
	Visualization string   `json:"visualization,omitempty"`
}
