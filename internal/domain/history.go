package domain

import "time"

// CoverageEntry records the headline numbers of one run.
type CoverageEntry struct {
	Timestamp  string  `json:"timestamp"`
	CommitHash string  `json:"commit_hash,omitempty"`
	Total      int     `json:"total_items"`
	Tested     int     `json:"tested_items"`
	Percentage float64 `json:"coverage_percentage"`
}

// NewCoverageEntry summarizes a as of at.
func NewCoverageEntry(a *Analysis, at time.Time) CoverageEntry {
	return CoverageEntry{
		Timestamp:  at.UTC().Format(time.RFC3339),
		CommitHash: a.CommitHash,
		Total:      a.Coverage.Total(),
		Tested:     len(a.Coverage.Tested),
		Percentage: a.Coverage.Percentage(),
	}
}

// CoverageHistory persists coverage entries across runs. Entries live in the
// report output directory so a run never writes outside it.
type CoverageHistory interface {
	Save(dir string, entry CoverageEntry) error
	Load(dir string) ([]CoverageEntry, error)
}
