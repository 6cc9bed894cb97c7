package models

import (
	"fmt"
	"time"
)

// SiteError captures one site's failure for the admin summary.
type SiteError struct {
	SiteName string
	SiteURL  string
	Detail   string
}

// RunSummary aggregates the outcomes of one full pass over the site registry.
// It is mutated by the orchestrator as sites complete and consumed once at run
// end by the admin notification and the logs.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	TotalSites int

	FirstRun int
	NoChange int
	Changed  int
	Errored  int

	Errors []SiteError
}

// NewRunSummary creates a RunSummary for a run over the given number of sites.
func NewRunSummary(runID string, totalSites int, startedAt time.Time) *RunSummary {
	return &RunSummary{
		RunID:      runID,
		StartedAt:  startedAt,
		TotalSites: totalSites,
	}
}

// Record tallies a completed site check into the summary.
func (s *RunSummary) Record(outcome CheckOutcome) {
	switch outcome.Classification {
	case ClassificationFirstRun:
		s.FirstRun++
	case ClassificationNoChange:
		s.NoChange++
	case ClassificationChanged:
		s.Changed++
	case ClassificationError:
		s.Errored++
		s.Errors = append(s.Errors, SiteError{
			SiteName: outcome.Site.Name,
			SiteURL:  outcome.Site.URL,
			Detail:   outcome.ErrorDetail,
		})
	}
}

// Completed reports how many site checks have been recorded so far.
func (s *RunSummary) Completed() int {
	return s.FirstRun + s.NoChange + s.Changed + s.Errored
}

// String renders the one-line summary used in logs and the admin email.
func (s *RunSummary) String() string {
	return fmt.Sprintf("Checks complete. No change: %d. Changed: %d. First run: %d. Error: %d.",
		s.NoChange, s.Changed, s.FirstRun, s.Errored)
}
