package models

import "time"

// Classification is the outcome category for one site in one run.
type Classification int

const (
	// ClassificationFirstRun marks the first successful check of a site.
	ClassificationFirstRun Classification = iota
	// ClassificationNoChange marks a successful check with byte-identical content.
	ClassificationNoChange
	// ClassificationChanged marks a successful check whose content differs from the snapshot.
	ClassificationChanged
	// ClassificationError marks a check that could not be completed.
	ClassificationError
)

// String returns the string representation of the classification.
func (c Classification) String() string {
	switch c {
	case ClassificationFirstRun:
		return "first_run"
	case ClassificationNoChange:
		return "no_change"
	case ClassificationChanged:
		return "changed"
	case ClassificationError:
		return "error"
	default:
		return "unknown"
	}
}

// CheckOutcome is the terminal per-site artifact of one run: the classification
// of a fetch against the previously stored snapshot.
type CheckOutcome struct {
	Site            MonitoredSite
	Classification  Classification
	PreviousContent *string // nil unless a prior snapshot existed
	NewContent      *string // nil on error
	Diff            string  // non-empty only for ClassificationChanged
	ErrorDetail     string  // non-empty only for ClassificationError
	Timestamp       time.Time
}
