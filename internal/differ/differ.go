// Package differ classifies a robots.txt fetch against the previously stored
// snapshot and renders a textual diff when the content changed.
package differ

import (
	"github.com/rs/zerolog"

	"github.com/robotswatch/robotswatch/internal/models"
)

// ChangeDetector turns a fetch result and the previous snapshot into a
// classified check outcome.
type ChangeDetector struct {
	processor *DiffProcessor
	logger    zerolog.Logger
}

// NewChangeDetector creates a new ChangeDetector.
func NewChangeDetector(logger zerolog.Logger) *ChangeDetector {
	return &ChangeDetector{
		processor: NewDiffProcessor(),
		logger:    logger.With().Str("component", "ChangeDetector").Logger(),
	}
}

// Classify produces the CheckOutcome for one site check.
//
// Classification rules, in order:
//   - the fetch failed → Error, regardless of any previous snapshot
//   - no previous snapshot exists → FirstRun
//   - content is byte-identical to the snapshot → NoChange
//   - otherwise → Changed, with a line diff of previous vs new content
//
// Equality is exact: any byte difference, including trailing whitespace, is a
// reportable change.
func (cd *ChangeDetector) Classify(fetch models.FetchResult, previous *string) models.CheckOutcome {
	outcome := models.CheckOutcome{
		Site:            fetch.Site,
		PreviousContent: previous,
		Timestamp:       fetch.Timestamp,
	}

	if fetch.Err != nil {
		outcome.Classification = models.ClassificationError
		outcome.ErrorDetail = fetch.Err.Error()
		return outcome
	}

	content := fetch.Content
	outcome.NewContent = &content

	if previous == nil {
		outcome.Classification = models.ClassificationFirstRun
		cd.logger.Debug().Str("site", fetch.Site.Name).Msg("No previous snapshot, first run")
		return outcome
	}

	if *previous == content {
		outcome.Classification = models.ClassificationNoChange
		return outcome
	}

	outcome.Classification = models.ClassificationChanged
	outcome.Diff = cd.processor.RenderText(cd.processor.ProcessDiff(*previous, content))
	cd.logger.Debug().Str("site", fetch.Site.Name).Msg("robots.txt content changed")
	return outcome
}
