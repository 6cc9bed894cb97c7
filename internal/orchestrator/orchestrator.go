// Package orchestrator drives one full run: it iterates the site registry,
// invokes fetch → classify → persist → notify per site, isolates per-site
// failures, and aggregates the run summary.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robotswatch/robotswatch/internal/models"
)

// RobotsFetcher fetches a site's robots.txt file.
type RobotsFetcher interface {
	Fetch(ctx context.Context, site models.MonitoredSite) models.FetchResult
}

// ChangeClassifier classifies a fetch result against the previous snapshot.
type ChangeClassifier interface {
	Classify(fetch models.FetchResult, previous *string) models.CheckOutcome
}

// SnapshotStore is the durable per-site state consumed and updated each run.
type SnapshotStore interface {
	Load(site models.MonitoredSite) (*string, error)
	Persist(site models.MonitoredSite, outcome models.CheckOutcome) error
	AppendSiteLog(site models.MonitoredSite, ts time.Time, line string) error
	AppendMainLog(ts time.Time, line string) error
	MainLogPath() string
}

// Notifier dispatches per-site and admin summary notifications.
type Notifier interface {
	NotifySite(outcome models.CheckOutcome)
	NotifyAdmin(summary *models.RunSummary, mainLogPath string)
}

// RunRecorder persists run and check history. May be absent (nil).
type RunRecorder interface {
	RecordRunStart(runID string, totalSites int, startedAt time.Time) (int64, error)
	RecordCheck(runID string, outcome models.CheckOutcome) error
	RecordRunCompletion(dbRunID int64, summary *models.RunSummary) error
}

// Orchestrator runs the per-site check pipeline over the registry.
type Orchestrator struct {
	fetcher  RobotsFetcher
	detector ChangeClassifier
	store    SnapshotStore
	notifier Notifier
	recorder RunRecorder
	logger   zerolog.Logger
}

// NewOrchestrator creates a new Orchestrator. recorder may be nil when run
// history is disabled.
func NewOrchestrator(
	fetcher RobotsFetcher,
	detector ChangeClassifier,
	store SnapshotStore,
	notifier Notifier,
	recorder RunRecorder,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		detector: detector,
		store:    store,
		notifier: notifier,
		recorder: recorder,
		logger:   logger.With().Str("component", "Orchestrator").Logger(),
	}
}

// Run performs one full pass over the site list. Individual site failures are
// recorded as Error outcomes and never halt the run; the returned summary
// always covers every site.
func (o *Orchestrator) Run(ctx context.Context, sites []models.MonitoredSite) *models.RunSummary {
	runID := uuid.NewString()
	startedAt := time.Now()
	summary := models.NewRunSummary(runID, len(sites), startedAt)

	runLogger := o.logger.With().Str("run_id", runID).Logger()
	runLogger.Info().Int("sites", len(sites)).Msg("Starting robots.txt checks")
	o.mainLog(startedAt, fmt.Sprintf("Starting checks on %d sites (run %s).", len(sites), runID))

	var dbRunID int64
	recording := o.recorder != nil
	if recording {
		var err error
		dbRunID, err = o.recorder.RecordRunStart(runID, len(sites), startedAt)
		if err != nil {
			runLogger.Error().Err(err).Msg("Failed to record run start, continuing without history")
			recording = false
		}
	}

	for _, site := range sites {
		outcome := o.checkSite(ctx, site)
		summary.Record(outcome)
		o.logOutcome(runLogger, outcome)

		if recording {
			if err := o.recorder.RecordCheck(runID, outcome); err != nil {
				runLogger.Error().Err(err).Str("site", site.Name).Msg("Failed to record check history")
			}
		}

		o.notifier.NotifySite(outcome)
	}

	summary.FinishedAt = time.Now()
	o.mainLog(summary.FinishedAt, summary.String())
	runLogger.Info().
		Int("first_run", summary.FirstRun).
		Int("no_change", summary.NoChange).
		Int("changed", summary.Changed).
		Int("errors", summary.Errored).
		Msg("Run complete")

	if recording {
		if err := o.recorder.RecordRunCompletion(dbRunID, summary); err != nil {
			runLogger.Error().Err(err).Msg("Failed to record run completion")
		}
	}

	o.notifier.NotifyAdmin(summary, o.store.MainLogPath())
	return summary
}

// checkSite runs the per-site pipeline. Anything unexpected, including a
// panic, is contained here and converted into an Error outcome so one site can
// never halt or corrupt the processing of others.
func (o *Orchestrator) checkSite(ctx context.Context, site models.MonitoredSite) (outcome models.CheckOutcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().Str("site", site.Name).Interface("panic", r).Msg("Recovered from panic during site check")
			outcome = o.errorOutcome(site, fmt.Sprintf("unexpected error during check: %v", r))
		}
	}()

	previous, err := o.store.Load(site)
	if err != nil {
		return o.errorOutcome(site, "failed to load previous snapshot: "+err.Error())
	}

	fetch := o.fetcher.Fetch(ctx, site)
	outcome = o.detector.Classify(fetch, previous)

	if err := o.store.Persist(site, outcome); err != nil {
		// Storage did not accept the new snapshot; reporting FirstRun or
		// Changed would desynchronize future comparisons.
		return o.errorOutcome(site, "failed to persist snapshot: "+err.Error())
	}

	return outcome
}

func (o *Orchestrator) errorOutcome(site models.MonitoredSite, detail string) models.CheckOutcome {
	return models.CheckOutcome{
		Site:           site,
		Classification: models.ClassificationError,
		ErrorDetail:    detail,
		Timestamp:      time.Now(),
	}
}

// logOutcome appends the result line to the main log and the per-site log.
// Log append failures are surfaced on the application log only; they never
// fail the run.
func (o *Orchestrator) logOutcome(runLogger zerolog.Logger, outcome models.CheckOutcome) {
	line := fmt.Sprintf("%s: %s", outcome.Site.Name, outcome.Classification)
	if outcome.Classification == models.ClassificationError {
		line += " - " + outcome.ErrorDetail
	}

	o.mainLog(outcome.Timestamp, line)
	if err := o.store.AppendSiteLog(outcome.Site, outcome.Timestamp, line); err != nil {
		o.logger.Error().Err(err).Str("site", outcome.Site.Name).Msg("Failed to append site log")
	}

	event := runLogger.Info()
	if outcome.Classification == models.ClassificationError {
		event = runLogger.Warn()
	}
	event.
		Str("site", outcome.Site.Name).
		Str("classification", outcome.Classification.String()).
		Msg("Site check complete")
}

func (o *Orchestrator) mainLog(ts time.Time, line string) {
	if err := o.store.AppendMainLog(ts, line); err != nil {
		o.logger.Error().Err(err).Msg("Failed to append main log")
	}
}
