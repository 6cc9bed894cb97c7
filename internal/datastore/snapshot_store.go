// Package datastore owns the durable per-site directory tree: current
// snapshots, timestamped snapshot history, diff artifacts, and the main and
// per-site logs.
package datastore

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/robotswatch/robotswatch/internal/common"
	"github.com/robotswatch/robotswatch/internal/models"
)

const (
	currentSnapshotFile = "robots.txt"
	snapshotsDir        = "snapshots"
	siteLogFile         = "log.txt"
	mainLogFile         = "main_log.txt"

	snapshotTimeLayout = "20060102-150405"
	logTimeLayout      = time.RFC3339
)

// SnapshotStore reads and writes per-site robots.txt snapshots and diff
// artifacts under a base data directory. The filesystem is abstracted behind
// afero so tests run against an in-memory tree.
type SnapshotStore struct {
	fs      afero.Fs
	baseDir string
	logger  zerolog.Logger
}

// NewSnapshotStore creates a snapshot store rooted at baseDir, creating the
// directory if needed.
func NewSnapshotStore(fs afero.Fs, baseDir string, logger zerolog.Logger) (*SnapshotStore, error) {
	if err := fs.MkdirAll(baseDir, 0755); err != nil {
		return nil, common.WrapError(err, "failed to create data directory '"+baseDir+"'")
	}
	return &SnapshotStore{
		fs:      fs,
		baseDir: baseDir,
		logger:  logger.With().Str("component", "SnapshotStore").Logger(),
	}, nil
}

// SiteDir returns the directory holding one site's data.
func (s *SnapshotStore) SiteDir(site models.MonitoredSite) string {
	return filepath.Join(s.baseDir, sanitizeName(site.Name))
}

// MainLogPath returns the path of the append-only main log.
func (s *SnapshotStore) MainLogPath() string {
	return filepath.Join(s.baseDir, mainLogFile)
}

// Load returns the site's current snapshot content, or nil when no snapshot
// has been stored yet (first encounter).
func (s *SnapshotStore) Load(site models.MonitoredSite) (*string, error) {
	path := filepath.Join(s.SiteDir(site), currentSnapshotFile)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, common.WrapError(err, "failed to read snapshot '"+path+"'")
	}
	content := string(data)
	return &content, nil
}

// Persist stores the outcome's artifacts. Only FirstRun and Changed outcomes
// write anything: a timestamped snapshot, a diff artifact for Changed, and
// finally the current snapshot pointer. NoChange and Error outcomes leave the
// stored state untouched, so the current snapshot always reflects the most
// recent FirstRun or Changed content.
func (s *SnapshotStore) Persist(site models.MonitoredSite, outcome models.CheckOutcome) error {
	switch outcome.Classification {
	case models.ClassificationFirstRun, models.ClassificationChanged:
	default:
		return nil
	}
	if outcome.NewContent == nil {
		return common.NewError("cannot persist outcome for '%s' without new content", site.Name)
	}

	siteDir := s.SiteDir(site)
	historyDir := filepath.Join(siteDir, snapshotsDir)
	if err := s.fs.MkdirAll(historyDir, 0755); err != nil {
		return common.WrapError(err, "failed to create snapshot directory '"+historyDir+"'")
	}

	ts := outcome.Timestamp.Format(snapshotTimeLayout)
	content := []byte(*outcome.NewContent)

	snapshotPath := filepath.Join(historyDir, ts+"-robots.txt")
	if err := afero.WriteFile(s.fs, snapshotPath, content, 0644); err != nil {
		return common.WrapError(err, "failed to write snapshot '"+snapshotPath+"'")
	}

	if outcome.Classification == models.ClassificationChanged {
		diffPath := filepath.Join(historyDir, ts+"-robots.diff.txt")
		if err := afero.WriteFile(s.fs, diffPath, []byte(outcome.Diff), 0644); err != nil {
			return common.WrapError(err, "failed to write diff '"+diffPath+"'")
		}
	}

	// Current pointer goes last: if anything above failed, the next run still
	// compares against the previously accepted snapshot.
	currentPath := filepath.Join(siteDir, currentSnapshotFile)
	if err := afero.WriteFile(s.fs, currentPath, content, 0644); err != nil {
		return common.WrapError(err, "failed to write current snapshot '"+currentPath+"'")
	}

	s.logger.Debug().
		Str("site", site.Name).
		Str("classification", outcome.Classification.String()).
		Str("snapshot", snapshotPath).
		Msg("Snapshot persisted")
	return nil
}

// AppendSiteLog appends one line to the site's log file, creating the site
// directory and file as needed.
func (s *SnapshotStore) AppendSiteLog(site models.MonitoredSite, ts time.Time, line string) error {
	siteDir := s.SiteDir(site)
	if err := s.fs.MkdirAll(siteDir, 0755); err != nil {
		return common.WrapError(err, "failed to create site directory '"+siteDir+"'")
	}
	return s.appendLine(filepath.Join(siteDir, siteLogFile), ts, line)
}

// AppendMainLog appends one line to the main log at the top of the data
// directory.
func (s *SnapshotStore) AppendMainLog(ts time.Time, line string) error {
	return s.appendLine(s.MainLogPath(), ts, line)
}

func (s *SnapshotStore) appendLine(path string, ts time.Time, line string) error {
	f, err := s.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return common.WrapError(err, "failed to open log '"+path+"'")
	}
	defer f.Close()

	if _, err := f.WriteString(ts.Format(logTimeLayout) + ": " + line + "\n"); err != nil {
		return common.WrapError(err, "failed to append to log '"+path+"'")
	}
	return nil
}

// sanitizeName guards the directory name derived from a site name. Registry
// validation already restricts names to alphanumerics; anything else is
// replaced rather than trusted.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
