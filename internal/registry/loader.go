// Package registry loads the monitored-site registry from the CSV file named
// in the monitor configuration. Any defect in the registry is a fatal
// configuration error: without a trustworthy site list no per-site data can be
// collected.
package registry

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"github.com/robotswatch/robotswatch/internal/common"
	"github.com/robotswatch/robotswatch/internal/models"
)

func init() {
	// The registry header row is matched case-insensitively (URL,Name,Email
	// and url,name,email are both accepted).
	gocsv.SetHeaderNormalizer(strings.ToLower)
}

// siteRecord is one data row of the registry CSV. The header row binds columns
// by name: url, name, email.
type siteRecord struct {
	URL   string `csv:"url" validate:"required,url,startswith=http,endswith=/"`
	Name  string `csv:"name" validate:"required,alphanum"`
	Email string `csv:"email" validate:"omitempty,email"`
}

// Loader reads and validates the site registry.
type Loader struct {
	logger   zerolog.Logger
	validate *validator.Validate
}

// NewLoader creates a new registry loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger:   logger.With().Str("component", "RegistryLoader").Logger(),
		validate: validator.New(),
	}
}

// Load parses the registry file into an ordered list of monitored sites.
// It returns a ConfigurationError when the file is missing, empty, malformed,
// contains invalid fields, or contains duplicate site names.
func (l *Loader) Load(path string) ([]models.MonitoredSite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewConfigurationError("registry", "sites_file",
			"cannot read registry file '"+path+"': "+err.Error())
	}

	var records []*siteRecord
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, common.NewConfigurationError("registry", "sites_file",
			"malformed registry file '"+path+"': "+err.Error())
	}
	if len(records) == 0 {
		return nil, common.NewConfigurationError("registry", "sites_file",
			"registry file '"+path+"' contains no sites")
	}

	sites := make([]models.MonitoredSite, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		site, err := l.buildSite(i, rec)
		if err != nil {
			return nil, err
		}
		// Names become directory names, and some filesystems fold case, so
		// names differing only in case collide too.
		key := strings.ToLower(site.Name)
		if _, dup := seen[key]; dup {
			return nil, common.NewConfigurationError("registry", "name",
				"duplicate site name '"+site.Name+"': site names are storage keys and must be unique")
		}
		seen[key] = struct{}{}
		sites = append(sites, site)
	}

	l.logger.Info().Int("sites", len(sites)).Str("file", path).Msg("Site registry loaded")
	return sites, nil
}

// buildSite normalizes and validates one registry row. Row numbering in error
// messages counts data rows from 1, matching how operators read the file.
func (l *Loader) buildSite(index int, rec *siteRecord) (models.MonitoredSite, error) {
	normalized := &siteRecord{
		URL:   strings.ToLower(strings.TrimSpace(rec.URL)),
		Name:  strings.TrimSpace(rec.Name),
		Email: strings.TrimSpace(rec.Email),
	}

	if err := l.validate.Struct(normalized); err != nil {
		field := "row"
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field = strings.ToLower(verrs[0].Field())
		}
		return models.MonitoredSite{}, common.NewConfigurationError("registry", field,
			"invalid "+field+" in registry row "+strconv.Itoa(index+1))
	}

	return models.MonitoredSite{
		URL:        normalized.URL,
		Name:       normalized.Name,
		AdminEmail: normalized.Email,
	}, nil
}
