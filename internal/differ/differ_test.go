package differ

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotswatch/robotswatch/internal/models"
)

var site = models.MonitoredSite{URL: "https://example.com/", Name: "Example"}

func successFetch(content string) models.FetchResult {
	return models.FetchResult{
		Site:       site,
		Content:    content,
		HTTPStatus: 200,
		Timestamp:  time.Now(),
	}
}

func strPtr(s string) *string { return &s }

func TestClassify_Error(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())
	fetch := models.FetchResult{
		Site:      site,
		Err:       models.NewHTTPStatusError(503, "'https://example.com/robots.txt' returned HTTP status 503"),
		Timestamp: time.Now(),
	}

	// An error outranks everything else, even with a previous snapshot present.
	outcome := cd.Classify(fetch, strPtr("User-agent: *\n"))

	assert.Equal(t, models.ClassificationError, outcome.Classification)
	assert.Nil(t, outcome.NewContent)
	assert.Empty(t, outcome.Diff)
	assert.Contains(t, outcome.ErrorDetail, "status 503")
}

func TestClassify_FirstRun(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())
	const content = "User-agent: *\nDisallow:\n"

	outcome := cd.Classify(successFetch(content), nil)

	assert.Equal(t, models.ClassificationFirstRun, outcome.Classification)
	require.NotNil(t, outcome.NewContent)
	assert.Equal(t, content, *outcome.NewContent)
	assert.Empty(t, outcome.Diff, "first run has nothing to diff against")
}

func TestClassify_NoChange(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())
	const content = "User-agent: *\nDisallow:\n"

	outcome := cd.Classify(successFetch(content), strPtr(content))

	assert.Equal(t, models.ClassificationNoChange, outcome.Classification)
	assert.Empty(t, outcome.Diff)
}

func TestClassify_Changed(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())
	previous := "User-agent: *\nDisallow:\n"
	current := "User-agent: *\nDisallow: /\n"

	outcome := cd.Classify(successFetch(current), strPtr(previous))

	assert.Equal(t, models.ClassificationChanged, outcome.Classification)
	require.NotEmpty(t, outcome.Diff)
	assert.Contains(t, outcome.Diff, "- Disallow:\n")
	assert.Contains(t, outcome.Diff, "+ Disallow: /\n")
	assert.Contains(t, outcome.Diff, "  User-agent: *\n")
}

func TestClassify_TrailingWhitespaceIsAChange(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())
	previous := "User-agent: *\nDisallow:\n"
	current := "User-agent: *\nDisallow:"

	outcome := cd.Classify(successFetch(current), strPtr(previous))

	assert.Equal(t, models.ClassificationChanged, outcome.Classification)
	assert.NotEmpty(t, outcome.Diff)
}

func TestClassify_EmptyContentFirstRun(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())

	// An empty 200 response is valid content, not an error.
	outcome := cd.Classify(successFetch(""), nil)

	assert.Equal(t, models.ClassificationFirstRun, outcome.Classification)
	require.NotNil(t, outcome.NewContent)
	assert.Empty(t, *outcome.NewContent)
}

func TestRenderText_MultiLine(t *testing.T) {
	dp := NewDiffProcessor()
	previous := "User-agent: *\nDisallow: /private/\nSitemap: https://example.com/a.xml\n"
	current := "User-agent: *\nDisallow: /private/\nDisallow: /tmp/\nSitemap: https://example.com/b.xml\n"

	text := dp.RenderText(dp.ProcessDiff(previous, current))

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Contains(t, lines, "+ Disallow: /tmp/")
	assert.Contains(t, lines, "- Sitemap: https://example.com/a.xml")
	assert.Contains(t, lines, "+ Sitemap: https://example.com/b.xml")
	assert.Contains(t, lines, "  User-agent: *")

	// Every rendered line carries a marker prefix.
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "- ") ||
			strings.HasPrefix(line, "+ ") ||
			strings.HasPrefix(line, "  "), "unexpected line %q", line)
	}
}
