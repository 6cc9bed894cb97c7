package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotswatch/robotswatch/internal/common"
	"github.com/robotswatch/robotswatch/internal/models"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monitored_sites.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidRegistry(t *testing.T) {
	path := writeRegistry(t, `URL,Name,Email
https://github.com/,GitHub,owner@example.com
https://www.theguardian.com/,Guardian,news@example.com
http://example.com/,Example,
`)

	sites, err := NewLoader(zerolog.Nop()).Load(path)
	require.NoError(t, err)
	require.Len(t, sites, 3)

	assert.Equal(t, models.MonitoredSite{
		URL:        "https://github.com/",
		Name:       "GitHub",
		AdminEmail: "owner@example.com",
	}, sites[0])

	// Order is preserved and empty emails are allowed.
	assert.Equal(t, "Guardian", sites[1].Name)
	assert.Equal(t, "Example", sites[2].Name)
	assert.Empty(t, sites[2].AdminEmail)
}

func TestLoad_NormalizesFields(t *testing.T) {
	path := writeRegistry(t, `url,name,email
 HTTPS://GitHub.com/ ,GitHub, owner@example.com
`)

	sites, err := NewLoader(zerolog.Nop()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/", sites[0].URL)
	assert.Equal(t, "owner@example.com", sites[0].AdminEmail)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(zerolog.Nop()).Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestLoad_EmptyRegistry(t *testing.T) {
	t.Run("no rows at all", func(t *testing.T) {
		path := writeRegistry(t, "")
		_, err := NewLoader(zerolog.Nop()).Load(path)
		require.Error(t, err)
		assert.True(t, common.IsConfigurationError(err))
	})

	t.Run("header only", func(t *testing.T) {
		path := writeRegistry(t, "url,name,email\n")
		_, err := NewLoader(zerolog.Nop()).Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no sites")
	})
}

func TestLoad_MalformedRow(t *testing.T) {
	path := writeRegistry(t, `url,name,email
https://github.com/,GitHub,owner@example.com,extra-column
`)
	_, err := NewLoader(zerolog.Nop()).Load(path)
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestLoad_InvalidFields(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"blank url", ",GitHub,owner@example.com"},
		{"blank name", "https://github.com/,,owner@example.com"},
		{"relative url", "github.com/,GitHub,"},
		{"missing trailing slash", "https://github.com,GitHub,"},
		{"non-http scheme", "ftp://github.com/,GitHub,"},
		{"bad email", "https://github.com/,GitHub,not-an-email"},
		{"name with spaces", "https://github.com/,Git Hub,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRegistry(t, "url,name,email\n"+tt.row+"\n")
			_, err := NewLoader(zerolog.Nop()).Load(path)
			require.Error(t, err)
			assert.True(t, common.IsConfigurationError(err))
		})
	}
}

func TestLoad_DuplicateName(t *testing.T) {
	path := writeRegistry(t, `url,name,email
https://github.com/,GitHub,
https://gitlab.com/,GitHub,
`)
	_, err := NewLoader(zerolog.Nop()).Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate site name 'GitHub'")
}

func TestLoad_DuplicateNameDifferentCase(t *testing.T) {
	// Site names become directory names; case-insensitive filesystems would
	// merge these two sites' data.
	path := writeRegistry(t, `url,name,email
https://github.com/,GitHub,
https://gitlab.com/,github,
`)
	_, err := NewLoader(zerolog.Nop()).Load(path)
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "duplicate site name 'github'")
}
