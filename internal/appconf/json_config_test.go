package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_ValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"movies": "movies.csv",
		"credits": "credits.csv",
		"external": "xbox_feed.csv"
	}`)

	config, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify explicitly set values
	assert.Equal(t, "movies.csv", config.MoviesPath)
	assert.Equal(t, "credits.csv", config.CreditsPath)
	assert.Equal(t, "xbox_feed.csv", config.ExternalPath)

	// Verify defaults were applied
	assert.Equal(t, "xbox", config.Source)
	assert.Equal(t, "development", config.Env)
	assert.Equal(t, 0, config.Workers)
}

func TestLoadFromFile_FullConfig(t *testing.T) {
	path := writeConfig(t, `{
		"movies": "movies.csv.gz",
		"credits": "credits.csv.gz",
		"external": "play_feed.csv",
		"source": "google_play",
		"output": "mappings.csv",
		"db_path": "/data/matches.db",
		"workers": 8,
		"metrics_bind": ":9090",
		"env": "production",
		"verbose": true
	}`)

	config, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "google_play", config.Source)
	assert.Equal(t, "mappings.csv", config.OutputPath)
	assert.Equal(t, "/data/matches.db", config.DBPath)
	assert.Equal(t, 8, config.Workers)
	assert.Equal(t, ":9090", config.MetricsBind)
	assert.Equal(t, "production", config.Env)
	assert.True(t, config.Verbose)
}

func TestLoadFromFile_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"movies": `)

	config, err := LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse JSON config")
}

func TestLoadFromFile_MissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `{"movies": "movies.csv"}`)

	config, err := LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "credits dataset path is required")
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
