package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "canetrack", cfg.MongoDB.DBName)
	assert.Equal(t, "Tickets!A:Q", cfg.Sheets.DataRange)
	assert.Equal(t, "0 */6 * * *", cfg.Sync.CronSchedule)
	assert.Equal(t, "Asia/Bangkok", cfg.Sync.Timezone)
	assert.Equal(t, 30, cfg.Season.EndDay)
	assert.Equal(t, 4, cfg.Season.EndMonth)
	assert.False(t, cfg.MirrorEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("SEASON_END_DAY", "15")
	t.Setenv("SEASON_END_MONTH", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 15, cfg.Season.EndDay)
	assert.Equal(t, 5, cfg.Season.EndMonth)
}

func TestLoadRejectsBadSeasonEnd(t *testing.T) {
	t.Setenv("SEASON_END_DAY", "notanumber")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidateSheetsPairing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Sheets.SpreadsheetID = "sheet-id"
	cfg.Sheets.CredentialsPath = ""
	assert.Error(t, cfg.Validate())

	cfg.Sheets.CredentialsPath = "/etc/creds.json"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.MirrorEnabled())
}

func TestValidateSeasonBounds(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Season.EndMonth = 13
	assert.Error(t, cfg.Validate())
}
