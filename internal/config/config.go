package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Sheets  SheetsConfig
	Vision  VisionConfig
	Sync    SyncConfig
	Season  SeasonConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port  string
	Debug bool
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration required to mirror tickets into a
// Google Sheet. Optional: with no spreadsheet configured the app runs
// local-only.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	DataRange       string
}

// VisionConfig holds settings for the slip-reading model. Optional: with
// no key configured tickets are entered manually.
type VisionConfig struct {
	GeminiKey   string
	GeminiModel string
}

// SyncConfig holds mirror-refresh scheduler settings.
type SyncConfig struct {
	CronSchedule string
	Timezone     string
}

// SeasonConfig pins the crushing season calendar.
type SeasonConfig struct {
	// EndDay/EndMonth is the last crushing day, year-less like the rest of
	// the season tables.
	EndDay   int
	EndMonth int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	endDay, err := getenvInt("SEASON_END_DAY", 30)
	if err != nil {
		return nil, err
	}
	endMonth, err := getenvInt("SEASON_END_MONTH", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:  getenvWithDefault("APP_PORT", "8080"),
			Debug: os.Getenv("APP_DEBUG") == "true",
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "canetrack"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			DataRange:       getenvWithDefault("GOOGLE_SHEET_DATA_RANGE", "Tickets!A:Q"),
		},
		Vision: VisionConfig{
			GeminiKey:   os.Getenv("GEMINI_API_KEY"),
			GeminiModel: getenvWithDefault("GEMINI_MODEL", "gemini-3-flash-preview"),
		},
		Sync: SyncConfig{
			CronSchedule: getenvWithDefault("SYNC_CRON_SCHEDULE", "0 */6 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Bangkok"),
		},
		Season: SeasonConfig{
			EndDay:   endDay,
			EndMonth: endMonth,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	// Sheets mirroring is optional, but a spreadsheet without credentials
	// (or the reverse) is a misconfiguration, not a choice.
	if (c.Sheets.SpreadsheetID == "") != (c.Sheets.CredentialsPath == "") {
		return errors.New("GOOGLE_SHEET_DATABASE_ID and GOOGLE_SHEETS_CREDENTIALS_PATH must be provided together")
	}
	if c.Sheets.SpreadsheetID != "" && c.Sheets.DataRange == "" {
		return errors.New("GOOGLE_SHEET_DATA_RANGE must not be empty")
	}

	if c.Sync.CronSchedule == "" {
		return errors.New("SYNC_CRON_SCHEDULE must be provided")
	}
	if c.Sync.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Season.EndDay < 1 || c.Season.EndDay > 31 || c.Season.EndMonth < 1 || c.Season.EndMonth > 12 {
		return errors.New("SEASON_END_DAY/SEASON_END_MONTH must form a valid calendar day")
	}

	return nil
}

// MirrorEnabled reports whether the Google Sheets mirror is configured.
func (c *Config) MirrorEnabled() bool {
	return c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
