package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultSettingsPath = "settings.json"
	DefaultInterval     = 2
	DefaultUncounted    = "N/A"
	DefaultScope        = "https://www.googleapis.com/auth/spreadsheets"
)

type Config struct {
	SpreadsheetID         string
	SheetID               int64
	GoogleCredentialsPath string // Optional
	GoogleAPIKey          string // Optional
	Scopes                []string
	ApplicationName       string
	SettingsPath          string
	LogLevel              string

	// Local workbook (optional, replaces the spreadsheet)
	XLSXPath  string
	XLSXSheet string
}

func Load() (*Config, error) {
	// Attempt to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		SpreadsheetID:         os.Getenv("SPREADSHEET_ID"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GoogleAPIKey:          os.Getenv("GOOGLE_API_KEY"),
		Scopes:                splitList(os.Getenv("GOOGLE_SCOPES")),
		ApplicationName:       os.Getenv("APPLICATION_NAME"),
		SettingsPath:          getEnv("SETTINGS_PATH", DefaultSettingsPath),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		XLSXPath:              os.Getenv("XLSX_PATH"),
		XLSXSheet:             os.Getenv("XLSX_SHEET"),
	}

	if v, ok := os.LookupEnv("SHEET_ID"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SHEET_ID must be a number: %w", err)
		}
		cfg.SheetID = id
	}

	return cfg, nil
}

// Merge fills settings from the settings file into values the environment left
// empty.
func (c *Config) Merge(s *Settings) {
	if c.SpreadsheetID == "" {
		c.SpreadsheetID = s.SpreadsheetID
	}
	if c.GoogleCredentialsPath == "" {
		c.GoogleCredentialsPath = s.ClientSecretFile
	}
	if c.GoogleAPIKey == "" {
		c.GoogleAPIKey = s.APIKey
	}
	if len(c.Scopes) == 0 {
		c.Scopes = splitList(s.Scopes)
	}
	if len(c.Scopes) == 0 {
		c.Scopes = []string{DefaultScope}
	}
	if c.ApplicationName == "" {
		c.ApplicationName = s.ApplicationName
	}
}

func (c *Config) Validate() error {
	if c.SpreadsheetID == "" && c.XLSXPath == "" {
		return fmt.Errorf("SPREADSHEET_ID or XLSX_PATH is required")
	}
	if c.SheetID < 0 {
		return fmt.Errorf("SHEET_ID must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

// Settings is the settings.json file.
type Settings struct {
	SpreadsheetID    string `json:"spreadsheet_id,omitempty"`
	Scopes           string `json:"scopes,omitempty"`
	ClientSecretFile string `json:"client_secret_file,omitempty"`
	ApplicationName  string `json:"application_name,omitempty"`
	APIKey           string `json:"api_key,omitempty"`

	MovingAverageInterval int `json:"moving_average_interval"`
	// Uncounted marks values that cannot be computed. Any JSON scalar.
	Uncounted    any      `json:"uncounted"`
	HeaderLabels []string `json:"header_labels,omitempty"`
	SourceLabel  string   `json:"source_label,omitempty"`
	TargetLabel  string   `json:"target_label,omitempty"`
	// HeaderRow is the 1-based header row, 0 to find it.
	HeaderRow int `json:"header_row,omitempty"`
}

func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings are not loaded, check that %s is present: %w", path, err)
	}

	s := &Settings{
		MovingAverageInterval: DefaultInterval,
		Uncounted:             DefaultUncounted,
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.MovingAverageInterval <= 0 {
		return fmt.Errorf("moving_average_interval must be positive, got %d", s.MovingAverageInterval)
	}
	switch s.Uncounted.(type) {
	case nil:
		s.Uncounted = DefaultUncounted
	case string, float64, bool:
	default:
		return fmt.Errorf("uncounted must be a string, number or boolean, got %T", s.Uncounted)
	}
	if s.HeaderRow < 0 {
		return fmt.Errorf("header_row must not be negative, got %d", s.HeaderRow)
	}
	return nil
}
