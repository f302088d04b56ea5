package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/guardwatch/roster/pkg/core/compliance"
)

// ShiftPattern defines a recurring shift template expanded by DefineRoster
type ShiftPattern struct {
	RRule                  string   `yaml:"rrule" validate:"required"`
	SiteID                 string   `yaml:"siteID" validate:"required"`
	StartTime              string   `yaml:"startTime" validate:"required"` // "15:04" clock time on each occurrence day
	DurationHours          float64  `yaml:"durationHours" validate:"required,gt=0"`
	RequiredEmployees      int      `yaml:"requiredEmployees" validate:"required,min=1"`
	RequiredQualifications []string `yaml:"requiredQualifications,omitempty"`
	ClearanceRequired      bool     `yaml:"clearanceRequired,omitempty"`
	ShiftType              string   `yaml:"shiftType,omitempty"`
}

// Compliance holds the roster-level compliance caps
type Compliance struct {
	WeeklyHoursCap     float64 `yaml:"weeklyHoursCap,omitempty" validate:"omitempty,gt=0"`
	ConsecutiveDaysCap int     `yaml:"consecutiveDaysCap,omitempty" validate:"omitempty,min=1"`
	MinRestHours       float64 `yaml:"minRestHours,omitempty" validate:"omitempty,gt=0"`
}

// Notify holds conflict digest email settings
type Notify struct {
	Recipient   string `yaml:"recipient,omitempty" validate:"omitempty,email"`
	GmailUserID string `yaml:"gmailUserID,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`
	// MinimumTier is the auto-fill acceptability floor
	// (OPTIMAL/GOOD/ACCEPTABLE); empty means ACCEPTABLE
	MinimumTier   string         `yaml:"minimumTier,omitempty" validate:"omitempty,oneof=OPTIMAL GOOD ACCEPTABLE"`
	Compliance    Compliance     `yaml:"compliance,omitempty"`
	ShiftPatterns []ShiftPattern `yaml:"shiftPatterns,omitempty" validate:"dive"`
	Notify        Notify         `yaml:"notify,omitempty"`
}

// Limits converts the compliance section to core limits, applying defaults
// for unset fields
func (c *Config) Limits() compliance.Limits {
	limits := compliance.DefaultLimits()
	if c.Compliance.WeeklyHoursCap > 0 {
		limits.WeeklyHoursCap = c.Compliance.WeeklyHoursCap
	}
	if c.Compliance.ConsecutiveDaysCap > 0 {
		limits.ConsecutiveDaysCap = c.Compliance.ConsecutiveDaysCap
	}
	if c.Compliance.MinRestHours > 0 {
		limits.MinRestHours = c.Compliance.MinRestHours
	}
	return limits
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from guard_roster_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, pattern := range cfg.ShiftPatterns {
		if _, err := rrule.StrToRRule(pattern.RRule); err != nil {
			return fmt.Errorf("invalid rrule in shiftPatterns[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for guard_roster_config.yaml in current directory
// and home directory
func findConfigFile() (string, error) {
	configFileName := "guard_roster_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
