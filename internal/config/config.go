package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/Tiliavir/weektracker/internal/model"
)

// Config is the root configuration for tracker, stored in
// <config dir>/tracker/config.toml.
type Config struct {
	WorkWeek WorkWeekConfig `mapstructure:"workweek" toml:"workweek"`
	Outlook  OutlookConfig  `mapstructure:"outlook" toml:"outlook"`
}

// WorkWeekConfig describes the contracted working time.
type WorkWeekConfig struct {
	// Days is the number of working days per week.
	Days int `mapstructure:"days" toml:"days"`
	// Hours is the number of working hours per day.
	Hours int `mapstructure:"hours" toml:"hours"`
	// TransferBalance seeds a new week-file with last week's balance.
	TransferBalance bool `mapstructure:"transfer_balance" toml:"transfer_balance"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar sync settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `mapstructure:"tenant_id" toml:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `mapstructure:"client_id" toml:"client_id"`
	// Label is written as the special-day label of imported absences.
	Label string `mapstructure:"label" toml:"label"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `mapstructure:"timezone" toml:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultLabel is the special-day label used for imported absences.
	DefaultLabel = "Vacation"

	envPrefix = "TRACKER"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		WorkWeek: WorkWeekConfig{
			Days:            model.DefaultWorkWeek.DaysPerWeek,
			Hours:           model.DefaultWorkWeek.HoursPerDay,
			TransferBalance: true,
		},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
			Label:    DefaultLabel,
		},
	}
}

// ModelWorkWeek returns the work-week used for balance computation.
func (c Config) ModelWorkWeek() model.WorkWeek {
	return model.WorkWeek{DaysPerWeek: c.WorkWeek.Days, HoursPerDay: c.WorkWeek.Hours}
}

// Validate rejects settings the report engine cannot use.
func (c Config) Validate() error {
	if c.WorkWeek.Days < 1 || c.WorkWeek.Days > 7 {
		return fmt.Errorf("workweek.days must be between 1 and 7, got %d", c.WorkWeek.Days)
	}
	if c.WorkWeek.Hours < 1 || c.WorkWeek.Hours > 24 {
		return fmt.Errorf("workweek.hours must be between 1 and 24, got %d", c.WorkWeek.Hours)
	}
	if !isLabel(c.Outlook.Label) {
		return fmt.Errorf("outlook.label must consist of letters only, got %q", c.Outlook.Label)
	}
	return nil
}

func isLabel(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("workweek.days", d.WorkWeek.Days)
	v.SetDefault("workweek.hours", d.WorkWeek.Hours)
	v.SetDefault("workweek.transfer_balance", d.WorkWeek.TransferBalance)
	v.SetDefault("outlook.tenant_id", d.Outlook.TenantID)
	v.SetDefault("outlook.client_id", d.Outlook.ClientID)
	v.SetDefault("outlook.label", d.Outlook.Label)
	v.SetDefault("outlook.timezone", d.Outlook.Timezone)
}

// Load layers the built-in defaults, the TOML file at path (if it exists)
// and TRACKER_* environment variables, e.g. TRACKER_WORKWEEK_HOURS=6.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Default(), fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse strictly decodes a TOML document over the defaults. Unknown keys are
// reported as errors, unlike Load which ignores them.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("parsing config: %s", strict.String())
		}
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(data), nil
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# tracker configuration
#
# All settings are optional; the values below are the built-in defaults.
# Every key can also be set from the environment, e.g. TRACKER_WORKWEEK_HOURS=6.

[workweek]
# Working days per week. Days after this many weekdays have passed no longer
# raise the expected time.
days = 5

# Working hours per day. A special day (e.g. "* Vacation") counts this much.
hours = 8

# Start a new week-file with "* carry <balance>" from the previous week.
transfer_balance = true

# ── Microsoft Graph / Outlook calendar sync ──────────────────────────────────
[outlook]
# Azure AD tenant ID. "common" works for personal accounts and most
# organisations.
tenant_id = "common"

# Azure application (client) ID used for the OAuth2 device code flow.
# The built-in value is the public Azure CLI app, no app registration needed.
client_id = "04b07795-8542-4c4a-95af-30b2c573d5ab"

# Label of the special day written for out-of-office events. Letters only.
label = "Vacation"

# IANA timezone for interpreting calendar event times, e.g. "Europe/Berlin".
# Leave empty to use UTC.
timezone = ""
`

// WriteDefault creates the config directory and writes the annotated
// default config template unless a file already exists at path.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return false, fmt.Errorf("writing default config: %w", err)
	}
	return true, nil
}
