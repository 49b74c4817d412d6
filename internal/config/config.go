package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Values are read from the
// environment, optionally overloaded from a .env file first.
type Config struct {
	// TelegramToken is the bot token used for delivery.
	TelegramToken string `env:"TELEGRAM_TOKEN"`

	// TelegramChatID is the destination chat.
	TelegramChatID string `env:"TELEGRAM_CHAT_ID"`

	// Calendars is the ordered list of calendar sources. Google Calendar
	// IDs (e.g. "primary", "id.indonesian#holiday@group.v.calendar.google.com")
	// and ICS subscription URLs (http:// or https://) may be mixed.
	Calendars []string `env:"DAYBRIEF_CALENDARS" envSeparator:"," envDefault:"primary"`

	// UTCOffset is the fixed offset used to compute the "today" window,
	// in "+07:00" form. Not derived from the runtime locale.
	UTCOffset string `env:"DAYBRIEF_UTC_OFFSET" envDefault:"+07:00"`

	// Account selects the cached Google OAuth token.
	Account string `env:"DAYBRIEF_ACCOUNT" envDefault:"default"`

	// Schedule is the cron expression used by the serve command.
	Schedule string `env:"DAYBRIEF_SCHEDULE" envDefault:"0 7 * * *"`

	Debug bool `env:"DAYBRIEF_DEBUG" envDefault:"false"`

	MetricsEnabled bool   `env:"DAYBRIEF_METRICS_ENABLED" envDefault:"true"`
	MetricsAddr    string `env:"DAYBRIEF_METRICS_ADDR" envDefault:":9090"`
}

// Load reads the configuration from the environment. If a .env file
// exists in the working directory it is overloaded first, matching how
// the credentials are provisioned in deployment.
func Load() (Config, error) {
	filename, _ := filepath.Abs(filepath.Join(".", ".env"))
	if _, err := os.Stat(filename); err == nil {
		return LoadFrom(filename)
	}
	return parse()
}

// LoadFrom overloads the environment from the given .env file, then
// reads the configuration.
func LoadFrom(envfile string) (Config, error) {
	file, err := filepath.Abs(envfile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve env file %s: %w", envfile, err)
	}
	if err := godotenv.Overload(file); err != nil {
		return Config{}, fmt.Errorf("failed to load env file %s: %w", file, err)
	}
	return parse()
}

func parse() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	cleaned := make([]string, 0, len(cfg.Calendars))
	for _, id := range cfg.Calendars {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	cfg.Calendars = cleaned

	return cfg, nil
}

// Validate checks that everything a delivery run needs is present.
func (c Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}
	if c.TelegramChatID == "" {
		return errors.New("TELEGRAM_CHAT_ID is required")
	}
	if len(c.Calendars) == 0 {
		return errors.New("DAYBRIEF_CALENDARS must name at least one calendar source")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the fixed time zone described by UTCOffset.
func (c Config) Location() (*time.Location, error) {
	return ParseOffset(c.UTCOffset)
}

// ParseOffset parses a "+07:00" style UTC offset into a fixed zone.
func ParseOffset(offset string) (*time.Location, error) {
	s := strings.TrimSpace(offset)
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return nil, fmt.Errorf("invalid UTC offset %q (want ±HH:MM)", offset)
	}

	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", offset, err)
	}
	minutes, err := strconv.Atoi(s[4:6])
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", offset, err)
	}
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid UTC offset %q: out of range", offset)
	}

	seconds := hours*3600 + minutes*60
	if s[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+s, seconds), nil
}
