package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		name    string
		offset  string
		seconds int
		wantErr bool
	}{
		{name: "jakarta", offset: "+07:00", seconds: 7 * 3600},
		{name: "negative offset", offset: "-05:00", seconds: -5 * 3600},
		{name: "half hour offset", offset: "+05:30", seconds: 5*3600 + 30*60},
		{name: "utc", offset: "+00:00", seconds: 0},
		{name: "surrounding whitespace", offset: " +07:00 ", seconds: 7 * 3600},
		{name: "missing sign", offset: "07:00", wantErr: true},
		{name: "missing colon", offset: "+0700", wantErr: true},
		{name: "out of range hours", offset: "+15:00", wantErr: true},
		{name: "out of range minutes", offset: "+07:60", wantErr: true},
		{name: "empty", offset: "", wantErr: true},
		{name: "garbage", offset: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseOffset(tt.offset)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, gotSeconds := time.Now().In(loc).Zone()
			assert.Equal(t, tt.seconds, gotSeconds)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, []string{"primary"}, cfg.Calendars)
	assert.Equal(t, "+07:00", cfg.UTCOffset)
	assert.Equal(t, "default", cfg.Account)
	assert.Equal(t, "0 7 * * *", cfg.Schedule)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCalendarList(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("DAYBRIEF_CALENDARS", "primary, id.indonesian#holiday@group.v.calendar.google.com,,https://example.com/team.ics ")

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"primary",
		"id.indonesian#holiday@group.v.calendar.google.com",
		"https://example.com/team.ics",
	}, cfg.Calendars)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.TelegramToken = "" },
			wantErr: "TELEGRAM_TOKEN",
		},
		{
			name:    "missing chat id",
			mutate:  func(c *Config) { c.TelegramChatID = "" },
			wantErr: "TELEGRAM_CHAT_ID",
		},
		{
			name:    "no calendars",
			mutate:  func(c *Config) { c.Calendars = nil },
			wantErr: "DAYBRIEF_CALENDARS",
		},
		{
			name:    "bad offset",
			mutate:  func(c *Config) { c.UTCOffset = "zulu" },
			wantErr: "invalid UTC offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				TelegramToken:  "123:abc",
				TelegramChatID: "42",
				Calendars:      []string{"primary"},
				UTCOffset:      "+07:00",
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
