package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var configEnvVars = []string{
	"TELEGRAM_BOT_TOKEN", "VK_TOKEN", "VK_API_URL", "SEARCH_KEYS",
	"POLL_INTERVAL_SECONDS", "FIRST_RUN_WINDOW_SECONDS", "MUTELIST_PATH",
	"DATABASE_PATH", "NOTIFIED_RETENTION_HOURS", "LOG_LEVEL", "ALLOWED_USERS",
}

func TestLoad(t *testing.T) {
	base := map[string]string{
		"TELEGRAM_BOT_TOKEN": "tg-token",
		"VK_TOKEN":           "vk-token",
		"SEARCH_KEYS":        "Котлас,Коряжма",
	}

	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr bool
	}{
		{
			name:    "missing telegram token",
			env:     map[string]string{"VK_TOKEN": "vk", "SEARCH_KEYS": "a"},
			wantErr: true,
		},
		{
			name:    "missing vk token",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "tg", "SEARCH_KEYS": "a"},
			wantErr: true,
		},
		{
			name:    "missing search keys",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "tg", "VK_TOKEN": "vk"},
			wantErr: true,
		},
		{
			name:    "search keys only commas and spaces",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "tg", "VK_TOKEN": "vk", "SEARCH_KEYS": " , , "},
			wantErr: true,
		},
		{
			name: "required only, defaults applied",
			env:  base,
			want: &Config{
				TelegramBotToken:  "tg-token",
				VKToken:           "vk-token",
				VKAPIURL:          "https://api.vk.com",
				SearchKeys:        []string{"Котлас", "Коряжма"},
				PollInterval:      120 * time.Second,
				FirstRunWindow:    360 * time.Second,
				MutelistPath:      "./data/muted_groups.json",
				DatabasePath:      "./data/bot.db",
				NotifiedRetention: 24 * time.Hour,
				LogLevel:          "info",
				AllowedUsers:      nil,
			},
		},
		{
			name: "all values set",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN":       "tok",
				"VK_TOKEN":                 "vk",
				"VK_API_URL":               "https://vk.test",
				"SEARCH_KEYS":              " Вычегодск , Сольвычегодск ",
				"POLL_INTERVAL_SECONDS":    "60",
				"FIRST_RUN_WINDOW_SECONDS": "600",
				"MUTELIST_PATH":            "/tmp/muted.json",
				"DATABASE_PATH":            "/tmp/bot.db",
				"NOTIFIED_RETENTION_HOURS": "48",
				"LOG_LEVEL":                "debug",
				"ALLOWED_USERS":            "111,222,333",
			},
			want: &Config{
				TelegramBotToken:  "tok",
				VKToken:           "vk",
				VKAPIURL:          "https://vk.test",
				SearchKeys:        []string{"Вычегодск", "Сольвычегодск"},
				PollInterval:      60 * time.Second,
				FirstRunWindow:    600 * time.Second,
				MutelistPath:      "/tmp/muted.json",
				DatabasePath:      "/tmp/bot.db",
				NotifiedRetention: 48 * time.Hour,
				LogLevel:          "debug",
				AllowedUsers:      []int64{111, 222, 333},
			},
		},
		{
			name:    "invalid poll interval",
			env:     merge(base, map[string]string{"POLL_INTERVAL_SECONDS": "zero"}),
			wantErr: true,
		},
		{
			name:    "negative poll interval",
			env:     merge(base, map[string]string{"POLL_INTERVAL_SECONDS": "-5"}),
			wantErr: true,
		},
		{
			name:    "invalid retention",
			env:     merge(base, map[string]string{"NOTIFIED_RETENTION_HOURS": "0"}),
			wantErr: true,
		},
		{
			name:    "invalid user id",
			env:     merge(base, map[string]string{"ALLOWED_USERS": "123,abc"}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range configEnvVars {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func merge(a, b map[string]string) map[string]string {
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func TestIsUserAllowed(t *testing.T) {
	tests := []struct {
		name         string
		allowedUsers []int64
		userID       int64
		want         bool
	}{
		{
			name:         "empty list allows everyone",
			allowedUsers: nil,
			userID:       42,
			want:         true,
		},
		{
			name:         "user in list",
			allowedUsers: []int64{10, 20, 30},
			userID:       20,
			want:         true,
		},
		{
			name:         "user not in list",
			allowedUsers: []int64{10, 20, 30},
			userID:       99,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AllowedUsers: tt.allowedUsers}
			got := cfg.IsUserAllowed(tt.userID)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("IsUserAllowed() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
