// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken  string
	VKToken           string
	VKAPIURL          string
	SearchKeys        []string
	PollInterval      time.Duration
	FirstRunWindow    time.Duration
	MutelistPath      string
	DatabasePath      string
	NotifiedRetention time.Duration
	LogLevel          string
	AllowedUsers      []int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	vkToken := os.Getenv("VK_TOKEN")
	if vkToken == "" {
		return nil, fmt.Errorf("VK_TOKEN is required")
	}

	keys, err := parseSearchKeys(os.Getenv("SEARCH_KEYS"))
	if err != nil {
		return nil, err
	}

	interval, err := secondsOrDefault("POLL_INTERVAL_SECONDS", 120)
	if err != nil {
		return nil, err
	}

	firstWindow, err := secondsOrDefault("FIRST_RUN_WINDOW_SECONDS", 360)
	if err != nil {
		return nil, err
	}

	retentionHours := 24
	if raw := os.Getenv("NOTIFIED_RETENTION_HOURS"); raw != "" {
		retentionHours, err = strconv.Atoi(raw)
		if err != nil || retentionHours < 1 {
			return nil, fmt.Errorf("NOTIFIED_RETENTION_HOURS must be a positive integer, got %q", raw)
		}
	}

	vkURL := os.Getenv("VK_API_URL")
	if vkURL == "" {
		vkURL = "https://api.vk.com"
	}

	mutelistPath := os.Getenv("MUTELIST_PATH")
	if mutelistPath == "" {
		mutelistPath = "./data/muted_groups.json"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var allowedUsers []int64
	if raw := os.Getenv("ALLOWED_USERS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			uid, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID %q in ALLOWED_USERS: %w", s, err)
			}
			allowedUsers = append(allowedUsers, uid)
		}
	}

	return &Config{
		TelegramBotToken:  token,
		VKToken:           vkToken,
		VKAPIURL:          vkURL,
		SearchKeys:        keys,
		PollInterval:      interval,
		FirstRunWindow:    firstWindow,
		MutelistPath:      mutelistPath,
		DatabasePath:      dbPath,
		NotifiedRetention: time.Duration(retentionHours) * time.Hour,
		LogLevel:          logLevel,
		AllowedUsers:      allowedUsers,
	}, nil
}

func parseSearchKeys(raw string) ([]string, error) {
	var keys []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			keys = append(keys, s)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("SEARCH_KEYS is required (comma-separated list of keywords)")
	}
	return keys, nil
}

func secondsOrDefault(key string, def int) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(def) * time.Second, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return time.Duration(n) * time.Second, nil
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}
