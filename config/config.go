// Package config exposes process configuration for the cms-ui panel.
// Values come from the environment, optionally overridden by a TOML
// file, with built-in defaults as the last resort.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// fileOverrides holds values read from the optional TOML config file.
// Environment variables always win over file values.
var fileOverrides map[string]string

// Load reads the optional .env file and the optional TOML override
// file. Both are best-effort; a missing file is not an error.
func Load() {
	_ = godotenv.Load()

	path := os.Getenv("CMSUI_CONFIG")
	if path == "" {
		path = GetDBFolderPath() + "/config.toml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	overrides := map[string]string{}
	if err := toml.Unmarshal(data, &overrides); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config file %s: %v\n", path, err)
		return
	}
	fileOverrides = overrides
}

func lookup(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := fileOverrides[key]; ok && value != "" {
		return value
	}
	return defaultValue
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := lookup("CMSUI_LOG_LEVEL", "")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return lookup("CMSUI_DEBUG", "") == "true"
}

// IsProduction reports whether this deployment is flagged
// production-grade. In production a session that cannot be committed
// to the primary store is rejected instead of kept in memory only.
func IsProduction() bool {
	return lookup("CMSUI_ENV", "") == "production"
}

func GetDBFolderPath() string {
	return lookup("CMSUI_DB_FOLDER", "/etc/cms-ui")
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

// GetFileStorePath returns the path of the secondary on-disk JSON
// store used when the primary database is unreachable.
func GetFileStorePath() string {
	return lookup("CMSUI_FILE_STORE", fmt.Sprintf("%s/%s.fallback.json", GetDBFolderPath(), GetName()))
}

func GetLogFolder() string {
	return lookup("CMSUI_LOG_FOLDER", "/var/log")
}

// GetDefaultUsername returns the bootstrap administrator username.
func GetDefaultUsername() string {
	return lookup("CMSUI_DEFAULT_USERNAME", "admin")
}

// GetDefaultPassword returns the bootstrap administrator password.
func GetDefaultPassword() string {
	return lookup("CMSUI_DEFAULT_PASSWORD", "admin")
}
