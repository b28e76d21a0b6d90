package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	apiURLEnvVar  = "AGENTDESK_API_URL"
	appNameVar    = "APP_NAME"
	folderEnvVar  = "AGENTDESK_DATA_DIR"
	logLevelVar   = "AGENTDESK_LOG_LEVEL"
	timeoutEnvVar = "AGENTDESK_REQUEST_TIMEOUT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func init() {
	// Missing .env is fine, env vars win either way.
	_ = godotenv.Load()
}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiURLEnvVar, "http://localhost:8000")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "agentdesk")
}

func (EnvVars) GetDataFolder() string {
	if folder := os.Getenv(folderEnvVar); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentdesk"
	}
	return filepath.Join(home, ".agentdesk")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

// GetRequestTimeout returns the per-request timeout in seconds.
func (EnvVars) GetRequestTimeout() int {
	value := GetEnv(timeoutEnvVar, "10")
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return 10
	}
	return seconds
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
