package config

type Config interface {
	EnvConfig
}

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetRequestTimeout() int
	GetEnv() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
