package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Environment holds the settings spk reads from the process environment.
type Environment struct {
	ConfigPath     string `envconfig:"SPK_CONFIG_PATH"`
	LogLevel       string `envconfig:"SPK_LOG_LEVEL" default:"info"`
	BuildScriptURL string `envconfig:"SPK_BUILD_SCRIPT_URL"`
	K8SNamespace   string `envconfig:"K8S_NAMESPACE" default:"default"`
}

func ReadEnvironment() (env Environment, err error) {
	if err := envconfig.Process("", &env); err != nil {
		return env, err
	}
	if env.ConfigPath == "" {
		if env.ConfigPath, err = DefaultPath(); err != nil {
			return env, err
		}
	}
	return env, nil
}
