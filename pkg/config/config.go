package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"spk/pipeline-cli/pkg/options"
)

const defaultConfigDir = ".spk"
const defaultConfigFile = "config.yaml"

// Config is the persisted spk configuration. Unset keys stay nil so that
// they do not shadow computed defaults.
type Config struct {
	AzureDevOps AzureDevOps `yaml:"azure_devops"`
}

type AzureDevOps struct {
	Org                *string `yaml:"org"`
	Project            *string `yaml:"project"`
	AccessToken        *string `yaml:"access_token"`
	AccessTokenSecret  *string `yaml:"access_token_secret"`
	HldRepository      *string `yaml:"hld_repository"`
	ManifestRepository *string `yaml:"manifest_repository"`
}

// DefaultPath returns ~/.spk/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultConfigDir, defaultConfigFile), nil
}

// Load reads the configuration file at path. A missing file yields an
// empty configuration.
func Load(path string) (config Config, err error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.WithField("func", "Load").Debugf("no configuration found at %s", path)
		return config, nil
	} else if err != nil {
		return config, fmt.Errorf("reading configuration %s: %w", path, err)
	}
	return Parse(content)
}

// Parse decodes a configuration document and expands ${env:NAME} references.
func Parse(content []byte) (config Config, err error) {
	if err := yaml.Unmarshal(content, &config); err != nil {
		return config, fmt.Errorf("parsing configuration: %w", err)
	}
	a := &config.AzureDevOps
	for _, p := range []**string{&a.Org, &a.Project, &a.AccessToken, &a.AccessTokenSecret, &a.HldRepository, &a.ManifestRepository} {
		*p = expandEnv(*p)
	}
	return config, nil
}

var envReference = regexp.MustCompile(`\$\{env:([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(p *string) *string {
	if p == nil {
		return nil
	}
	expanded := envReference.ReplaceAllStringFunc(*p, func(match string) string {
		name := envReference.FindStringSubmatch(match)[1]
		value, ok := os.LookupEnv(name)
		if !ok {
			logger.WithField("func", "expandEnv").Warnf("environment variable %s referenced in configuration is not set", name)
		}
		return value
	})
	return &expanded
}

// Source exposes the azure_devops section as a resolver tier. mapping goes
// from option name to the configuration key, e.g. "orgName" -> "org".
func (c Config) Source(mapping map[string]string) options.MapSource {
	fields := map[string]*string{
		"org":                 c.AzureDevOps.Org,
		"project":             c.AzureDevOps.Project,
		"access_token":        c.AzureDevOps.AccessToken,
		"access_token_secret": c.AzureDevOps.AccessTokenSecret,
		"hld_repository":      c.AzureDevOps.HldRepository,
		"manifest_repository": c.AzureDevOps.ManifestRepository,
	}
	source := make(options.MapSource, len(mapping))
	for option, key := range mapping {
		if v, ok := fields[key]; ok {
			source[option] = v
		} else {
			logger.WithField("func", "Source").Warnf("unknown configuration key %s for option %s", key, option)
		}
	}
	return source
}
