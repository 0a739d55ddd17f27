// Package config loads and validates the secretsource.yaml file and turns
// it into the runtime collaborators: naming configuration, resolution
// environment and store settings.
package config

import (
	"os"

	dserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/systmms/secretsource/internal/logging"
	"github.com/systmms/secretsource/pkg/contexts"
	"github.com/systmms/secretsource/pkg/environment"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration.
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the secretsource.yaml structure.
type Definition struct {
	Version    int               `yaml:"version"`
	Store      StoreConfig       `yaml:"store"`
	Naming     NamingConfig      `yaml:"naming"`
	Profiles   []string          `yaml:"profiles"`
	Properties map[string]string `yaml:"properties"`
}

// StoreConfig holds store-specific configuration.
type StoreConfig struct {
	Type   string                 `yaml:"type"`
	Config map[string]interface{} `yaml:",inline"`
}

// NamingConfig holds the context naming options.
type NamingConfig struct {
	SecretNames      []string `yaml:"secretNames"`
	Name             string   `yaml:"name"`
	Prefix           string   `yaml:"prefix"`
	DefaultContext   string   `yaml:"defaultContext"`
	ProfileSeparator string   `yaml:"profileSeparator"`
	FailFast         *bool    `yaml:"failFast"`
}

// Load reads, schema-validates and parses the secretsource.yaml file.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return dserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Create a secretsource.yaml or pass --config <path>",
			}
		}
		return dserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	if err := validateSchema(data); err != nil {
		return err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}

	if def.Version != 0 {
		return dserrors.ConfigError{
			Field:      "version",
			Value:      def.Version,
			Message:    "unsupported configuration version",
			Suggestion: "Set 'version: 0' at the top of your secretsource.yaml file",
		}
	}

	if def.Store.Type == "" {
		return dserrors.ConfigError{
			Field:      "store.type",
			Message:    "store type is required",
			Suggestion: "Set store.type to one of: static, aws.secretsmanager, aws.parameterstore, gcp.secretmanager, azure.keyvault",
		}
	}

	c.Definition = &def
	return nil
}

// ContextsConfig maps the naming block onto a contexts.Config, filling the
// conventional defaults for anything unset. FailFast defaults to true.
func (c *Config) ContextsConfig() contexts.Config {
	cfg := contexts.NewConfig()
	if c.Definition == nil {
		return cfg
	}

	naming := c.Definition.Naming
	cfg.SecretNames = append([]string(nil), naming.SecretNames...)
	cfg.ApplicationName = naming.Name
	if naming.Prefix != "" {
		cfg.Prefix = naming.Prefix
	}
	if naming.DefaultContext != "" {
		cfg.DefaultContext = naming.DefaultContext
	}
	if naming.ProfileSeparator != "" {
		cfg.ProfileSeparator = naming.ProfileSeparator
	}
	if naming.FailFast != nil {
		cfg.FailFast = *naming.FailFast
	}
	return cfg
}

// Environment builds the resolution environment. File-declared profiles and
// properties are layered over the process environment; without them the
// process environment is used directly.
func (c *Config) Environment() environment.Environment {
	osEnv := environment.NewOS()
	if c.Definition == nil {
		return osEnv
	}

	if len(c.Definition.Profiles) == 0 && len(c.Definition.Properties) == 0 {
		return osEnv
	}

	profiles := c.Definition.Profiles
	if len(profiles) == 0 {
		profiles = osEnv.ActiveProfiles()
	}

	static := environment.NewStatic(c.Definition.Properties, profiles)
	return static.WithParent(osEnv)
}
