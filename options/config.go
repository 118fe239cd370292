// Package options provides configuration management for the pengu CLI.
package options

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultBackend is the backend used when none is specified. Configurable via
// PENGU_BACKEND or via configuration files.
var DefaultBackend = "ollama"

// DefaultModels maps backend names to their default models.
var DefaultModels = map[string]string{
	"ollama": "gemma3:12b",
	"dummy":  "dummy",
}

// DefaultBaseURL is the inference server endpoint used when none is specified.
var DefaultBaseURL = "http://localhost:11434"

// Config holds the configuration for the pengu CLI.
type Config struct {
	Backend string `yaml:"backend"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"`

	Stream      bool    `yaml:"stream"`
	MaxTokens   int     `yaml:"maxTokens"`
	Temperature float64 `yaml:"temperature"`

	CompletionTimeout time.Duration `yaml:"completionTimeout"`

	Debug bool `yaml:"debug"`
}

// LoadConfig loads the configuration from the following sources, in order of
// precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables (PENGU_*)
//  3. Configuration file (--config, ~/.pengu/config.yaml)
//  4. Default values (lowest priority)
//
// A missing config file is not an error; defaults and flags still apply.
func LoadConfig(stderr io.Writer, flagSet *pflag.FlagSet) (*Config, error) {
	if flagSet == nil {
		flagSet = pflag.CommandLine
	}
	cfg := &Config{}
	v := viper.New()

	SetupViper(v, flagSet)
	SetupFlagNormalization(flagSet)

	// Read config file first
	if err := HandleConfigFile(v, stderr, flagSet); err != nil {
		return nil, err
	}

	// Then bind flags (so they override config)
	if err := v.BindPFlags(flagSet); err != nil {
		return nil, fmt.Errorf("unable to bind flags: %w", err)
	}

	backend := v.GetString("backend")
	if debug, _ := flagSet.GetBool("debug"); debug {
		fmt.Fprintf(stderr, "pengu: backend is %q\n", backend)
	}

	// Check if model is explicitly set anywhere before applying the
	// backend's default model.
	hasModel := false
	if flagSet.Changed("model") {
		hasModel = true
	} else if IsEnvSet("PENGU_MODEL") {
		hasModel = true
		v.Set("model", os.Getenv("PENGU_MODEL"))
	} else if v.InConfig("model") {
		hasModel = true
	}
	if !hasModel {
		if defaultModel, ok := DefaultModels[backend]; ok {
			v.Set("model", defaultModel)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// IsEnvSet checks if an environment variable is set.
func IsEnvSet(key string) bool {
	_, exists := os.LookupEnv(key)
	return exists
}

// SetupViper configures viper with default values and settings.
func SetupViper(v *viper.Viper, flagSet *pflag.FlagSet) {
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("baseURL", DefaultBaseURL)
	v.SetDefault("stream", true)
	v.SetDefault("temperature", 0.05)
	v.SetDefault("maxTokens", 4096)
	v.SetDefault("completionTimeout", 2*time.Minute)

	v.AddConfigPath("/etc/pengu/")
	v.AddConfigPath("$HOME/.pengu")
	v.AddConfigPath(".")
	v.SetConfigName("config")

	v.SetEnvPrefix("PENGU")
	v.AutomaticEnv()

	if flagConfigFilePath := flagSet.Lookup("config"); flagConfigFilePath != nil && flagConfigFilePath.Changed {
		v.SetConfigFile(flagConfigFilePath.Value.String())
	}
}

// SetupFlagNormalization configures flag normalization to handle dashes in
// flag names, so --base-url and baseURL resolve to the same key.
func SetupFlagNormalization(flagSet *pflag.FlagSet) {
	normalizeFunc := flagSet.GetNormalizeFunc()
	flagSet.SetNormalizeFunc(func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		result := normalizeFunc(fs, name)
		name = strings.ReplaceAll(string(result), "-", "")
		return pflag.NormalizedName(name)
	})
}

// HandleConfigFile handles loading the configuration file.
func HandleConfigFile(v *viper.Viper, stderr io.Writer, flagSet *pflag.FlagSet) error {
	if configFlag := flagSet.Lookup("config"); configFlag != nil && configFlag.Changed {
		configFile := configFlag.Value.String()
		if verbose, _ := flagSet.GetBool("verbose"); verbose {
			fmt.Fprintf(stderr, "pengu: trying to read config file: %s\n", configFile)
		}
		if _, err := os.Stat(configFile); err != nil {
			if verbose, _ := flagSet.GetBool("verbose"); verbose {
				fmt.Fprintf(stderr, "pengu: config file %s not accessible: %v\n", configFile, err)
			}
			return nil
		}
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if debug, _ := flagSet.GetBool("debug"); debug {
				fmt.Fprintln(stderr, "pengu: config file not found, using defaults")
			}
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}

	if verbose, _ := flagSet.GetBool("verbose"); verbose {
		fmt.Fprintf(stderr, "pengu: successfully read config from %s\n", v.ConfigFileUsed())
	}
	return nil
}
