package options

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestLoadConfig(t *testing.T) {
	resetViperAndEnv := func() {
		viper.Reset()
		os.Unsetenv("PENGU_BACKEND")
		os.Unsetenv("PENGU_MODEL")
		os.Unsetenv("PENGU_BASEURL")
	}

	createFlagSet := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.String("backend", "ollama", "Backend to use")
		fs.String("model", "", "Model to use")
		fs.String("base-url", "", "Inference server base URL")
		fs.Bool("verbose", false, "Verbose output")
		fs.Bool("debug", false, "Debug output")
		return fs
	}

	t.Run("DefaultConfig", func(t *testing.T) {
		resetViperAndEnv()
		fs := createFlagSet()
		cfg, err := LoadConfig(io.Discard, fs)

		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if cfg.Backend != "ollama" {
			t.Errorf("Expected Backend to be 'ollama', got '%s'", cfg.Backend)
		}
		if cfg.Model != "gemma3:12b" {
			t.Errorf("Expected Model to be 'gemma3:12b', got '%s'", cfg.Model)
		}
		if cfg.BaseURL != "http://localhost:11434" {
			t.Errorf("Expected BaseURL to be 'http://localhost:11434', got '%s'", cfg.BaseURL)
		}
		if cfg.MaxTokens != 4096 {
			t.Errorf("Expected MaxTokens to be 4096, got %d", cfg.MaxTokens)
		}
		if cfg.CompletionTimeout != 2*time.Minute {
			t.Errorf("Expected CompletionTimeout to be 2 minutes, got %v", cfg.CompletionTimeout)
		}
		if !cfg.Stream {
			t.Error("Expected Stream to default to true")
		}
	})

	t.Run("ConfigFromFlags", func(t *testing.T) {
		resetViperAndEnv()
		fs := createFlagSet()
		fs.Set("backend", "dummy")
		fs.Set("model", "dummy")
		fs.Set("base-url", "http://127.0.0.1:9999")
		cfg, err := LoadConfig(io.Discard, fs)

		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if cfg.Backend != "dummy" {
			t.Errorf("Expected backend to be 'dummy', but got '%s'", cfg.Backend)
		}
		if cfg.Model != "dummy" {
			t.Errorf("Expected model to be 'dummy', but got '%s'", cfg.Model)
		}
		if cfg.BaseURL != "http://127.0.0.1:9999" {
			t.Errorf("Expected base URL to be 'http://127.0.0.1:9999', but got '%s'", cfg.BaseURL)
		}
	})

	t.Run("ConfigFromEnv", func(t *testing.T) {
		resetViperAndEnv()
		os.Setenv("PENGU_BACKEND", "dummy")
		defer os.Unsetenv("PENGU_BACKEND")
		fs := createFlagSet()
		cfg, err := LoadConfig(io.Discard, fs)

		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if cfg.Backend != "dummy" {
			t.Errorf("Expected backend to be 'dummy', but got '%s'", cfg.Backend)
		}
		if cfg.Model != "dummy" {
			t.Errorf("Expected model to be 'dummy', but got '%s'", cfg.Model)
		}
	})

	t.Run("FlagsBeatEnv", func(t *testing.T) {
		resetViperAndEnv()
		os.Setenv("PENGU_BACKEND", "dummy")
		defer os.Unsetenv("PENGU_BACKEND")
		fs := createFlagSet()
		fs.Set("backend", "ollama")
		cfg, err := LoadConfig(io.Discard, fs)

		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if cfg.Backend != "ollama" {
			t.Errorf("Expected backend to be 'ollama', but got '%s'", cfg.Backend)
		}
		if cfg.Model != "gemma3:12b" {
			t.Errorf("Expected model to be 'gemma3:12b', but got '%s'", cfg.Model)
		}
	})

	t.Run("CustomModel", func(t *testing.T) {
		resetViperAndEnv()
		fs := createFlagSet()
		fs.Set("model", "llama3.2:3b")
		cfg, err := LoadConfig(io.Discard, fs)

		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if cfg.Model != "llama3.2:3b" {
			t.Errorf("Expected model to be 'llama3.2:3b', but got '%s'", cfg.Model)
		}
	})
}
