// Package backends provides a unified interface to inference backends.
package backends

import (
	"net/http"

	"github.com/pengu-sh/pengu/backends/registry"
	"github.com/pengu-sh/pengu/options"
	"github.com/tmc/langchaingo/llms"

	// Register all backends
	_ "github.com/pengu-sh/pengu/backends/dummy"
	_ "github.com/pengu-sh/pengu/backends/ollama"
)

type InferenceProviderOption = options.InferenceProviderOption

// InitializeModel initializes the model based on the given configuration.
func InitializeModel(cfg *options.Config, providerOpts ...options.InferenceProviderOption) (llms.Model, error) {
	return registry.InitializeModel(cfg, providerOpts...)
}

// WithHTTPClient returns an option to set the HTTP client for the inference provider.
func WithHTTPClient(client *http.Client) options.InferenceProviderOption {
	return registry.WithHTTPClient(client)
}
