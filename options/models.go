package options

import (
	"net/http"
)

// InferenceProviderOptions contains options for model initialization.
type InferenceProviderOptions struct {
	// HTTPClient is the HTTP client to use for the model. Tests use this to
	// point the backend at an httptest server.
	HTTPClient *http.Client
}

// InferenceProviderOption is a function that modifies the model options.
type InferenceProviderOption func(*InferenceProviderOptions)
