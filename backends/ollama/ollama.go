// Package ollama provides a backend speaking the native Ollama HTTP API.
//
// The backend talks to POST /api/generate for completions and GET /api/tags
// for health checks. Field names on the wire are owned by Ollama.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pengu-sh/pengu/backends/registry"
	"github.com/pengu-sh/pengu/options"
	"github.com/tmc/langchaingo/llms"
)

func init() {
	registry.Register("ollama", Constructor)
}

// DefaultBaseURL is the endpoint used when none is configured.
const DefaultBaseURL = "http://localhost:11434"

// PingTimeout bounds the startup health check.
const PingTimeout = 2 * time.Second

// ErrServerUnavailable indicates the inference server could not be reached.
var ErrServerUnavailable = errors.New("inference server unavailable")

// ErrMalformedResponse indicates the server answered but the body could not
// be decoded or lacked the expected response field.
var ErrMalformedResponse = errors.New("malformed response from inference server")

// StatusError is returned when the server answers with a non-success status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference server error: %s", e.Status)
}

// Constructor creates a new Ollama backend from the CLI configuration.
func Constructor(cfg *options.Config, opts *options.InferenceProviderOptions) (llms.Model, error) {
	backendOpts := []Option{
		WithModel(cfg.Model),
		WithBaseURL(cfg.BaseURL),
	}
	if opts.HTTPClient != nil {
		backendOpts = append(backendOpts, WithHTTPClient(opts.HTTPClient))
	}
	return New(backendOpts...)
}

// Backend implements llms.Model over the native Ollama API.
type Backend struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ llms.Model = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithBaseURL sets the server base URL.
func WithBaseURL(rawURL string) Option {
	return func(b *Backend) {
		b.baseURL = strings.TrimRight(rawURL, "/")
	}
}

// WithModel sets the default model identifier.
func WithModel(model string) Option {
	return func(b *Backend) { b.model = model }
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Backend) { b.httpClient = client }
}

// New creates a Backend with the given options.
func New(opts ...Option) (*Backend, error) {
	b := &Backend{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.baseURL == "" {
		b.baseURL = DefaultBaseURL
	}
	return b, nil
}

// generateRequest is the body for POST /api/generate.
type generateRequest struct {
	Model   string           `json:"model"`
	Prompt  string           `json:"prompt"`
	Stream  bool             `json:"stream"`
	Options *generateOptions `json:"options,omitempty"`
}

// generateOptions carries the model parameters Ollama accepts per request.
type generateOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// generateResponse is one line of the /api/generate reply. Response is a
// pointer so an absent field is distinguishable from an empty string.
type generateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}

// Ping verifies the server is reachable. It issues a GET against /api/tags
// and treats anything but a 200 as failure.
func (b *Backend) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

// Call implements the llms.Model interface.
func (b *Backend) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	response, err := b.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", ErrMalformedResponse
	}
	return response.Choices[0].Content, nil
}

// GenerateContent implements the llms.Model interface. The message contents
// are flattened into a single prompt for /api/generate; a StreamingFunc call
// option switches the request into NDJSON streaming mode.
func (b *Backend) GenerateContent(ctx context.Context, messages []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	callOpts := llms.CallOptions{}
	for _, opt := range opts {
		opt(&callOpts)
	}

	reqBody := generateRequest{
		Model:  b.model,
		Prompt: flattenMessages(messages),
		Stream: callOpts.StreamingFunc != nil,
	}
	if callOpts.Model != "" {
		reqBody.Model = callOpts.Model
	}
	if callOpts.MaxTokens > 0 || callOpts.Temperature > 0 {
		reqBody.Options = &generateOptions{
			NumPredict:  callOpts.MaxTokens,
			Temperature: callOpts.Temperature,
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var content string
	if reqBody.Stream {
		content, err = b.readStream(ctx, resp, callOpts.StreamingFunc)
	} else {
		content, err = b.readSingle(resp)
	}
	if err != nil {
		return nil, err
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}, nil
}

// readSingle decodes a non-streaming /api/generate body.
func (b *Backend) readSingle(resp *http.Response) (string, error) {
	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if gr.Response == nil {
		return "", fmt.Errorf("%w: missing response field", ErrMalformedResponse)
	}
	return *gr.Response, nil
}

// readStream consumes NDJSON chunks until a line arrives with done set,
// forwarding each chunk to streamFn when provided.
func (b *Backend) readStream(ctx context.Context, resp *http.Response, streamFn func(context.Context, []byte) error) (string, error) {
	full := strings.Builder{}
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sawChunk := false
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var gr generateResponse
		if err := json.Unmarshal(line, &gr); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if gr.Response != nil {
			sawChunk = true
			full.WriteString(*gr.Response)
			if streamFn != nil {
				if err := streamFn(ctx, []byte(*gr.Response)); err != nil {
					return "", err
				}
			}
		}
		if gr.Done {
			return full.String(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	if !sawChunk {
		return "", fmt.Errorf("%w: empty stream", ErrMalformedResponse)
	}
	// Stream ended without a done marker; return what we have.
	return full.String(), nil
}

// flattenMessages joins the text parts of all messages into one prompt.
func flattenMessages(messages []llms.MessageContent) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		for _, p := range m.Parts {
			if text, ok := p.(llms.TextContent); ok {
				parts = append(parts, text.Text)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}
