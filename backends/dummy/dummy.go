// Package dummy provides a scripted backend for testing and offline use.
package dummy

import (
	"context"
	"strings"

	"github.com/pengu-sh/pengu/backends/registry"
	"github.com/pengu-sh/pengu/options"
	"github.com/tmc/langchaingo/llms"
)

func init() {
	registry.Register("dummy", Constructor)
}

// Constructor creates a new dummy backend.
func Constructor(cfg *options.Config, opts *options.InferenceProviderOptions) (llms.Model, error) {
	return NewBackend(), nil
}

// Backend is a mock LLM implementation. GenerateText decides the reply; tests
// override it to script exact responses, and LastPrompt records what was sent.
type Backend struct {
	GenerateText func(prompt string) string
	Err          error

	LastPrompt string
	Calls      int
}

var _ llms.Model = (*Backend)(nil)

// NewBackend creates a Backend with default settings.
func NewBackend() *Backend {
	return &Backend{
		GenerateText: func(string) string { return defaultText },
	}
}

var defaultText = `This is a scripted response from the dummy backend. ` +
	`It exists so the interactive loop can be exercised without a running inference server.`

// Call implements the llms.Model interface.
func (d *Backend) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	response, err := d.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) > 0 {
		return response.Choices[0].Content, nil
	}
	return "", nil
}

// GenerateContent implements the llms.Model interface.
func (d *Backend) GenerateContent(ctx context.Context, messages []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	d.Calls++
	d.LastPrompt = flatten(messages)
	if d.Err != nil {
		return nil, d.Err
	}

	text := d.GenerateText(d.LastPrompt)

	callOpts := llms.CallOptions{}
	for _, opt := range opts {
		opt(&callOpts)
	}

	if callOpts.StreamingFunc != nil {
		for _, word := range strings.SplitAfter(text, " ") {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			if err := callOpts.StreamingFunc(ctx, []byte(word)); err != nil {
				return nil, err
			}
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}, nil
}

func flatten(messages []llms.MessageContent) string {
	var parts []string
	for _, m := range messages {
		for _, p := range m.Parts {
			if text, ok := p.(llms.TextContent); ok {
				parts = append(parts, text.Text)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}
