// Package chat implements the interactive turn loop: read a line, classify
// it, build a prompt, call the inference backend, and render the result.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/pengu-sh/pengu/backends/ollama"
	"github.com/pengu-sh/pengu/interactive"
	"github.com/pengu-sh/pengu/prompt"
	"github.com/pengu-sh/pengu/ui"
)

// Service drives the interactive session against a single model backend.
type Service struct {
	cfg *Config

	logger *zap.SugaredLogger
	model  llms.Model

	opts *Options

	renderer *ui.Renderer
	sess     Session

	activeSession interactive.Session
}

// Config holds the static configuration for the Service.
type Config struct {
	// Model is the model identifier sent with every request.
	Model string
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int
	// Temperature controls randomness in generation (0.0-1.0).
	Temperature float64
	// CompletionTimeout bounds a single inference call.
	CompletionTimeout time.Duration
	// Stream requests chunked generation from the backend.
	Stream bool
}

// Options is the per-run configuration for the Service.
type Options struct {
	// Stdout is the writer for rendered output. If nil, os.Stdout is used.
	Stdout io.Writer
	// Stderr is the writer for diagnostics and the spinner. If nil, os.Stderr is used.
	Stderr io.Writer
	// Stdin overrides the terminal input source, used by tests.
	Stdin io.ReadCloser

	ShowSpinner bool

	// ReadlineHistoryFile is where line history is kept between runs.
	ReadlineHistoryFile string

	// RendererOptions are forwarded to the ui renderer.
	RendererOptions []ui.Option
}

// NewOptions creates Options with defaults.
func NewOptions() Options {
	return Options{
		Stdout:              os.Stdout,
		Stderr:              os.Stderr,
		ShowSpinner:         true,
		ReadlineHistoryFile: "~/.pengu_history",
	}
}

// ServiceOption mutates a Service during construction.
type ServiceOption func(*Service)

// WithOptions sets the whole options struct.
func WithOptions(opts Options) ServiceOption {
	return func(s *Service) {
		s.opts = &opts
	}
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) ServiceOption {
	return func(s *Service) {
		s.opts.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) ServiceOption {
	return func(s *Service) {
		s.opts.Stderr = w
	}
}

// WithLogger sets the logger for the chat service.
func WithLogger(l *zap.SugaredLogger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a new Service around the given model.
func New(cfg *Config, model llms.Model, opts ...ServiceOption) (*Service, error) {
	if model == nil {
		return nil, errors.New("model cannot be nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	defaultOpts := NewOptions()
	s := &Service{
		cfg:   cfg,
		model: model,
		opts:  &defaultOpts,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.opts.Stdout == nil {
		s.opts.Stdout = os.Stdout
	}
	if s.opts.Stderr == nil {
		s.opts.Stderr = os.Stderr
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}

	s.renderer = ui.NewRenderer(s.opts.Stdout, s.opts.RendererOptions...)
	return s, nil
}

// Run starts the interactive loop and blocks until the user quits or the
// context is cancelled. A clean quit returns nil.
func (s *Service) Run(ctx context.Context) error {
	s.renderer.Welcome()

	session, err := interactive.NewSession(interactive.Config{
		Prompt:      "λ ▶",
		HistoryFile: s.opts.ReadlineHistoryFile,
		ProcessFn:   s.processLine,
		Stdin:       s.opts.Stdin,
		Stderr:      s.opts.Stderr,
		Logger:      s.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create interactive session: %w", err)
	}
	s.activeSession = session

	runErr := session.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if runErr != nil {
		return runErr
	}
	s.renderer.Goodbye()
	return nil
}

// ProcessLine handles one submitted line; exported for tests that drive the
// loop without a terminal.
func (s *Service) ProcessLine(ctx context.Context, line string) error {
	return s.processLine(ctx, line)
}

// Session returns a copy of the current conversation state.
func (s *Service) Session() Session {
	return s.sess
}

func (s *Service) processLine(ctx context.Context, line string) error {
	t := classify(line, s.sess.Active())

	switch t.kind {
	case kindQuit:
		s.logger.Debug("quit requested")
		return interactive.ErrQuit

	case kindHelp:
		s.renderer.Help()
		return nil

	case kindClear:
		s.renderer.Clear()
		s.renderer.Welcome()
		return nil

	case kindNoTopic:
		s.renderer.Info("No active topic. Start with 'tutorial <command>' or 'steps <task>', or try 'help'.")
		return nil

	case kindUnknown:
		s.renderer.Error(fmt.Sprintf("Unknown command '%s'. Use 'tutorial', 'steps', or ask a follow-up question.", t.subject))
		return nil
	}

	return s.dispatch(ctx, t)
}

// dispatch builds the prompt for a turn, performs the inference call, and
// renders the outcome. The session context is only updated on success.
func (s *Service) dispatch(ctx context.Context, t turn) error {
	// A new tutorial/steps command starts a fresh conversation before the
	// prompt is built; follow-ups snapshot the existing context.
	if t.mode == prompt.ModeTutorial || t.mode == prompt.ModeSteps {
		s.sess.Reset(t.mode, t.subject)
	}

	promptText, err := prompt.Build(t.mode, t.subject, s.sess.Context())
	if err != nil {
		s.renderError(err)
		return nil
	}

	s.logger.Debugf("dispatching %s request for %q", t.mode, t.subject)
	s.renderer.ContextBar(s.sess.Mode.String(), s.sess.Topic)

	response, err := s.generate(ctx, promptText)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.renderError(err)
		return nil
	}

	s.renderer.Response(t.mode.String(), title(t), response)
	s.sess.Fold(t.subject, response)
	return nil
}

// generate performs one blocking inference call, bounded by the completion
// timeout, with a spinner on stderr while it runs.
func (s *Service) generate(ctx context.Context, promptText string) (string, error) {
	if s.cfg.CompletionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CompletionTimeout)
		defer cancel()
	}

	if s.opts.ShowSpinner && isInputFromTerminal() {
		stop := spin(s.opts.Stderr)
		defer stop()
	}

	callOpts := []llms.CallOption{
		llms.WithMaxTokens(s.cfg.MaxTokens),
		llms.WithTemperature(s.cfg.Temperature),
	}
	if s.cfg.Model != "" {
		callOpts = append(callOpts, llms.WithModel(s.cfg.Model))
	}
	if s.cfg.Stream {
		// Streamed chunks are accumulated and rendered as one panel; the
		// callback only exists to keep the connection in streaming mode.
		callOpts = append(callOpts, llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			return ctx.Err()
		}))
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, promptText),
	}
	response, err := s.model.GenerateContent(ctx, messages, callOpts...)
	if errors.Is(err, context.Canceled) {
		return "", context.Canceled
	}
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", ollama.ErrMalformedResponse
	}
	content := response.Choices[0].Content
	if content == "" {
		return "", fmt.Errorf("%w: empty response", ollama.ErrMalformedResponse)
	}
	return content, nil
}

// renderError maps error kinds onto distinct user-facing messages. None of
// them end the loop.
func (s *Service) renderError(err error) {
	var statusErr *ollama.StatusError
	switch {
	case errors.Is(err, prompt.ErrEmptySubject):
		s.renderer.Error("Please specify a command or task. Try 'help' for examples.")
	case errors.Is(err, prompt.ErrNoContext):
		s.renderer.Info("No active topic. Start with 'tutorial <command>' or 'steps <task>'.")
	case errors.Is(err, ollama.ErrServerUnavailable):
		s.renderer.Error("Cannot reach the inference server. Make sure Ollama is running: ollama serve")
	case errors.As(err, &statusErr):
		if statusErr.Code == http.StatusNotFound {
			s.renderer.Error(fmt.Sprintf("The inference server rejected the request (%s). Is the model pulled?", statusErr.Status))
		} else {
			s.renderer.Error(fmt.Sprintf("The inference server returned an error: %s", statusErr.Status))
		}
	case errors.Is(err, ollama.ErrMalformedResponse):
		s.renderer.Error("Received an unexpected response from the inference server. Please try again.")
	case errors.Is(err, context.DeadlineExceeded):
		s.renderer.Error("The request timed out. The model may still be loading; try again.")
	default:
		s.logger.Warnf("unclassified error: %v", err)
		s.renderer.Error(fmt.Sprintf("Unexpected error: %v", err))
	}
}

// title produces the panel heading for a turn.
func title(t turn) string {
	switch t.mode {
	case prompt.ModeTutorial:
		return "Tutorial: " + t.subject
	case prompt.ModeSteps:
		return "Steps: " + t.subject
	default:
		if len(t.subject) > 50 {
			return t.subject[:50] + "..."
		}
		return t.subject
	}
}
