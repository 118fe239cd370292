package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

// ReadlineSession implements an interactive terminal session using chzyer/readline.
type ReadlineSession struct {
	config Config
	log    *zap.SugaredLogger

	mu     sync.Mutex // Protects reader
	reader *readline.Instance
}

var _ Session = (*ReadlineSession)(nil)

// NewSession creates a new interactive readline session.
func NewSession(cfg Config) (Session, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.Named("readline")

	if cfg.Prompt != "" && !strings.HasSuffix(cfg.Prompt, " ") {
		cfg.Prompt = cfg.Prompt + " "
	}

	historyPath, err := expandTilde(cfg.HistoryFile)
	if err != nil {
		log.Warnf("Could not expand history file path '%s': %v", cfg.HistoryFile, err)
		historyPath = cfg.HistoryFile
	}
	cfg.HistoryFile = historyPath

	readlineConfig := &readline.Config{
		Prompt:            cfg.Prompt,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistoryFile:       cfg.HistoryFile,
		HistoryLimit:      10000,
		HistorySearchFold: true,
	}
	if cfg.Stdin != nil {
		readlineConfig.Stdin = cfg.Stdin
	}
	if cfg.Stdout != nil {
		readlineConfig.Stdout = cfg.Stdout
	}
	if cfg.Stderr != nil {
		readlineConfig.Stderr = cfg.Stderr
	}

	reader, err := readline.NewEx(readlineConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}

	return &ReadlineSession{
		config: cfg,
		log:    log,
		reader: reader,
	}, nil
}

// Quit closes the readline instance, unblocking a pending Readline call.
func (s *ReadlineSession) Quit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader != nil {
		s.reader.Close()
	}
}

// Run starts the interactive input loop. It returns nil on a clean exit
// (quit command or Ctrl+D) and ctx.Err() when the context is cancelled.
func (s *ReadlineSession) Run(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		if s.reader != nil {
			s.reader.Close()
			s.reader = nil
		}
		s.mu.Unlock()
	}()

	// Close the readline instance when the main context is cancelled to
	// unblock the Readline call.
	contextDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.log.Debugf("Context cancelled (%v), closing readline", ctx.Err())
			s.Quit()
		case <-contextDone:
		}
	}()
	defer close(contextDone)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.mu.Lock()
		reader := s.reader
		s.mu.Unlock()
		if reader == nil {
			return errors.New("readline instance closed unexpectedly")
		}

		line, err := reader.Readline()
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C at the prompt clears the line; on an empty line we
			// remind how to leave rather than exiting.
			if len(line) == 0 {
				fmt.Fprintln(s.stderr(), "Interrupted. Use 'quit' or 'exit' to leave.")
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			s.log.Debug("EOF received, exiting")
			return nil
		}
		if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.process(ctx, line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if errors.Is(err, ErrEmptyInput) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

// process invokes ProcessFn with a context that is cancelled if an interrupt
// arrives while the handler is running, so Ctrl+C aborts an in-flight request
// instead of killing the process.
func (s *ReadlineSession) process(ctx context.Context, line string) error {
	procCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCh:
			s.log.Debug("Interrupt during processing, cancelling")
			cancel()
		case <-done:
		}
	}()

	err := s.config.ProcessFn(procCtx, line)
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		// The turn was interrupted but the session lives on.
		fmt.Fprintln(s.stderr(), "Request cancelled.")
		return nil
	}
	return err
}

func (s *ReadlineSession) stderr() io.Writer {
	if s.config.Stderr != nil {
		return s.config.Stderr
	}
	return os.Stderr
}

func expandTilde(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	if len(path) == 1 {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
