// Package interactive provides the line-oriented terminal input session.
package interactive

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
)

// ErrEmptyInput signals the submitted line had no content.
var ErrEmptyInput = errors.New("empty input")

// ErrInterrupted signals the session ended on an interrupt.
var ErrInterrupted = errors.New("interrupted")

// ErrQuit signals the process function wants the loop to stop cleanly.
var ErrQuit = errors.New("quit")

// Config defines parameters for creating an interactive session.
type Config struct {
	Prompt      string
	HistoryFile string // Path for loading/saving readline history

	// ProcessFn handles a submitted line. Returning ErrQuit ends the loop
	// cleanly; ErrEmptyInput re-prompts without side effects.
	ProcessFn func(ctx context.Context, input string) error

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer

	Logger *zap.SugaredLogger
}

// Session defines the interface for an interactive session implementation.
type Session interface {
	Run(ctx context.Context) error
	Quit()
}
