// Package prompt builds the text payloads sent to the inference server.
//
// There are exactly three request shapes: a command tutorial, a step-by-step
// procedure, and a follow-up question that carries the running conversation.
// Build is pure; the caller owns the session context and passes it in per turn.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which request template Build uses.
type Mode int

const (
	ModeTutorial Mode = iota
	ModeSteps
	ModeFollowup
)

func (m Mode) String() string {
	switch m {
	case ModeTutorial:
		return "tutorial"
	case ModeSteps:
		return "steps"
	case ModeFollowup:
		return "followup"
	default:
		return "unknown"
	}
}

// ErrEmptySubject indicates a tutorial or steps request without a subject.
var ErrEmptySubject = errors.New("empty subject")

// ErrNoContext indicates a follow-up without a prior answer to build on.
var ErrNoContext = errors.New("no active topic")

// Context is a snapshot of the conversation used for follow-up prompts.
type Context struct {
	// Topic is the command or task of the active conversation.
	Topic string
	// LastResponse is the most recent assistant answer.
	LastResponse string
	// History is the accumulated transcript ("Topic: ...\nUser: ...\nAssistant: ...").
	History string
}

// Active reports whether there is a conversation to follow up on.
func (c Context) Active() bool {
	return c.LastResponse != ""
}

const tutorialTemplate = `Provide a concise, practical tutorial for the Linux command: %s

Include:
1. Brief description (1-2 sentences)
2. Basic syntax
3. 3-5 most useful examples with explanations
4. Common options/flags
5. One tip or warning

Keep it practical and beginner-friendly. Use markdown formatting.`

const stepsTemplate = `Provide clear step-by-step instructions for: %s

Format as:
1. Step 1: [command] - explanation
2. Step 2: [command] - explanation
...

Include actual commands to run. Keep it concise and actionable. Use markdown formatting.`

const followupTemplate = `You are helping a user learn Linux commands. Maintain context from the previous conversation and answer the follow-up question.

Previous conversation:
%s

Follow-up question: %s

Provide a helpful, concise answer that builds on the previous context. Use markdown formatting where appropriate.`

// Build constructs the prompt text for the given mode and subject.
//
// Tutorial and steps modes require a non-empty subject and ignore the
// context. Followup mode requires a context with a prior response.
func Build(mode Mode, subject string, ctx Context) (string, error) {
	subject = strings.TrimSpace(subject)
	switch mode {
	case ModeTutorial:
		if subject == "" {
			return "", ErrEmptySubject
		}
		return fmt.Sprintf(tutorialTemplate, subject), nil
	case ModeSteps:
		if subject == "" {
			return "", ErrEmptySubject
		}
		return fmt.Sprintf(stepsTemplate, subject), nil
	case ModeFollowup:
		if subject == "" {
			return "", ErrEmptySubject
		}
		if !ctx.Active() {
			return "", ErrNoContext
		}
		return fmt.Sprintf(followupTemplate, ctx.History, subject), nil
	default:
		return "", fmt.Errorf("unknown mode %d", mode)
	}
}
