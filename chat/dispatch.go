package chat

import (
	"strings"

	"github.com/pengu-sh/pengu/prompt"
)

// inputKind classifies one line of user input.
type inputKind int

const (
	kindQuit inputKind = iota
	kindHelp
	kindClear
	kindDispatch // send a request to the inference server
	kindNoTopic  // free text, but no conversation to follow up on
	kindUnknown  // looks like an unrecognized command
)

// turn is the result of classifying a line: what to do, and for dispatches,
// which template and subject to build with.
type turn struct {
	kind    inputKind
	mode    prompt.Mode
	subject string
}

// classify maps a trimmed input line onto a turn. The line protocol:
// quit/exit/q, help, clear, "tutorial <cmd>", "steps <task>" (also "step"),
// and anything else is a follow-up when a conversation is active. Without an
// active conversation, bare text yields a notice and an unrecognized
// "<word> <rest>" line yields an unknown-command error.
func classify(line string, active bool) turn {
	switch strings.ToLower(line) {
	case "quit", "exit", "q":
		return turn{kind: kindQuit}
	case "help":
		return turn{kind: kindHelp}
	case "clear":
		return turn{kind: kindClear}
	}

	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 2 {
		subject := strings.TrimSpace(parts[1])
		switch strings.ToLower(parts[0]) {
		case "tutorial":
			return turn{kind: kindDispatch, mode: prompt.ModeTutorial, subject: subject}
		case "steps", "step":
			return turn{kind: kindDispatch, mode: prompt.ModeSteps, subject: subject}
		}
		if active {
			return turn{kind: kindDispatch, mode: prompt.ModeFollowup, subject: line}
		}
		return turn{kind: kindUnknown, subject: parts[0]}
	}

	// Single word: a follow-up if we have context, otherwise a nudge.
	if active {
		return turn{kind: kindDispatch, mode: prompt.ModeFollowup, subject: line}
	}
	return turn{kind: kindNoTopic}
}
