package chat

import (
	"fmt"

	"github.com/pengu-sh/pengu/prompt"
)

// Session tracks the active conversation: the current topic, the latest
// answer, and the running transcript used by follow-up prompts. It is owned
// by the Service and only mutated between turns.
type Session struct {
	Mode         prompt.Mode
	Topic        string
	LastResponse string
	History      string
}

// Active reports whether there is a conversation to follow up on.
func (s *Session) Active() bool {
	return s.LastResponse != ""
}

// Reset starts a new conversation for the given mode and topic, discarding
// any prior answer and transcript.
func (s *Session) Reset(mode prompt.Mode, topic string) {
	*s = Session{Mode: mode, Topic: topic}
}

// Fold records a completed exchange. Called only after a successful
// inference call, so a failed request leaves the session untouched.
func (s *Session) Fold(question, answer string) {
	s.LastResponse = answer
	if s.History == "" {
		s.History = fmt.Sprintf("Topic: %s\nUser: %s\nAssistant: %s\n", s.Topic, question, answer)
		return
	}
	s.History += fmt.Sprintf("\nUser: %s\nAssistant: %s\n", question, answer)
}

// Context returns the snapshot passed into the prompt builder.
func (s *Session) Context() prompt.Context {
	return prompt.Context{
		Topic:        s.Topic,
		LastResponse: s.LastResponse,
		History:      s.History,
	}
}
