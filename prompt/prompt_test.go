package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	t.Run("TutorialContainsSubject", func(t *testing.T) {
		for _, subject := range []string{"grep", "tar -xzf", "find / -name '*.log'"} {
			got, err := Build(ModeTutorial, subject, Context{})
			if err != nil {
				t.Errorf("Build(ModeTutorial, %q): %v", subject, err)
				continue
			}
			if !strings.Contains(got, subject) {
				t.Errorf("Build(ModeTutorial, %q) does not contain the subject", subject)
			}
		}
	})

	t.Run("StepsContainsSubject", func(t *testing.T) {
		got, err := Build(ModeSteps, "set up nginx", Context{})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if !strings.Contains(got, "set up nginx") {
			t.Error("Build(ModeSteps) does not contain the task")
		}
		if !strings.Contains(got, "step-by-step") {
			t.Error("Build(ModeSteps) does not use the steps template")
		}
	})

	t.Run("EmptySubject", func(t *testing.T) {
		for _, mode := range []Mode{ModeTutorial, ModeSteps, ModeFollowup} {
			if _, err := Build(mode, "  ", Context{LastResponse: "x", History: "x"}); !errors.Is(err, ErrEmptySubject) {
				t.Errorf("Build(%v, blank) = %v, want ErrEmptySubject", mode, err)
			}
		}
	})

	t.Run("FollowupRequiresContext", func(t *testing.T) {
		for _, question := range []string{"what does -i do?", "why?", "show me an example"} {
			if _, err := Build(ModeFollowup, question, Context{}); !errors.Is(err, ErrNoContext) {
				t.Errorf("Build(ModeFollowup, %q, empty context) = %v, want ErrNoContext", question, err)
			}
		}
	})

	t.Run("FollowupEmbedsHistoryAndQuestion", func(t *testing.T) {
		ctx := Context{
			Topic:        "grep",
			LastResponse: "GREP_TUTORIAL_TEXT",
			History:      "Topic: grep\nUser: tutorial grep\nAssistant: GREP_TUTORIAL_TEXT\n",
		}
		got, err := Build(ModeFollowup, "what does -i do?", ctx)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if !strings.Contains(got, "grep") {
			t.Error("Followup prompt does not embed the prior topic")
		}
		if !strings.Contains(got, "GREP_TUTORIAL_TEXT") {
			t.Error("Followup prompt does not embed the prior response verbatim")
		}
		if !strings.Contains(got, "what does -i do?") {
			t.Error("Followup prompt does not embed the question")
		}
	})
}

func TestModeString(t *testing.T) {
	cases := map[Mode]string{
		ModeTutorial: "tutorial",
		ModeSteps:    "steps",
		ModeFollowup: "followup",
		Mode(42):     "unknown",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
