// pkg/ai/client.go

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client sends an ordered, role-tagged conversation to a text generation
// service and returns the completion text. Failures come back as
// *CompletionError; an empty model uses the client's default.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// CompletionError is any transport or service failure talking to the
// completion service, timeouts included. Callers treat it as unusable
// content.
type CompletionError struct {
	Model  string
	Reason string
	Err    error
}

func (e *CompletionError) Error() string {
	if e.Model == "" {
		return "completion service: " + e.Reason
	}
	return fmt.Sprintf("completion service (%s): %s", e.Model, e.Reason)
}

func (e *CompletionError) Unwrap() error { return e.Err }

func IsCompletionError(err error) bool {
	var ce *CompletionError
	return errors.As(err, &ce)
}

// Free text is fenced with these markers inside prompts so that the
// instructions around it are never mistaken for user content.
const (
	NotesOpen  = "<travel-notes>"
	NotesClose = "</travel-notes>"
)

func WrapNotes(text string) string {
	return NotesOpen + "\n" + strings.TrimSpace(text) + "\n" + NotesClose
}

// UnwrapNotes returns the fenced notes of a prompt, or the whole prompt
// when it carries no markers.
func UnwrapNotes(prompt string) string {
	start := strings.Index(prompt, NotesOpen)
	end := strings.LastIndex(prompt, NotesClose)
	if start < 0 || end < start {
		return strings.TrimSpace(prompt)
	}
	return strings.TrimSpace(prompt[start+len(NotesOpen) : end])
}
