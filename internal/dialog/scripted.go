package dialog

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Message is a dialog message recorded by Scripted.
type Message struct {
	Title string
	Text  string
}

// Scripted answers dialogs from preset values.
type Scripted struct {
	// LoadPaths is returned by the load dialog; empty means cancelled.
	LoadPaths []string
	// SavePath is returned by the save dialog; empty means cancelled.
	SavePath string
	// Confirm is the answer to every confirmation.
	Confirm bool
	// Out receives error messages when set.
	Out io.Writer

	mu       sync.Mutex
	errors   []Message
	confirms []Message
}

// ShowProjectLoadDialog returns LoadPaths.
func (s *Scripted) ShowProjectLoadDialog(ctx context.Context, title string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.LoadPaths) == 0 {
		return nil, nil
	}
	out := make([]string, len(s.LoadPaths))
	copy(out, s.LoadPaths)
	return out, nil
}

// ShowProjectSaveDialog returns SavePath.
func (s *Scripted) ShowProjectSaveDialog(ctx context.Context, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.SavePath, nil
}

// ShowConfirmDialog records the question and returns Confirm.
func (s *Scripted) ShowConfirmDialog(ctx context.Context, title, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	s.confirms = append(s.confirms, Message{Title: title, Text: message})
	s.mu.Unlock()
	return s.Confirm, nil
}

// ShowErrorDialog records the message and echoes it to Out.
func (s *Scripted) ShowErrorDialog(ctx context.Context, title, message string) error {
	s.mu.Lock()
	s.errors = append(s.errors, Message{Title: title, Text: message})
	s.mu.Unlock()
	if s.Out != nil {
		if _, err := fmt.Fprintf(s.Out, "%s: %s\n", title, message); err != nil {
			return err
		}
	}
	return nil
}

// Errors returns the error messages shown so far.
func (s *Scripted) Errors() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.errors))
	copy(out, s.errors)
	return out
}

// Confirms returns the confirmation questions asked so far.
func (s *Scripted) Confirms() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.confirms))
	copy(out, s.confirms)
	return out
}
