// Package speech defines the spoken-output collaborator. The engine
// speaks every confirmation and clarification prompt through it; the
// onComplete callback exists so voice capture can be re-enabled only
// after a question has finished playing.
package speech

import (
	"fmt"
	"io"
)

// Speaker plays or displays one assistant message. Implementations
// must invoke onComplete (when non-nil) once the message has been
// delivered; failures are swallowed, never surfaced to the dialogue.
type Speaker interface {
	Say(message string, onComplete func())
}

// Null discards messages and completes immediately.
type Null struct{}

func (Null) Say(message string, onComplete func()) {
	if onComplete != nil {
		onComplete()
	}
}

// Writer prints messages to an io.Writer and completes immediately.
// Used by the one-shot `say` command where there is no audio device.
type Writer struct {
	W io.Writer
}

func (w Writer) Say(message string, onComplete func()) {
	fmt.Fprintf(w.W, "[assistant] %s\n", message)
	if onComplete != nil {
		onComplete()
	}
}

// Func adapts a function to the Speaker interface; the chat TUI uses
// it to route messages into its banner.
type Func func(message string, onComplete func())

func (f Func) Say(message string, onComplete func()) {
	f(message, onComplete)
}
