package voice

import (
	"sync"
)

// Scripted is a Transcriber fed programmatically. The TUI uses it to
// simulate dictation in environments without a microphone, and tests
// drive it directly.
type Scripted struct {
	mu      sync.Mutex
	started bool
	closed  bool
	out     chan string
}

// NewScripted returns a Scripted transcriber with a small event buffer.
func NewScripted() *Scripted {
	return &Scripted{out: make(chan string, 16)}
}

func (s *Scripted) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return nil
}

func (s *Scripted) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}

func (s *Scripted) Transcripts() <-chan string {
	return s.out
}

// Emit pushes a partial transcript event. Events sent while stopped
// are delivered anyway; the pipeline discards them when inactive.
func (s *Scripted) Emit(transcript string) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.out <- transcript
}

// Close ends the transcript stream. Listeners drain and exit.
func (s *Scripted) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.out)
}
