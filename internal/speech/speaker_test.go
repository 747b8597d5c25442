package speech

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullCompletesImmediately(t *testing.T) {
	done := false
	Null{}.Say("hello", func() { done = true })
	assert.True(t, done)

	// Nil callback must not panic
	Null{}.Say("hello", nil)
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	done := false
	Writer{W: &buf}.Say("Task saved successfully!", func() { done = true })

	assert.Contains(t, buf.String(), "Task saved successfully!")
	assert.True(t, done)
}

func TestFuncAdapter(t *testing.T) {
	var heard string
	s := Func(func(msg string, onComplete func()) {
		heard = msg
		if onComplete != nil {
			onComplete()
		}
	})
	s.Say("ping", nil)
	assert.Equal(t, "ping", heard)
}
