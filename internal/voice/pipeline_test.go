package voice

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// collector gathers pipeline callbacks behind a lock so the test can
// assert on them after the debounce timer fires.
type collector struct {
	mu       sync.Mutex
	commits  []string
	partials []string
}

func (c *collector) commit(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits = append(c.commits, s)
}

func (c *collector) partial(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.partials = append(c.partials, s)
}

func (c *collector) committed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.commits...)
}

func newTestPipeline(t *testing.T, quiet time.Duration) (*Pipeline, *Scripted, *collector) {
	t.Helper()
	s := NewScripted()
	c := &collector{}
	p := NewPipeline(Options{
		Transcriber: s,
		QuietPeriod: quiet,
		OnCommit:    c.commit,
		OnPartial:   c.partial,
	})
	t.Cleanup(func() {
		p.Close()
		s.Close()
	})
	return p, s, c
}

func TestPipeline_SilenceCommit(t *testing.T) {
	p, s, c := newTestPipeline(t, 30*time.Millisecond)
	p.Resume()

	// Partials accumulate; only silence finalizes them.
	s.Emit("remind me")
	s.Emit("remind me to buy milk")

	require.Eventually(t, func() bool {
		return len(c.committed()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "remind me to buy milk", c.committed()[0])
}

func TestPipeline_NewPartialResetsTimer(t *testing.T) {
	p, s, c := newTestPipeline(t, 60*time.Millisecond)
	p.Resume()

	// Keep talking faster than the quiet period: no commit yet.
	for i := 0; i < 4; i++ {
		s.Emit("counting one two three")
		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, c.committed())
	}

	require.Eventually(t, func() bool {
		return len(c.committed()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPipeline_ShortTranscriptDropped(t *testing.T) {
	p, s, c := newTestPipeline(t, 20*time.Millisecond)
	p.Resume()

	s.Emit("ok")
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, c.committed())
}

func TestPipeline_InactiveDiscardsEvents(t *testing.T) {
	_, s, c := newTestPipeline(t, 20*time.Millisecond)

	// Never resumed: events are dropped, nothing commits.
	s.Emit("remind me to buy milk")
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, c.committed())
}

func TestPipeline_PauseCancelsPendingCommit(t *testing.T) {
	p, s, c := newTestPipeline(t, 50*time.Millisecond)
	p.Resume()

	s.Emit("remind me to buy milk")
	time.Sleep(10 * time.Millisecond)
	p.Pause()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, c.committed(), "pausing mid-utterance must not commit")
	assert.False(t, p.Active())
}

func TestPipeline_ResumeAfterCommit(t *testing.T) {
	p, s, c := newTestPipeline(t, 20*time.Millisecond)
	p.Resume()

	s.Emit("first full utterance")
	require.Eventually(t, func() bool {
		return len(c.committed()) == 1
	}, time.Second, 5*time.Millisecond)

	// The stream stays live for the next utterance.
	s.Emit("second full utterance")
	require.Eventually(t, func() bool {
		return len(c.committed()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"first full utterance", "second full utterance"}, c.committed())
}

func TestPipeline_Reconfigure(t *testing.T) {
	p, s, c := newTestPipeline(t, 10*time.Second)
	p.Resume()

	// A ten second quiet period would never fire here; tightening it
	// on the live pipeline applies to the next partial.
	p.Reconfigure(20*time.Millisecond, 0)
	s.Emit("schedule dentist tomorrow")
	require.Eventually(t, func() bool {
		return len(c.committed()) == 1
	}, time.Second, 5*time.Millisecond)

	// Raising the minimum length drops the next transcript.
	p.Reconfigure(0, 30)
	s.Emit("open tasks please")
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"schedule dentist tomorrow"}, c.committed())
}

func TestDebouncer(t *testing.T) {
	var mu sync.Mutex
	fired := 0

	d := NewDebouncer(30 * time.Millisecond)
	for i := 0; i < 3; i++ {
		d.Debounce(func() {
			mu.Lock()
			fired++
			mu.Unlock()
		})
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired == 1
	}, time.Second, 5*time.Millisecond)

	// Cancel stops an armed timer before it fires.
	d.Debounce(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	d.Cancel()
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fired)
}
