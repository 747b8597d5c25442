// Package voice turns a continuous capture stream into discrete
// finalized utterances. Each incoming partial transcript resets a
// silence timer; only when nothing new arrives for the quiet period is
// the accumulated transcript committed downstream. Committing briefly
// stops and restarts the capture device to flush its internal buffer
// so the next command is not prefixed with stale text.
package voice

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Transcriber is the speech-capture collaborator. Each event on
// Transcripts carries the full accumulated transcript so far for the
// current utterance. Implementations should auto-restart on natural
// end-of-stream while capture is wanted; Start/Stop errors are
// ignored by the pipeline (the device may already be in that state).
type Transcriber interface {
	Start() error
	Stop() error
	Transcripts() <-chan string
}

// MinCommitLen is the default shortest transcript worth committing;
// anything at or below this is treated as captured noise.
const MinCommitLen = 2

// DefaultQuietPeriod is how long the stream must stay silent before
// the accumulated transcript is treated as final.
const DefaultQuietPeriod = 750 * time.Millisecond

// Pipeline owns the debounce timer and the capture device lifecycle.
type Pipeline struct {
	transcriber Transcriber
	debouncer   *Debouncer
	log         *zap.Logger

	onCommit  func(string)
	onPartial func(string)
	minCommit int

	mu      sync.Mutex
	active  bool
	current string

	done chan struct{}
	wg   sync.WaitGroup
}

// Options configures a Pipeline. OnCommit is required; OnPartial feeds
// the live transcript to the UI and may be nil.
type Options struct {
	Transcriber Transcriber
	QuietPeriod time.Duration
	MinCommit   int
	OnCommit    func(string)
	OnPartial   func(string)
	Logger      *zap.Logger
}

// NewPipeline wires the capture stream to the silence-commit loop and
// starts listening. Capture itself stays off until Resume.
func NewPipeline(opts Options) *Pipeline {
	if opts.QuietPeriod <= 0 {
		opts.QuietPeriod = DefaultQuietPeriod
	}
	if opts.MinCommit <= 0 {
		opts.MinCommit = MinCommitLen
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	p := &Pipeline{
		transcriber: opts.Transcriber,
		debouncer:   NewDebouncer(opts.QuietPeriod),
		log:         opts.Logger,
		onCommit:    opts.OnCommit,
		onPartial:   opts.OnPartial,
		minCommit:   opts.MinCommit,
		done:        make(chan struct{}),
	}
	p.wg.Add(1)
	go p.listen()
	return p
}

// Active reports whether voice capture is currently wanted.
func (p *Pipeline) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Resume turns voice capture on. Used both for the mic toggle and to
// reactivate capture after a clarification prompt has been spoken.
func (p *Pipeline) Resume() {
	p.mu.Lock()
	p.active = true
	p.current = ""
	p.mu.Unlock()
	_ = p.transcriber.Start() // may already be started
	p.log.Debug("voice capture resumed")
}

// Pause turns voice capture off: the silence timer is cancelled, the
// device stopped, and any partial utterance dropped uncommitted.
func (p *Pipeline) Pause() {
	p.mu.Lock()
	p.active = false
	p.current = ""
	p.mu.Unlock()
	p.debouncer.Cancel()
	_ = p.transcriber.Stop() // may already be stopped
	if p.onPartial != nil {
		p.onPartial("")
	}
	p.log.Debug("voice capture paused")
}

// Reconfigure applies updated tuning to a live pipeline. Zero or
// negative values leave the current setting in place.
func (p *Pipeline) Reconfigure(quiet time.Duration, minCommit int) {
	if quiet > 0 {
		p.debouncer.SetQuiet(quiet)
	}
	if minCommit > 0 {
		p.mu.Lock()
		p.minCommit = minCommit
		p.mu.Unlock()
	}
}

// Close pauses capture and shuts the listener down.
func (p *Pipeline) Close() {
	p.Pause()
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	p.wg.Wait()
}

func (p *Pipeline) listen() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case transcript, ok := <-p.transcriber.Transcripts():
			if !ok {
				return
			}
			p.mu.Lock()
			if !p.active {
				p.mu.Unlock()
				continue
			}
			p.current = transcript
			p.mu.Unlock()

			if p.onPartial != nil {
				p.onPartial(transcript)
			}
			p.debouncer.Debounce(p.commit)
		}
	}
}

// commit fires after the quiet period. The accumulated transcript is
// finalized and handed downstream; the device is cycled fire-and-forget
// to clear its buffer.
func (p *Pipeline) commit() {
	p.mu.Lock()
	final := strings.TrimSpace(p.current)
	p.current = ""
	active := p.active
	minCommit := p.minCommit
	p.mu.Unlock()

	if p.onPartial != nil {
		p.onPartial("")
	}
	if !active || len(final) <= minCommit {
		return
	}

	// Cycle the device so the next utterance starts from an empty
	// buffer. Errors are ignored; capture may already be stopped.
	_ = p.transcriber.Stop()
	_ = p.transcriber.Start()

	p.log.Debug("silence commit", zap.String("utterance", final))
	p.onCommit(final)
}
