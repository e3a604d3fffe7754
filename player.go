package reveal

import (
	"strings"

	"github.com/rs/zerolog"
)

// Player replays a fully known string chunk by chunk, emulating live
// generation. It owns the chunk sequence, the cursor, the revealed output,
// the playback status and the single pending timer.
//
// A Player is not safe for concurrent use. Every method, and every callback
// handed to its Scheduler, must run on one host thread (a Bubble Tea Update
// loop, a loop.Loop, or a test goroutine driving a mock scheduler).
type Player struct {
	sched Scheduler
	log   zerolog.Logger

	content string
	opts    Options
	loaded  bool

	chunks []string
	cursor int
	output strings.Builder
	status Status

	// gen identifies the armed timer. disarm bumps it so a callback that was
	// already queued sees a mismatch and does nothing.
	gen    uint64
	cancel func()

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Event)
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithLogger sets the logger used for transition tracing. Defaults to a
// disabled logger.
func WithLogger(l zerolog.Logger) PlayerOption {
	return func(p *Player) {
		p.log = l
	}
}

// NewPlayer creates an idle Player that schedules ticks on s.
func NewPlayer(s Scheduler, opts ...PlayerOption) *Player {
	p := &Player{
		sched: s,
		log:   zerolog.Nop(),
		opts:  DefaultOptions(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subscribe registers fn for every subsequent event and returns a func that
// removes it. fn runs synchronously inside the call that caused the event
// and may call back into the Player.
func (p *Player) Subscribe(fn func(Event)) (unsubscribe func()) {
	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// Play loads content with opts and, when opts.AutoStart is set, starts it.
// A stream already in progress is discarded first. Invalid options leave the
// Player untouched.
func (p *Player) Play(content string, opts Options) error {
	if err := p.Load(content, opts); err != nil {
		return err
	}
	if opts.AutoStart {
		p.begin()
	}
	return nil
}

// Load validates opts, discards any stream in progress and installs content
// without starting it. The Player is idle afterwards.
func (p *Player) Load(content string, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	p.disarm()
	p.content = content
	p.opts = opts
	p.loaded = true
	p.chunks = Chunk(content, opts.Mode, opts.ChunkSize)
	p.cursor = 0
	p.output.Reset()
	p.status = StatusIdle
	p.log.Debug().
		Int("chunks", len(p.chunks)).
		Str("mode", string(opts.Mode)).
		Dur("delay", opts.ChunkDelay).
		Msg("content loaded")
	return nil
}

// Start plays the loaded content from the beginning. From running or paused
// the current stream is reset and restarted in one step, so output from the
// old and new runs never interleaves.
func (p *Player) Start() error {
	if !p.loaded {
		return ErrNoContent
	}
	p.begin()
	return nil
}

func (p *Player) begin() {
	p.disarm()
	p.cursor = 0
	p.output.Reset()
	p.status = StatusRunning
	p.log.Debug().Int("chunks", len(p.chunks)).Msg("started")
	gen := p.gen
	p.emit(EventStarted{Chunks: len(p.chunks)})
	if p.gen == gen && p.status == StatusRunning {
		p.arm()
	}
}

// Pause suspends a running stream, keeping the cursor. No-op otherwise.
func (p *Player) Pause() {
	if p.status != StatusRunning {
		return
	}
	p.disarm()
	p.status = StatusPaused
	p.log.Debug().Int("cursor", p.cursor).Msg("paused")
	p.emit(EventPaused{})
}

// Resume continues a paused stream from the current cursor. No-op otherwise.
func (p *Player) Resume() {
	if p.status != StatusPaused {
		return
	}
	p.status = StatusRunning
	p.log.Debug().Int("cursor", p.cursor).Msg("resumed")
	gen := p.gen
	p.emit(EventResumed{})
	if p.gen == gen && p.status == StatusRunning {
		p.arm()
	}
}

// Stop ends a running or paused stream. Revealed output is kept. No-op
// otherwise.
func (p *Player) Stop() {
	if p.status != StatusRunning && p.status != StatusPaused {
		return
	}
	p.disarm()
	p.status = StatusStopped
	p.log.Debug().Int("cursor", p.cursor).Msg("stopped")
	p.emit(EventStopped{Text: p.output.String()})
}

// Reset cancels any pending tick, clears the cursor and output and returns
// to idle. Loaded content is kept so Start can replay it. Valid from any
// state.
func (p *Player) Reset() {
	p.disarm()
	p.cursor = 0
	p.output.Reset()
	p.status = StatusIdle
	p.log.Debug().Msg("reset")
	p.emit(EventReset{})
}

// Finish reveals every remaining chunk immediately and completes the
// stream. Chunks are still appended one at a time, each with its own
// EventChunkAppended. No-op unless running or paused.
func (p *Player) Finish() {
	if p.status != StatusRunning && p.status != StatusPaused {
		return
	}
	p.disarm()
	p.status = StatusRunning
	gen := p.gen
	for p.gen == gen && p.status == StatusRunning {
		p.step()
	}
}

// Text returns the output revealed so far.
func (p *Player) Text() string { return p.output.String() }

// Status returns the current playback status.
func (p *Player) Status() Status { return p.status }

// Cursor returns the index of the next chunk to reveal.
func (p *Player) Cursor() int { return p.cursor }

// Len returns the number of chunks in the loaded sequence.
func (p *Player) Len() int { return len(p.chunks) }

// Content returns the loaded source text.
func (p *Player) Content() string { return p.content }

// Options returns the options of the loaded stream.
func (p *Player) Options() Options { return p.opts }

// Progress returns the revealed fraction of the chunk sequence in [0, 1].
func (p *Player) Progress() float64 {
	if len(p.chunks) == 0 {
		if p.status == StatusComplete {
			return 1
		}
		return 0
	}
	return float64(p.cursor) / float64(len(p.chunks))
}

// arm schedules the next tick. At most one tick is ever pending.
func (p *Player) arm() {
	if p.cancel != nil {
		return
	}
	gen := p.gen
	p.cancel = p.sched.Schedule(p.opts.ChunkDelay, func() { p.tick(gen) })
}

// disarm invalidates the pending tick, if any. Safe to call repeatedly.
func (p *Player) disarm() {
	p.gen++
	if p.cancel != nil {
		cancel := p.cancel
		p.cancel = nil
		cancel()
	}
}

func (p *Player) tick(gen uint64) {
	if gen != p.gen || p.status != StatusRunning {
		p.log.Trace().Uint64("gen", gen).Uint64("current", p.gen).Msg("stale tick dropped")
		return
	}
	p.cancel = nil
	p.step()
	if p.gen == gen && p.status == StatusRunning {
		p.arm()
	}
}

// step reveals the next chunk, or completes the stream when none remain.
func (p *Player) step() {
	if p.cursor >= len(p.chunks) {
		p.status = StatusComplete
		p.log.Debug().Int("chunks", len(p.chunks)).Msg("complete")
		p.emit(EventComplete{Text: p.output.String()})
		return
	}
	chunk := p.chunks[p.cursor]
	p.cursor++
	p.output.WriteString(chunk)
	p.emit(EventChunkAppended{Chunk: chunk, Text: p.output.String()})
}

func (p *Player) emit(e Event) {
	if len(p.subs) == 0 {
		return
	}
	// Handlers may subscribe or unsubscribe while being notified.
	subs := append([]subscriber(nil), p.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}
