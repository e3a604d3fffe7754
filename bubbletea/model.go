package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/reveal"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
)

var _ tea.Model = Model{}

// Config controls a Model.
type Config struct {
	Options reveal.Options
	Theme   reveal.Theme
	// AutoAdvance plays the next document when one completes.
	AutoAdvance bool
	// Logger traces playback; nil disables logging.
	Logger *zerolog.Logger
}

// Model is the Bubble Tea model for the reveal viewer.
type Model struct {
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	s      *session
	styles Styles
	keys   KeyMap
	help   help.Model

	// follow keeps the viewport pinned to the bottom while text arrives.
	// Scrolling up releases it; reaching the bottom again restores it.
	follow bool
	err    error
	ready  bool
}

// session is the state shared by every copy of the Model. The player's
// event handler writes to it from inside Update.
type session struct {
	player *reveal.Player
	sched  *Scheduler
	block  *StreamBlock
	log    zerolog.Logger

	docs        []Document
	current     int
	opts        reveal.Options
	autoAdvance bool
}

func (s *session) handle(e reveal.Event) {
	switch e := e.(type) {
	case reveal.EventStarted, reveal.EventReset:
		s.block.Reset()
		s.block.SetStreaming(s.player.Status() == reveal.StatusRunning)
	case reveal.EventChunkAppended:
		s.block.Append(e.Chunk)
	case reveal.EventPaused, reveal.EventStopped:
		s.block.SetStreaming(false)
	case reveal.EventResumed:
		s.block.SetStreaming(true)
	case reveal.EventComplete:
		s.block.SetStreaming(false)
		s.log.Debug().Int("doc", s.current).Msg("document complete")
		if s.autoAdvance && s.current+1 < len(s.docs) {
			// Play is reentrant: this tick will not re-arm.
			_ = s.load(s.current + 1)
		}
	}
}

func (s *session) load(i int) error {
	s.current = i
	s.block.Reset()
	s.block.SetStreaming(false)
	return s.player.Play(s.docs[i].Content, s.opts)
}

// New creates a Model that replays docs with cfg. The first document is
// loaded immediately; with cfg.Options.AutoStart it starts playing when the
// program initializes.
func New(docs []Document, cfg Config) (Model, error) {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	styles := NewStyles(cfg.Theme)
	sched := &Scheduler{}
	s := &session{
		player:      reveal.NewPlayer(sched, reveal.WithLogger(log)),
		sched:       sched,
		block:       NewStreamBlock(cfg.Theme, styles),
		log:         log,
		docs:        docs,
		opts:        cfg.Options,
		autoAdvance: cfg.AutoAdvance,
	}
	s.player.Subscribe(s.handle)
	if len(docs) > 0 {
		if err := s.load(0); err != nil {
			return Model{}, fmt.Errorf("load %s: %w", docs[0].Name, err)
		}
	} else if err := cfg.Options.Validate(); err != nil {
		return Model{}, err
	}
	return Model{
		s:      s,
		styles: styles,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		follow: true,
	}, nil
}

// Player returns the underlying player.
func (m Model) Player() *reveal.Player { return m.s.player }

// Current returns the index of the loaded document.
func (m Model) Current() int { return m.s.current }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model. It releases the ticks scheduled while loading.
func (m Model) Init() tea.Cmd {
	return m.s.sched.Flush()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)

	case TickMsg:
		msg.fire()

	case tea.KeyMsg:
		var cmd tea.Cmd
		var quit bool
		m, cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
		m.follow = m.Viewport.AtBottom()
	}

	m = m.refresh()
	cmds = append(cmds, m.s.sched.Flush())
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	statusHeight := 1
	helpHeight := 1
	vpHeight := max(msg.Height-statusHeight-helpHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.help.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	p := m.s.player
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, nil, true
	case key.Matches(msg, m.keys.Toggle):
		if p.Status() == reveal.StatusPaused {
			p.Resume()
		} else {
			p.Pause()
		}
	case key.Matches(msg, m.keys.Start):
		m.err = p.Start()
		m.follow = true
	case key.Matches(msg, m.keys.Stop):
		p.Stop()
	case key.Matches(msg, m.keys.Reset):
		p.Reset()
		m.follow = true
	case key.Matches(msg, m.keys.Finish):
		p.Finish()
	case key.Matches(msg, m.keys.Next):
		if len(m.s.docs) > 0 {
			m.err = m.s.load((m.s.current + 1) % len(m.s.docs))
			m.follow = true
		}
	default:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		m.follow = m.Viewport.AtBottom()
		return m, cmd, false
	}
	return m, nil, false
}

// refresh re-renders the revealed text into the viewport and follows the
// bottom when pinned.
func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.s.block.View(m.Viewport.Width))
	if m.follow {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(truncate(fmt.Sprintf("Error: %v", m.err), m.Viewport.Width))
	}
	p := m.s.player
	badge := fmt.Sprintf("[%s]", p.Status())
	var parts []string
	if n := len(m.s.docs); n > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d %s", m.s.current+1, n, m.s.docs[m.s.current].Name))
	}
	parts = append(parts, fmt.Sprintf("%3.0f%%", p.Progress()*100))
	if !m.follow {
		parts = append(parts, "scrolled")
	}
	rest := truncate(strings.Join(parts, "  "), m.Viewport.Width-runewidth.StringWidth(badge)-1)
	return m.styles.Status(p.Status()).Render(badge) + " " + m.styles.Muted.Render(rest)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
