package bubbletea_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/reveal"
	bt "github.com/fwojciec/reveal/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() bt.Config {
	o := reveal.DefaultOptions()
	o.ChunkDelay = 0
	o.Mode = reveal.ModeWord
	return bt.Config{Options: o, Theme: reveal.DefaultTheme()}
}

// initModel creates a model and sends a WindowSizeMsg to initialize the
// viewport. The returned cmd holds the ticks scheduled so far.
func initModel(t *testing.T, docs []bt.Document, cfg bt.Config) (bt.Model, tea.Cmd) {
	t.Helper()
	m, err := bt.New(docs, cfg)
	require.NoError(t, err)
	init := m.Init()
	m, cmd := updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, tea.Batch(init, cmd)
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// ticks runs cmd and returns the tick messages it produced.
func ticks(cmd tea.Cmd) []bt.TickMsg {
	var out []bt.TickMsg
	for _, msg := range collect(cmd) {
		if tick, ok := msg.(bt.TickMsg); ok {
			out = append(out, tick)
		}
	}
	return out
}

// step delivers one pending tick and returns the commands it scheduled.
func step(t *testing.T, m bt.Model, pending []bt.TickMsg) (bt.Model, []bt.TickMsg) {
	t.Helper()
	require.NotEmpty(t, pending)
	m, cmd := updateModel(t, m, pending[0])
	return m, append(pending[1:], ticks(cmd)...)
}

// drain delivers ticks until none remain.
func drain(t *testing.T, m bt.Model, pending []bt.TickMsg) bt.Model {
	t.Helper()
	for i := 0; len(pending) > 0; i++ {
		require.Less(t, i, 10000, "tick loop did not settle")
		m, pending = step(t, m, pending)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("loads first document", func(t *testing.T) {
		t.Parallel()
		m, err := bt.New([]bt.Document{{Name: "a", Content: "one two"}}, testConfig())
		require.NoError(t, err)
		assert.Equal(t, reveal.StatusRunning, m.Player().Status())
		assert.Equal(t, "one two", m.Player().Content())
		assert.NoError(t, m.Err())
	})

	t.Run("rejects invalid options", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Options.ChunkSize = 0
		_, err := bt.New([]bt.Document{{Name: "a", Content: "x"}}, cfg)
		assert.ErrorIs(t, err, reveal.ErrInvalidOptions)

		_, err = bt.New(nil, cfg)
		assert.ErrorIs(t, err, reveal.ErrInvalidOptions)
	})

	t.Run("autostart off stays idle", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Options.AutoStart = false
		m, err := bt.New([]bt.Document{{Name: "a", Content: "x"}}, cfg)
		require.NoError(t, err)
		assert.Equal(t, reveal.StatusIdle, m.Player().Status())
		assert.Nil(t, m.Init())
	})
}

func TestModel_Update(t *testing.T) {
	t.Parallel()

	t.Run("view before window size", func(t *testing.T) {
		t.Parallel()
		m, err := bt.New(nil, testConfig())
		require.NoError(t, err)
		assert.Equal(t, "Initializing...", m.View())
	})

	t.Run("window size sets viewport dimensions", func(t *testing.T) {
		t.Parallel()
		m, _ := initModel(t, nil, testConfig())
		assert.Equal(t, 80, m.Viewport.Width)
		assert.Equal(t, 22, m.Viewport.Height)

		m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
		assert.Equal(t, 100, m.Viewport.Width)
		assert.Equal(t, 38, m.Viewport.Height)
	})

	t.Run("ticks reveal text until complete", func(t *testing.T) {
		t.Parallel()
		m, cmd := initModel(t, []bt.Document{{Name: "doc", Content: "hello streaming world"}}, testConfig())
		m = drain(t, m, ticks(cmd))

		assert.Equal(t, reveal.StatusComplete, m.Player().Status())
		assert.Equal(t, "hello streaming world", m.Player().Text())
		view := m.View()
		assert.Contains(t, view, "hello streaming world")
		assert.Contains(t, view, "[complete]")
		assert.Contains(t, view, "100%")
	})

	t.Run("pause and resume with space", func(t *testing.T) {
		t.Parallel()
		m, cmd := initModel(t, []bt.Document{{Name: "doc", Content: "a b c d"}}, testConfig())
		pending := ticks(cmd)
		m, pending = step(t, m, pending)

		m, _ = updateModel(t, m, key("space"))
		assert.Equal(t, reveal.StatusPaused, m.Player().Status())
		assert.Contains(t, m.View(), "[paused]")

		// The tick already in flight is discarded.
		for _, tick := range pending {
			m, _ = updateModel(t, m, tick)
		}
		assert.Equal(t, "a ", m.Player().Text())

		m, cmd = updateModel(t, m, key("space"))
		assert.Equal(t, reveal.StatusRunning, m.Player().Status())
		m = drain(t, m, ticks(cmd))
		assert.Equal(t, "a b c d", m.Player().Text())
	})

	t.Run("stop keeps text and ignores stale ticks", func(t *testing.T) {
		t.Parallel()
		m, cmd := initModel(t, []bt.Document{{Name: "doc", Content: "a b c d"}}, testConfig())
		pending := ticks(cmd)
		m, pending = step(t, m, pending)
		m, pending = step(t, m, pending)

		m, _ = updateModel(t, m, key("s"))
		for _, tick := range pending {
			m, _ = updateModel(t, m, tick)
		}

		assert.Equal(t, reveal.StatusStopped, m.Player().Status())
		assert.Equal(t, "a b ", m.Player().Text())
		assert.Contains(t, m.View(), "[stopped]")
	})

	t.Run("reset clears and enter restarts", func(t *testing.T) {
		t.Parallel()
		m, cmd := initModel(t, []bt.Document{{Name: "doc", Content: "x y"}}, testConfig())
		m = drain(t, m, ticks(cmd))

		m, _ = updateModel(t, m, key("r"))
		assert.Equal(t, reveal.StatusIdle, m.Player().Status())
		assert.Equal(t, "", m.Player().Text())
		assert.NotContains(t, m.Viewport.View(), "x y")

		m, cmd = updateModel(t, m, key("enter"))
		assert.Equal(t, reveal.StatusRunning, m.Player().Status())
		m = drain(t, m, ticks(cmd))
		assert.Equal(t, "x y", m.Player().Text())
	})

	t.Run("finish reveals everything at once", func(t *testing.T) {
		t.Parallel()
		m, _ := initModel(t, []bt.Document{{Name: "doc", Content: "all of it now"}}, testConfig())
		m, _ = updateModel(t, m, key("f"))
		assert.Equal(t, reveal.StatusComplete, m.Player().Status())
		assert.Contains(t, m.View(), "all of it now")
	})

	t.Run("next loads the following document", func(t *testing.T) {
		t.Parallel()
		docs := []bt.Document{{Name: "first", Content: "one"}, {Name: "second", Content: "two"}}
		m, _ := initModel(t, docs, testConfig())
		m, cmd := updateModel(t, m, key("n"))
		assert.Equal(t, 1, m.Current())
		assert.Contains(t, m.View(), "2/2 second")
		m = drain(t, m, ticks(cmd))
		assert.Equal(t, "two", m.Player().Text())

		m, _ = updateModel(t, m, key("n"))
		assert.Equal(t, 0, m.Current(), "wraps around")
	})

	t.Run("auto advance plays documents in order", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.AutoAdvance = true
		docs := []bt.Document{{Name: "first", Content: "one"}, {Name: "second", Content: "two"}}
		m, cmd := initModel(t, docs, cfg)
		m = drain(t, m, ticks(cmd))
		assert.Equal(t, 1, m.Current())
		assert.Equal(t, reveal.StatusComplete, m.Player().Status())
		assert.Equal(t, "two", m.Player().Text())
	})

	t.Run("enter without documents shows error", func(t *testing.T) {
		t.Parallel()
		m, _ := initModel(t, nil, testConfig())
		m, _ = updateModel(t, m, key("enter"))
		assert.ErrorIs(t, m.Err(), reveal.ErrNoContent)
		assert.Contains(t, m.View(), "Error")
	})

	t.Run("q quits", func(t *testing.T) {
		t.Parallel()
		m, _ := initModel(t, nil, testConfig())
		_, cmd := m.Update(key("q"))
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	})

	t.Run("viewport follows the bottom while streaming", func(t *testing.T) {
		t.Parallel()
		var text strings.Builder
		for i := 0; i < 60; i++ {
			text.WriteString("line\n\n")
		}
		text.WriteString("LAST")
		m, cmd := initModel(t, []bt.Document{{Name: "long", Content: text.String()}}, testConfig())
		m = drain(t, m, ticks(cmd))
		assert.True(t, m.Viewport.AtBottom())
		assert.Contains(t, m.Viewport.View(), "LAST")
	})

	t.Run("scrolling up releases follow", func(t *testing.T) {
		t.Parallel()
		var text strings.Builder
		for i := 0; i < 60; i++ {
			text.WriteString("line\n\n")
		}
		m, cmd := initModel(t, []bt.Document{{Name: "long", Content: text.String()}}, testConfig())
		pending := ticks(cmd)
		for i := 0; i < 50; i++ {
			m, pending = step(t, m, pending)
		}
		m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
		assert.Contains(t, m.View(), "scrolled")

		m = drain(t, m, pending)
		assert.False(t, m.Viewport.AtBottom())
	})
}

func TestModel_Program(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Options.ChunkDelay = time.Millisecond
	m, err := bt.New([]bt.Document{{Name: "demo", Content: "streamed through a real program"}}, cfg)
	require.NoError(t, err)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("[complete]"))
	}, teatest.WithDuration(5*time.Second))

	tm.Send(key("q"))
	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := fm.(bt.Model)
	require.True(t, ok)
	assert.Equal(t, "streamed through a real program", final.Player().Text())
}
