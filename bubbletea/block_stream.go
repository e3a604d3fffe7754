package bubbletea

import (
	"strings"

	"github.com/fwojciec/reveal"
	"github.com/fwojciec/reveal/markdown"
)

const caret = "▍"

// StreamBlock renders revealed text with markdown formatting.
// Finalized paragraphs (separated by double newline) are rendered once per
// width and cached; only the trailing paragraph is re-rendered as chunks
// arrive.
type StreamBlock struct {
	content   strings.Builder
	theme     reveal.Theme
	styles    Styles
	streaming bool

	// finalizedRaw is the stable prefix ending at the last double newline
	// outside a code fence.
	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewStreamBlock creates an empty block.
func NewStreamBlock(theme reveal.Theme, styles Styles) *StreamBlock {
	return &StreamBlock{
		theme:            theme,
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
}

// Append adds a revealed chunk.
func (b *StreamBlock) Append(chunk string) {
	b.content.WriteString(chunk)
	b.promoteFinalized()
}

// Reset clears the block.
func (b *StreamBlock) Reset() {
	b.content.Reset()
	b.finalizedRaw = ""
	clear(b.finalizedByWidth)
}

// SetStreaming toggles the trailing caret.
func (b *StreamBlock) SetStreaming(on bool) { b.streaming = on }

// Text returns the raw text appended so far.
func (b *StreamBlock) Text() string { return b.content.String() }

// View renders the block at width.
func (b *StreamBlock) View(width int) string {
	out := b.render(width)
	if b.streaming {
		out += b.styles.Cursor.Render(caret)
	}
	return out
}

func (b *StreamBlock) render(width int) string {
	finalized := b.renderFinalized(width)
	trailing := b.trailingRaw()
	if strings.Count(trailing, "```")%2 == 1 {
		// Close the fence for display only.
		trailing += "\n```"
	}
	if trailing == "" {
		return finalized
	}
	rendered := markdown.Render(trailing, width, b.theme)
	if strings.TrimSpace(rendered) == "" {
		return finalized
	}
	if finalized == "" {
		return rendered
	}
	return strings.TrimRight(finalized, "\n") + "\n\n" + strings.TrimLeft(rendered, "\n")
}

// promoteFinalized moves the finalized boundary to the last "\n\n" whose
// prefix has every code fence closed.
func (b *StreamBlock) promoteFinalized() {
	raw := b.content.String()
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= len(b.finalizedRaw) {
			return
		}
		candidate := raw[:idx]
		if strings.Count(candidate, "```")%2 == 0 {
			b.finalizedRaw = candidate
			clear(b.finalizedByWidth)
			return
		}
		end = idx
	}
}

func (b *StreamBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := markdown.Render(b.finalizedRaw, width, b.theme)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *StreamBlock) trailingRaw() string {
	raw := b.content.String()
	if b.finalizedRaw == "" {
		return raw
	}
	return strings.TrimPrefix(raw, b.finalizedRaw+"\n\n")
}
