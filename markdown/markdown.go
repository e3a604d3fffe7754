// Package markdown renders partially revealed markdown to ANSI-styled
// terminal output using goldmark for parsing and lipgloss for styling.
package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/reveal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, headings and list items wrap to width; code is printed
// verbatim behind a gutter.
func Render(source string, width int, theme reveal.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	r := renderer{source: src, width: width, styles: newStyles(theme)}
	r.blocks(doc, "")
	return strings.TrimRight(r.buf.String(), "\n")
}

type styles struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
}

func newStyles(theme reveal.Theme) styles {
	return styles{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		heading:   lipgloss.NewStyle().Foreground(color(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(color(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

type renderer struct {
	source []byte
	width  int
	styles styles
	buf    bytes.Buffer
}

// blocks renders the children of node, each line prefixed with prefix.
func (r *renderer) blocks(node ast.Node, prefix string) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, prefix)
		if c.NextSibling() != nil {
			r.buf.WriteString(strings.TrimRight(prefix, " ") + "\n")
		}
	}
}

func (r *renderer) block(node ast.Node, prefix string) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		r.wrapped(r.inline(n), prefix, prefix)
	case *ast.Heading:
		r.wrapped(r.styles.heading.Render(r.inline(n)), prefix, prefix)
	case *ast.FencedCodeBlock:
		if lang := n.Language(r.source); len(lang) > 0 {
			r.buf.WriteString(prefix + r.styles.muted.Render(string(lang)) + "\n")
		}
		r.code(n, prefix)
	case *ast.CodeBlock:
		r.code(n, prefix)
	case *ast.List:
		r.list(n, prefix)
	case *ast.Blockquote:
		r.blocks(n, prefix+r.styles.muted.Render("│")+" ")
	case *ast.ThematicBreak:
		r.buf.WriteString(prefix + r.styles.muted.Render(strings.Repeat("─", min(r.width, 40))) + "\n")
	case *ast.HTMLBlock:
		r.code(n, prefix)
	default:
		r.blocks(n, prefix)
	}
}

func (r *renderer) code(node ast.Node, prefix string) {
	gutter := prefix + r.styles.muted.Render("│") + " "
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		r.buf.WriteString(gutter + strings.TrimRight(string(seg.Value(r.source)), "\n") + "\n")
	}
}

func (r *renderer) list(n *ast.List, prefix string) {
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "- "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		pad := strings.Repeat(" ", len(marker))
		first := true
		for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
			lead := prefix + pad
			if first {
				lead = prefix + marker
			}
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				r.wrapped(r.inline(in), lead, prefix+pad)
			case *ast.List:
				r.list(in, prefix+pad)
			default:
				r.block(in, prefix+pad)
			}
			first = false
		}
	}
}

// wrapped writes s wrapped to the remaining width. The first line gets
// lead, the rest get cont; both must have the same display width.
func (r *renderer) wrapped(s, lead, cont string) {
	w := max(r.width-lipgloss.Width(lead), 10)
	lines := strings.Split(lipgloss.NewStyle().Width(w).Render(s), "\n")
	for i, line := range lines {
		p := cont
		if i == 0 {
			p = lead
		}
		r.buf.WriteString(p + strings.TrimRight(line, " ") + "\n")
	}
}

func (r *renderer) inline(node ast.Node) string {
	var b strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(c, &b)
	}
	return b.String()
}

func (r *renderer) span(node ast.Node, b *strings.Builder) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(r.source))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		if n.Level == 1 {
			b.WriteString(r.styles.italic.Render(r.inline(n)))
		} else {
			b.WriteString(r.styles.bold.Render(r.inline(n)))
		}
	case *ast.CodeSpan:
		b.WriteString(r.styles.bold.Render(r.inline(n)))
	case *ast.Link:
		b.WriteString(r.styles.underline.Render(r.inline(n)))
		b.WriteString(" " + r.styles.muted.Render("("+string(n.Destination)+")"))
	case *ast.AutoLink:
		b.WriteString(r.styles.underline.Render(string(n.URL(r.source))))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.source))
		}
	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(c, b)
		}
	}
}
