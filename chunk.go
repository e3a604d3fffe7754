package reveal

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Chunk splits text into ordered, non-empty reveal units whose concatenation
// is exactly text. Empty text yields no chunks.
//
// In character mode each chunk holds size grapheme clusters (the last may
// hold fewer); a cluster such as an emoji ZWJ sequence is never split. In
// word mode each chunk is a run of non-whitespace plus the whitespace that
// follows it, and size is ignored.
func Chunk(text string, mode Mode, size int) []string {
	if text == "" {
		return nil
	}
	if mode == ModeWord {
		return chunkWords(text)
	}
	return chunkGraphemes(text, max(size, 1))
}

func chunkGraphemes(text string, size int) []string {
	var chunks []string
	start, n := 0, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		n++
		if n == size {
			_, end := g.Positions()
			chunks = append(chunks, text[start:end])
			start, n = end, 0
		}
	}
	if start < len(text) {
		chunks = append(chunks, text[start:])
	}
	return chunks
}

func chunkWords(text string) []string {
	var chunks []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		// A word begins after whitespace: close the previous unit there.
		if !space && inSpace && i > start {
			chunks = append(chunks, text[start:i])
			start = i
		}
		inSpace = space
	}
	return append(chunks, text[start:])
}
