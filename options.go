package reveal

import (
	"fmt"
	"time"
)

// Options controls pacing and chunking for one stream.
type Options struct {
	ChunkDelay time.Duration // Wait before each chunk; 0 = next event-loop turn.
	ChunkSize  int           // Graphemes per chunk in character mode. Ignored in word mode.
	Mode       Mode
	AutoStart  bool // Play starts immediately; otherwise it only loads.
}

// DefaultOptions returns 50ms per chunk, one grapheme per chunk, character
// mode, autostart on.
func DefaultOptions() Options {
	return Options{
		ChunkDelay: 50 * time.Millisecond,
		ChunkSize:  1,
		Mode:       ModeCharacter,
		AutoStart:  true,
	}
}

// Validate checks that o can drive a stream.
func (o Options) Validate() error {
	if o.ChunkDelay < 0 {
		return fmt.Errorf("chunk delay must be non-negative, got %s: %w", o.ChunkDelay, ErrInvalidOptions)
	}
	if o.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be at least 1, got %d: %w", o.ChunkSize, ErrInvalidOptions)
	}
	switch o.Mode {
	case ModeCharacter, ModeWord:
	default:
		return fmt.Errorf("unknown stream mode %q: %w", o.Mode, ErrInvalidOptions)
	}
	return nil
}
