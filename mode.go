package reveal

import "fmt"

// Mode selects how source text is split into reveal units.
type Mode string

const (
	ModeCharacter Mode = "character"
	ModeWord      Mode = "word"
)

// ParseMode converts a user-supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeCharacter, ModeWord:
		return m, nil
	default:
		return "", fmt.Errorf("unknown stream mode %q: %w", s, ErrInvalidOptions)
	}
}
