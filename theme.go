package reveal

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values. A negative
// index means no color.
type Theme struct {
	Cursor   int // Caret shown after the revealed text while streaming
	Running  int // Status badge while running
	Paused   int // Status badge while paused
	Stopped  int // Status badge after stop
	Complete int // Status badge after completion
	Error    int // Error messages
	Muted    int // Help line, code gutters, link targets
	Accent   int // Headings
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Cursor:   6,
		Running:  2,
		Paused:   3,
		Stopped:  1,
		Complete: 4,
		Error:    1,
		Muted:    8,
		Accent:   5,
	}
}
