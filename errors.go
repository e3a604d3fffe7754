package reveal

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrInvalidOptions indicates playback options failed validation.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrNoContent indicates Start was called before any content was loaded.
	ErrNoContent = errors.New("no content loaded")
)
