package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/reveal"
)

// parseDelay accepts a Go duration ("30ms") or a bare number of
// milliseconds ("30").
func parseDelay(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("delay %q: %w", s, reveal.ErrInvalidOptions)
	}
	return d, nil
}
