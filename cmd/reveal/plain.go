package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/reveal"
	bt "github.com/fwojciec/reveal/bubbletea"
	"github.com/fwojciec/reveal/loop"
	"github.com/rs/zerolog"
)

// playPlain writes each document to w chunk by chunk, paced by a loop.Loop.
// Cancelling ctx stops the current document and returns ctx.Err().
func playPlain(ctx context.Context, w io.Writer, docs []bt.Document, opts reveal.Options, log zerolog.Logger) error {
	l := loop.New()
	defer l.Close()

	opts.AutoStart = true
	for i, doc := range docs {
		done := make(chan reveal.Event, 1)
		var (
			p       *reveal.Player
			playErr error
		)
		err := l.Do(ctx, func() {
			p = reveal.NewPlayer(l, reveal.WithLogger(log.With().Str("doc", doc.Name).Logger()))
			p.Subscribe(func(e reveal.Event) {
				switch e := e.(type) {
				case reveal.EventChunkAppended:
					fmt.Fprint(w, e.Chunk)
				case reveal.EventComplete, reveal.EventStopped:
					done <- e
				}
			})
			playErr = p.Play(doc.Content, opts)
		})
		if err != nil {
			return err
		}
		if playErr != nil {
			return fmt.Errorf("play %s: %w", doc.Name, playErr)
		}

		select {
		case <-done:
		case <-ctx.Done():
			_ = l.Do(context.Background(), p.Stop)
			fmt.Fprintln(w)
			return ctx.Err()
		}
		if i < len(docs)-1 {
			fmt.Fprint(w, "\n\n")
		}
	}
	fmt.Fprintln(w)
	return nil
}
