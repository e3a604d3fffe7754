package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	bt "github.com/fwojciec/reveal/bubbletea"
)

// collectDocs reads the named files, then every file matching pattern
// (doublestar syntax, relative to the working directory), in that order.
// "-" reads stdin. With neither, stdin is read when it is not a terminal.
func collectDocs(args []string, pattern string, stdin io.Reader, stdinIsTTY bool) ([]bt.Document, error) {
	var docs []bt.Document
	for _, name := range args {
		doc, err := readDoc(name, stdin)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if pattern != "" {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, name := range matches {
			doc, err := readDoc(name, stdin)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	if len(args) == 0 && pattern == "" && !stdinIsTTY {
		doc, err := readDoc("-", stdin)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("nothing to play: pass files, --glob, or pipe text on stdin")
	}
	return docs, nil
}

func readDoc(name string, stdin io.Reader) (bt.Document, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return bt.Document{}, fmt.Errorf("read stdin: %w", err)
		}
		return bt.Document{Name: "stdin", Content: string(data)}, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return bt.Document{}, fmt.Errorf("read %s: %w", name, err)
	}
	return bt.Document{Name: filepath.Base(name), Content: string(data)}, nil
}
