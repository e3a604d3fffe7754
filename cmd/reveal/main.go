// Command reveal replays text files in the terminal as if they were being
// generated live.
//
// Usage:
//
//	reveal [files...] [flags]
//	cat answer.md | reveal --mode word
//	reveal --glob 'docs/**/*.md' --auto-advance
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fwojciec/reveal"
	bt "github.com/fwojciec/reveal/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "reveal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reveal [files...]",
		Short:         "Replay text with simulated streaming",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	fs := cmd.Flags()
	fs.String("delay", "", "Delay between chunks, e.g. 30ms or 30 (default from config, 50ms)")
	fs.Int("chunk-size", 0, "Graphemes per chunk in character mode")
	fs.String("mode", "", "Chunking mode: character or word")
	fs.Bool("no-autostart", false, "Load the first document without starting it")
	fs.Bool("auto-advance", false, "Play the next document when one completes")
	fs.Bool("plain", false, "Write to stdout without the TUI")
	fs.String("glob", "", "Also play files matching this pattern (supports **)")
	fs.String("config", "", "Config file (default ~/.config/reveal/config.yaml)")
	fs.String("log-file", "", "Write logs to this file")
	fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	logFile, _ := fs.GetString("log-file")
	log, closeLog, err := newLogger(logFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	pattern, _ := fs.GetString("glob")
	docs, err := collectDocs(args, pattern, cmd.InOrStdin(), isatty.IsTerminal(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	log.Info().Int("docs", len(docs)).Str("mode", cfg.Mode).Dur("delay", cfg.Delay).Msg("starting")

	opts := cfg.Options()
	ctx := cmd.Context()
	if plain, _ := fs.GetBool("plain"); plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return playPlain(ctx, cmd.OutOrStdout(), docs, opts, log)
	}

	m, err := bt.New(docs, bt.Config{
		Options:     opts,
		Theme:       reveal.DefaultTheme(),
		AutoAdvance: cfg.AutoAdvance,
		Logger:      &log,
	})
	if err != nil {
		return err
	}
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// resolveConfig loads the config file and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	fs := cmd.Flags()
	path, _ := fs.GetString("config")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return Config{}, err
	}

	if fs.Changed("delay") {
		raw, _ := fs.GetString("delay")
		d, err := parseDelay(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.Delay = d
	}
	if fs.Changed("chunk-size") {
		cfg.ChunkSize, _ = fs.GetInt("chunk-size")
	}
	if fs.Changed("mode") {
		cfg.Mode, _ = fs.GetString("mode")
	}
	if fs.Changed("no-autostart") {
		off, _ := fs.GetBool("no-autostart")
		autoStart := !off
		cfg.AutoStart = &autoStart
	}
	if fs.Changed("auto-advance") {
		cfg.AutoAdvance, _ = fs.GetBool("auto-advance")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
