package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cluttrdev/cli"
)

// execute configures the root command and then runs it with the given context.
func execute(ctx context.Context) error {
	cmd := configure()
	opts := []cli.ParseOption{
		cli.WithEnvVarPrefix("BINHOOK"),
	}
	args := os.Args[1:]

	if err := cmd.Parse(args, opts...); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parse arguments: %w", err)
	}

	return cmd.Run(ctx)
}

// configure returns the root command.
func configure() *cli.Command {
	var cfg rootCmd

	fs := flag.NewFlagSet("binhook", flag.ExitOnError)

	cfg.RegisterFlags(fs)

	return &cli.Command{
		Name:       "binhook",
		ShortHelp:  "Install prebuilt release binaries as an npm hook.",
		ShortUsage: "binhook COMMAND [OPTION]...",
		Subcommands: []*cli.Command{
			cli.DefaultVersionCommand(os.Stdout),
			newInstallCmd(),
			newUninstallCmd(),
		},
		Flags: fs,
		Exec:  cfg.Exec,
	}
}

func initLogging(w io.Writer, level string, format string) {
	if w == nil {
		w = os.Stderr
	}

	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := slog.HandlerOptions{
		Level: lvl,
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, &opts)
	default:
		handler = slog.NewTextHandler(w, &opts)
	}

	slog.SetDefault(slog.New(handler))
}

type rootCmd struct {
	ManifestFile string
	APIBaseURL   string

	logLevel  string
	logFormat string
}

func (c *rootCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ManifestFile, "manifest", manifestFileName, "The package manifest file.")
	fs.StringVar(&c.APIBaseURL, "api-url", defaultAPIBaseURL, "The release hosting API base url.")

	fs.StringVar(&c.logLevel, "log-level", "info", "The log level.")
	fs.StringVar(&c.logFormat, "log-format", "text", "The log format ('text' or 'json').")
}

func (c *rootCmd) Exec(ctx context.Context, args []string) error {
	fmt.Fprintln(os.Stderr, "Usage: binhook install|uninstall")
	if len(args) > 0 {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return fmt.Errorf("missing command")
}

func (c *rootCmd) initLogging() {
	initLogging(os.Stderr, c.logLevel, c.logFormat)
}
