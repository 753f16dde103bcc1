package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/cluttrdev/cli"
	"github.com/pterm/pterm"

	"github.com/binhook/binhook/internal/metaerr"
)

func newUninstallCmd() *cli.Command {
	cfg := uninstallCmd{}

	fs := flag.NewFlagSet("binhook uninstall", flag.ExitOnError)

	cfg.RegisterFlags(fs)

	return &cli.Command{
		Name:       "uninstall",
		ShortHelp:  "Remove the previously installed binary.",
		ShortUsage: "binhook uninstall [OPTION]...",
		Flags:      fs,
		Exec:       cfg.Exec,
	}
}

type uninstallCmd struct {
	rootCmd
}

func (c *uninstallCmd) RegisterFlags(fs *flag.FlagSet) {
	c.rootCmd.RegisterFlags(fs)
}

func (c *uninstallCmd) Exec(ctx context.Context, args []string) (err error) {
	c.initLogging()

	defer func() {
		if err != nil {
			slog.With("error", err).
				With(metaerr.GetMetadata(err)...).
				Error("failed to uninstall binary")
		}
	}()

	opts, err := resolveOptions(c.ManifestFile)
	if err != nil {
		return err
	}

	resolver := BinPathResolver{}
	installDir, err := resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	// Deletion is best-effort: a missing binary still counts as uninstalled.
	RemoveBinary(installDir, opts.BinName)

	pterm.Success.Println("Uninstalled ", opts.BinName)
	slog.Info("uninstalled binary", "name", opts.BinName, "dir", installDir)
	return nil
}
