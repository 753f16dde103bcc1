package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"runtime"

	"github.com/cluttrdev/cli"
	"github.com/pterm/pterm"

	"github.com/binhook/binhook/internal/metaerr"
)

func newInstallCmd() *cli.Command {
	cfg := installCmd{}

	fs := flag.NewFlagSet("binhook install", flag.ExitOnError)

	cfg.RegisterFlags(fs)

	return &cli.Command{
		Name:       "install",
		ShortHelp:  "Fetch the package's prebuilt binary and place it in npm's bin directory.",
		ShortUsage: "binhook install [OPTION]...",
		Flags:      fs,
		Exec:       cfg.Exec,
	}
}

type installCmd struct {
	rootCmd
}

func (c *installCmd) RegisterFlags(fs *flag.FlagSet) {
	c.rootCmd.RegisterFlags(fs)
}

func (c *installCmd) Exec(ctx context.Context, args []string) (err error) {
	c.initLogging()

	defer func() {
		if err != nil {
			slog.With("error", err).
				With(metaerr.GetMetadata(err)...).
				Error("failed to install binary")
		}
	}()

	opts, err := resolveOptions(c.ManifestFile)
	if err != nil {
		return err
	}

	client, err := c.releaseClient(opts.Auth)
	if err != nil {
		return err
	}

	tag := "v" + opts.Version

	spinner, _ := pterm.DefaultSpinner.Start("Resolving release asset ", opts.AssetName)
	releases, err := client.ListReleases(ctx, opts.Owner, opts.Repo)
	if err != nil {
		spinner.Fail()
		return err
	}
	assetID, err := FindAssetID(releases, tag, opts.AssetName)
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()

	spinner, _ = pterm.DefaultSpinner.Start("Downloading ", opts.AssetName)
	if err := FetchAndUnpack(ctx, client, opts.Owner, opts.Repo, assetID, opts.Path); err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()

	resolver := BinPathResolver{}
	installDir, err := resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	if err := PlaceBinary(opts.Path, opts.BinName, installDir); err != nil {
		return metaerr.WithMetadata(err, "installDir", installDir)
	}

	slog.Info("installed binary", "name", opts.BinName, "version", opts.Version, "dir", installDir)
	return nil
}

// resolveOptions derives the install options for the current invocation:
// host platform, loaded manifest, validated and normalized descriptor.
func resolveOptions(manifestFile string) (InstallOptions, error) {
	plat, err := ResolvePlatform(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return InstallOptions{}, err
	}

	dist, err := LoadDistributionFile(manifestFile)
	if err != nil {
		return InstallOptions{}, err
	}

	return ResolveInstallOptions(dist, plat)
}

func (c *rootCmd) releaseClient(auth bool) (*ReleaseClient, error) {
	httpClient := defaultClient()
	if auth {
		token, err := githubToken(os.LookupEnv)
		if err != nil {
			return nil, err
		}
		httpClient = newAuthedClient(token)
	}
	return &ReleaseClient{BaseURL: c.APIBaseURL, Client: httpClient}, nil
}
