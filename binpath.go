package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const npmPrefixEnvVar = "npm_config_prefix"

// BinPathResolver determines the directory npm expects locally installed
// executables in. Its collaborators are injectable so that strategies can be
// tested without a real npm installation.
type BinPathResolver struct {
	// RunCommand executes a subprocess and returns its standard output.
	// Defaults to os/exec.
	RunCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookupEnv reads an environment variable. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	// WorkDir is the directory the fallback path is relative to.
	// Defaults to the process working directory.
	WorkDir string
}

// Resolve tries each strategy in order and returns the first non-empty
// directory path: the `npm bin` subprocess, then the npm prefix environment
// variable, then the conventional node_modules/.bin fallback.
func (r *BinPathResolver) Resolve(ctx context.Context) (string, error) {
	strategies := []func(ctx context.Context) (string, error){
		r.fromCommand,
		r.fromEnv,
		r.fromWorkDir,
	}

	for _, strategy := range strategies {
		dir, err := strategy(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInstallPathResolution, err)
		}
		if dir != "" {
			return dir, nil
		}
	}

	return "", fmt.Errorf("%w: no strategy yielded a directory", ErrInstallPathResolution)
}

// fromCommand asks npm itself. A missing or failing npm is not an error,
// the next strategy takes over.
func (r *BinPathResolver) fromCommand(ctx context.Context) (string, error) {
	run := r.RunCommand
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		}
	}

	out, err := run(ctx, "npm", "bin")
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *BinPathResolver) fromEnv(_ context.Context) (string, error) {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	prefix, ok := lookup(npmPrefixEnvVar)
	if !ok || prefix == "" {
		return "", nil
	}
	return filepath.Join(prefix, "bin"), nil
}

func (r *BinPathResolver) fromWorkDir(_ context.Context) (string, error) {
	dir := r.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	return filepath.Join(dir, "node_modules", ".bin"), nil
}
