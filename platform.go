package main

import (
	"fmt"
)

// Platform names the target the release publisher builds assets for.
type Platform struct {
	OS   string
	Arch string
}

// Asset names follow the goreleaser convention, so the lookup tables mostly
// map identifiers onto themselves. They double as the allowlist of targets
// that prebuilt binaries are published for.
var (
	archNames = map[string]string{
		"386":   "386",
		"amd64": "amd64",
		"arm":   "arm",
		"arm64": "arm64",
	}

	osNames = map[string]string{
		"linux":   "linux",
		"darwin":  "darwin",
		"windows": "windows",
		"freebsd": "freebsd",
	}
)

// ResolvePlatform maps the given GOOS/GOARCH identifiers onto the publisher's
// naming convention. Unknown identifiers are rejected.
func ResolvePlatform(goos string, goarch string) (Platform, error) {
	osName, ok := osNames[goos]
	if !ok {
		return Platform{}, fmt.Errorf("%w: operating system %q", ErrUnsupportedPlatform, goos)
	}
	archName, ok := archNames[goarch]
	if !ok {
		return Platform{}, fmt.Errorf("%w: architecture %q", ErrUnsupportedPlatform, goarch)
	}
	return Platform{OS: osName, Arch: archName}, nil
}
