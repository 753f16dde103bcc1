package main

import "errors"

// Every failure mode is terminal for the current invocation; callers wrap
// these with %w and report a single line before exiting non-zero.
var (
	ErrUnsupportedPlatform      = errors.New("unsupported platform")
	ErrManifestNotFound         = errors.New("manifest not found")
	ErrManifestParse            = errors.New("manifest parse error")
	ErrInvalidConfiguration     = errors.New("invalid configuration")
	ErrMissingToken             = errors.New("missing auth token")
	ErrReleaseQueryFailed       = errors.New("release query failed")
	ErrReleaseNotFound          = errors.New("release not found")
	ErrAssetNotFound            = errors.New("asset not found")
	ErrDownloadFailed           = errors.New("download failed")
	ErrBinaryMissingFromArchive = errors.New("binary missing from archive")
	ErrInstallPathResolution    = errors.New("install path resolution failed")
)
