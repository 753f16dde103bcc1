package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/semver/v3"
	json "github.com/goccy/go-json"
)

const (
	manifestFileName = "package.json"
	manifestKey      = "goBinary"
)

// manifest is the package metadata file; only the binary distribution
// descriptor is of interest here, the remaining keys belong to the host
// package manager.
type manifest struct {
	GoBinary json.RawMessage `json:"goBinary"`
}

// Distribution describes where the prebuilt binary for a package comes from
// and where it ends up. Loaded once per invocation, immutable after load.
type Distribution struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Version   string `json:"version"`
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	AssetName string `json:"assetName"`
	Auth      bool   `json:"auth"`
}

// InstallOptions is the Distribution combined with the resolved platform:
// normalized version, platform-adjusted binary name and the fully
// substituted asset name. Read-only after construction.
type InstallOptions struct {
	BinName   string
	Path      string
	Version   string
	Owner     string
	Repo      string
	AssetName string
	Auth      bool
}

// LoadDistribution reads the manifest and extracts the binary distribution
// descriptor from it.
func LoadDistribution(r io.Reader) (*Distribution, error) {
	var m manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}

	if len(m.GoBinary) == 0 || bytes.Equal(m.GoBinary, []byte("null")) {
		return nil, fmt.Errorf("%w: missing %q object", ErrInvalidConfiguration, manifestKey)
	}

	var dist Distribution
	if err := json.Unmarshal(m.GoBinary, &dist); err != nil {
		return nil, fmt.Errorf("%w: %q is not an object", ErrInvalidConfiguration, manifestKey)
	}

	return &dist, nil
}

// LoadDistributionFile reads the binary distribution descriptor from the
// manifest file with the given name.
func LoadDistributionFile(name string) (*Distribution, error) {
	file, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, name)
		}
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	return LoadDistribution(file)
}

// requiredFields is the validation order; the first missing field wins.
var requiredFields = []struct {
	name  string
	value func(*Distribution) string
}{
	{"version", func(d *Distribution) string { return d.Version }},
	{"name", func(d *Distribution) string { return d.Name }},
	{"path", func(d *Distribution) string { return d.Path }},
	{"owner", func(d *Distribution) string { return d.Owner }},
	{"repo", func(d *Distribution) string { return d.Repo }},
	{"assetName", func(d *Distribution) string { return d.AssetName }},
}

// ResolveInstallOptions validates the descriptor and normalizes it against
// the target platform: the version loses its leading "v", the binary name
// gains an ".exe" suffix on windows, and the asset name template has all of
// its placeholders substituted.
func ResolveInstallOptions(dist *Distribution, plat Platform) (InstallOptions, error) {
	for _, field := range requiredFields {
		if field.value(dist) == "" {
			return InstallOptions{}, fmt.Errorf("%w: missing field %s.%s", ErrInvalidConfiguration, manifestKey, field.name)
		}
	}

	version := strings.TrimPrefix(dist.Version, "v")
	if _, err := semver.NewVersion(version); err != nil {
		return InstallOptions{}, fmt.Errorf("%w: version %q: %v", ErrInvalidConfiguration, dist.Version, err)
	}

	binName := dist.Name
	if plat.OS == "windows" {
		binName += ".exe"
	}

	assetName, err := renderAssetName(dist.AssetName, plat, version, binName)
	if err != nil {
		return InstallOptions{}, fmt.Errorf("%w: assetName %q: %v", ErrInvalidConfiguration, dist.AssetName, err)
	}

	return InstallOptions{
		BinName:   binName,
		Path:      dist.Path,
		Version:   version,
		Owner:     dist.Owner,
		Repo:      dist.Repo,
		AssetName: assetName,
		Auth:      dist.Auth,
	}, nil
}

// renderAssetName substitutes the {{arch}}, {{platform}}, {{version}} and
// {{bin_name}} placeholders. Rendering an already substituted name is a
// no-op.
func renderAssetName(tmpl string, plat Platform, version string, binName string) (string, error) {
	tpl := template.New("assetName").Funcs(template.FuncMap{
		"arch":     func() string { return plat.Arch },
		"platform": func() string { return plat.OS },
		"version":  func() string { return version },
		"bin_name": func() string { return binName },
	})

	tpl, err := tpl.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var w bytes.Buffer
	if err := tpl.Execute(&w, nil); err != nil {
		return "", err
	}

	return w.String(), nil
}
