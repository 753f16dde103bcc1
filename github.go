package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AsaiYusuke/jsonpath"
	json "github.com/goccy/go-json"

	"github.com/binhook/binhook/internal/metaerr"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	tokenEnvVar       = "GITHUB_TOKEN"
)

// githubToken reads the bearer token for authenticated release queries.
func githubToken(lookup func(key string) (string, bool)) (string, error) {
	token, ok := lookup(tokenEnvVar)
	if !ok || token == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrMissingToken, tokenEnvVar)
	}
	return token, nil
}

// ReleaseClient queries a GitHub-style releases API.
type ReleaseClient struct {
	BaseURL string
	Client  *http.Client
}

func (c *ReleaseClient) baseURL() string {
	if c.BaseURL == "" {
		return defaultAPIBaseURL
	}
	return strings.TrimSuffix(c.BaseURL, "/")
}

func (c *ReleaseClient) client() *http.Client {
	if c.Client == nil {
		return defaultClient()
	}
	return c.Client
}

// ListReleases retrieves the releases of the given repository as a generic
// JSON document, following `Link` header pagination until all pages are
// merged.
func (c *ReleaseClient) ListReleases(ctx context.Context, owner string, repo string) ([]any, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases", c.baseURL(), owner, repo)

	var releases []any
	for url != "" {
		page, next, err := c.listReleasesPage(ctx, url)
		if err != nil {
			return nil, metaerr.WithMetadata(err, "url", url)
		}
		releases = append(releases, page...)
		url = next
	}

	return releases, nil
}

func (c *ReleaseClient) listReleasesPage(ctx context.Context, url string) ([]any, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrReleaseQueryFailed, err)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrReleaseQueryFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, "", metaerr.WithMetadata(
			fmt.Errorf("%w: %d - %s", ErrReleaseQueryFailed, resp.StatusCode, http.StatusText(resp.StatusCode)),
			"body", string(body),
		)
	}

	var page []any
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("%w: decode response body: %v", ErrReleaseQueryFailed, err)
	}

	return page, findNextLink(resp.Header.Values("Link")), nil
}

// FindAssetID locates, within the release carrying the given tag, the asset
// with the given name and returns its numeric identifier. Both lookups are
// exact, case-sensitive matches.
func FindAssetID(releases []any, tag string, assetName string) (int64, error) {
	releasePath := fmt.Sprintf("$[?(@.tag_name == '%s')]", escapeJSONPathLiteral(tag))
	if matches, err := jsonpath.Retrieve(releasePath, any(releases)); err != nil || len(matches) == 0 {
		return 0, fmt.Errorf("%w: no release tagged %q", ErrReleaseNotFound, tag)
	}

	assetPath := fmt.Sprintf("%s.assets[?(@.name == '%s')].id", releasePath, escapeJSONPathLiteral(assetName))
	results, err := jsonpath.Retrieve(assetPath, any(releases))
	if err != nil || len(results) == 0 {
		return 0, fmt.Errorf("%w: release %q has no asset named %q", ErrAssetNotFound, tag, assetName)
	}

	id, ok := results[0].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: asset %q has a non-numeric id", ErrAssetNotFound, assetName)
	}

	return int64(id), nil
}

// OpenAsset requests the raw bytes of a release asset by its identifier.
// The caller owns the returned body.
func (c *ReleaseClient) OpenAsset(ctx context.Context, owner string, repo string, assetID int64) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/assets/%d", c.baseURL(), owner, repo, assetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, metaerr.WithMetadata(fmt.Errorf("%w: %v", ErrDownloadFailed, err), "url", url)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		return nil, metaerr.WithMetadata(
			fmt.Errorf("%w: %d - %s", ErrDownloadFailed, resp.StatusCode, http.StatusText(resp.StatusCode)),
			"url", url, "body", string(body),
		)
	}

	return resp.Body, nil
}

func escapeJSONPathLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func findNextLink(headers []string) string {
	for _, raw := range headers {
		// Header values may be comma delimited sequences.
		for _, header := range strings.Split(raw, ",") {
			var linkURL, linkRel string

			// Link header values have the form: <url>; rel="next"; foo="bar"
			for _, part := range strings.Split(header, ";") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}

				if part[0] == '<' && part[len(part)-1] == '>' {
					linkURL = strings.Trim(part, "<>")
					continue
				}

				keyval := strings.SplitN(part, "=", 2)
				if len(keyval) == 2 && strings.EqualFold(keyval[0], "rel") {
					linkRel = strings.Trim(keyval[1], `"`)
				}
			}

			if strings.EqualFold(linkRel, "next") {
				return linkURL
			}
		}
	}
	return ""
}
