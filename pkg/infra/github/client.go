// Package github wraps the GitHub Releases API for the target repository.
package github

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/ferry/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// uploadTimeout bounds the asset upload, the only request in the system with
// an explicit deadline. Release assets can be hundreds of megabytes.
const uploadTimeout = 10 * time.Minute

// Client manages releases and assets of a single owner/repo
type Client struct {
	api    *github.Client
	upload *github.Client
	owner  string
	repo   string

	baseURL   string
	uploadURL string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API and upload endpoints (tests)
func WithBaseURL(apiURL, uploadURL string) Option {
	return func(c *Client) {
		c.baseURL = apiURL
		c.uploadURL = uploadURL
	}
}

// New creates a release client authenticated with a personal access token.
// An empty token is not rejected here: it surfaces as 401s downstream, which
// is where missing credentials are reported.
func New(token, owner, repo string, opts ...Option) (*Client, error) {
	c := &Client{
		api:    github.NewClient(nil).WithAuthToken(token),
		upload: github.NewClient(&http.Client{Timeout: uploadTimeout}).WithAuthToken(token),
		owner:  owner,
		repo:   repo,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL != "" {
		base, err := parseBaseURL(c.baseURL)
		if err != nil {
			return nil, err
		}
		up, err := parseBaseURL(c.uploadURL)
		if err != nil {
			return nil, err
		}
		for _, gh := range []*github.Client{c.api, c.upload} {
			gh.BaseURL = base
			gh.UploadURL = up
		}
	}

	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid base URL", goerr.V("url", raw))
	}
	return u, nil
}

// ListReleases returns every release of the repository. Failure is silent:
// the caller gets an empty slice and collision avoidance proceeds as if no
// tags existed, matching the migration policy that only per-entry steps fail.
func (c *Client) ListReleases(ctx context.Context) []*model.Release {
	logger := ctxlog.From(ctx)

	var all []*model.Release
	opt := &github.ListOptions{PerPage: 100}
	for {
		releases, resp, err := c.api.Repositories.ListReleases(ctx, c.owner, c.repo, opt)
		if err != nil {
			logger.Warn("failed to list releases, treating as empty",
				"owner", c.owner,
				"repo", c.repo,
				"error", err,
			)
			return nil
		}
		for _, r := range releases {
			all = append(all, toRelease(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return all
}

// CreateRelease creates a non-draft, non-prerelease release whose name equals
// its tag.
func (c *Client) CreateRelease(ctx context.Context, tag string) (*model.Release, error) {
	body := "Auto-uploaded video - " + time.Now().Format("2006-01-02 15:04:05")

	created, _, err := c.api.Repositories.CreateRelease(ctx, c.owner, c.repo, &github.RepositoryRelease{
		TagName:    github.Ptr(tag),
		Name:       github.Ptr(tag),
		Body:       github.Ptr(body),
		Draft:      github.Ptr(false),
		Prerelease: github.Ptr(false),
	})
	if err != nil {
		// go-github folds the non-201 response body into the error
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.V("owner", c.owner),
			goerr.V("repo", c.repo),
			goerr.V("tag", tag),
		)
	}

	return toRelease(created), nil
}

// UploadAsset streams the file at path to the release as a generic binary
// asset and returns its public download URL.
func (c *Client) UploadAsset(ctx context.Context, release *model.Release, path string) (*model.Asset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open asset file", goerr.V("path", path))
	}
	defer file.Close()

	asset, _, err := c.upload.Repositories.UploadReleaseAsset(ctx, c.owner, c.repo, release.ID, &github.UploadOptions{
		Name:      filepath.Base(path),
		MediaType: "application/octet-stream",
	}, file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload asset",
			goerr.V("tag", release.TagName),
			goerr.V("path", path),
		)
	}

	return &model.Asset{
		Name:               asset.GetName(),
		BrowserDownloadURL: asset.GetBrowserDownloadURL(),
	}, nil
}

func toRelease(r *github.RepositoryRelease) *model.Release {
	return &model.Release{
		ID:      r.GetID(),
		TagName: r.GetTagName(),
		Name:    r.GetName(),
		HTMLURL: r.GetHTMLURL(),
	}
}
