package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds target repository configuration
type GitHub struct {
	Token string
	Repo  string // owner/repo
}

// Flags returns CLI flags for GitHub configuration. The token is not
// validated here: a missing token surfaces as an authentication failure on
// the first API call.
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN", "FERRY_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Target repository as owner/repo",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("REPO_NAME", "FERRY_REPO"),
		},
	}
}

// OwnerRepo splits the owner/repo identifier. This is the only credential
// check done up front: without a splittable identifier no request path can
// be built at all.
func (c *GitHub) OwnerRepo() (string, string, error) {
	parts := strings.SplitN(c.Repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", goerr.New("repository must be owner/repo", goerr.V("repo", c.Repo))
	}
	return parts[0], parts[1], nil
}
