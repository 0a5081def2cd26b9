package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds the optional TOML config file location
type File struct {
	Path string
}

// Flags returns CLI flags for the config file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML config file (flags and environment take precedence)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("FERRY_CONFIG"),
		},
	}
}

type fileContent struct {
	GitHub struct {
		Token string `toml:"token"`
		Repo  string `toml:"repo"`
	} `toml:"github"`
	Migrate struct {
		ListFile        string `toml:"file"`
		TempDir         string `toml:"temp_dir"`
		SlackWebhookURL string `toml:"slack_webhook"`
	} `toml:"migrate"`
}

// Apply overlays values from the config file onto fields that flags and
// environment left empty. No file configured is not an error.
func (c *File) Apply(gh *GitHub, mig *Migrate) error {
	if c.Path == "" {
		return nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var content fileContent
	if err := toml.Unmarshal(data, &content); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}

	setIfEmpty(&gh.Token, content.GitHub.Token)
	setIfEmpty(&gh.Repo, content.GitHub.Repo)
	setIfEmpty(&mig.ListFile, content.Migrate.ListFile)
	setIfEmpty(&mig.TempDir, content.Migrate.TempDir)
	setIfEmpty(&mig.SlackWebhookURL, content.Migrate.SlackWebhookURL)

	return nil
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
