package config

import "github.com/urfave/cli/v3"

// defaultListFile matches the file name the batch has always operated on
const defaultListFile = "drive.txt"

// Migrate holds batch run configuration
type Migrate struct {
	ListFile        string
	TempDir         string
	SlackWebhookURL string
}

// Flags returns CLI flags for migration configuration
func (c *Migrate) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "URL list file to migrate and rewrite in place",
			Destination: &c.ListFile,
			Sources:     cli.EnvVars("FERRY_LIST_FILE"),
		},
		&cli.StringFlag{
			Name:        "temp-dir",
			Usage:       "Parent directory for downloaded artifacts (default: system temp)",
			Destination: &c.TempDir,
			Sources:     cli.EnvVars("FERRY_TEMP_DIR"),
		},
		&cli.StringFlag{
			Name:        "slack-webhook",
			Usage:       "Slack incoming webhook URL for the run summary",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("FERRY_SLACK_WEBHOOK"),
		},
	}
}

// ApplyDefaults fills values left empty by flags, env and config file
func (c *Migrate) ApplyDefaults() {
	if c.ListFile == "" {
		c.ListFile = defaultListFile
	}
}
