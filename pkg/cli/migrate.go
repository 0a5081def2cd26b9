package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/ferry/pkg/cli/config"
	"github.com/m-mizutani/ferry/pkg/domain/model"
	"github.com/m-mizutani/ferry/pkg/infra/drive"
	githubinfra "github.com/m-mizutani/ferry/pkg/infra/github"
	"github.com/m-mizutani/ferry/pkg/infra/notify"
	"github.com/m-mizutani/ferry/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func cmdMigrate() *cli.Command {
	var (
		githubCfg  config.GitHub
		migrateCfg config.Migrate
		fileCfg    config.File
	)

	flags := append(githubCfg.Flags(), migrateCfg.Flags()...)
	flags = append(flags, fileCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Download Drive links from the list file and rewrite it with GitHub asset URLs",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := fileCfg.Apply(&githubCfg, &migrateCfg); err != nil {
				return err
			}
			migrateCfg.ApplyDefaults()

			owner, repo, err := githubCfg.OwnerRepo()
			if err != nil {
				return err
			}

			logger.Info("Starting ferry migration",
				"owner", owner,
				"repo", repo,
				"file", migrateCfg.ListFile,
			)

			ghClient, err := githubinfra.New(githubCfg.Token, owner, repo)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			var driveOpts []drive.Option
			if term.IsTerminal(int(os.Stdout.Fd())) {
				driveOpts = append(driveOpts, drive.WithProgress(printProgress))
			}
			driveClient, err := drive.New(ctx, driveOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create Drive client")
			}

			var ucOpts []usecase.MigrateOption
			if migrateCfg.TempDir != "" {
				ucOpts = append(ucOpts, usecase.WithTempDir(migrateCfg.TempDir))
			}
			uc := usecase.NewMigrate(driveClient, ghClient, ucOpts...)

			result, err := uc.Migrate(ctx, migrateCfg.ListFile)
			if err != nil {
				return err
			}

			printSummary(result)

			if notifier := notify.NewSlack(migrateCfg.SlackWebhookURL); notifier != nil {
				if err := notifier.NotifyResult(ctx, result); err != nil {
					logger.Warn("failed to notify slack", "error", err)
				}
			}

			return nil
		},
	}
}

func printProgress(downloaded, total int64) {
	const mb = 1024 * 1024
	fmt.Printf("\rDownload progress: %.1f%% (%.1f/%.1f MB)",
		float64(downloaded)/float64(total)*100,
		float64(downloaded)/mb,
		float64(total)/mb,
	)
	if downloaded >= total {
		fmt.Println()
	}
}

func printSummary(result *model.MigrationResult) {
	ok := color.New(color.FgGreen).SprintFunc()
	ng := color.New(color.FgRed).SprintFunc()

	fmt.Printf("%s migrated: %d, kept: %d\n", ok("✓"), result.Migrated, result.Kept)
	if result.Dropped > 0 {
		fmt.Printf("%s dropped: %d\n", ng("✗"), result.Dropped)
	}
	fmt.Printf("list now contains %d GitHub URLs\n", len(result.URLs))
}
