package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/ferry/pkg/domain/interfaces"
	"github.com/m-mizutani/ferry/pkg/domain/model"
	"github.com/m-mizutani/ferry/pkg/utils/safename"
	"github.com/m-mizutani/goerr/v2"
)

const tagSuffixRetryLimit = 10

type migrateUseCase struct {
	drive interfaces.DriveClient
	gh    interfaces.GitHubClient

	tempDir   string
	newSuffix func() string
	now       func() time.Time
}

// MigrateOption configures the migrate use case
type MigrateOption func(*migrateUseCase)

// WithTempDir sets the parent directory for downloaded artifacts
func WithTempDir(dir string) MigrateOption {
	return func(uc *migrateUseCase) {
		uc.tempDir = dir
	}
}

// WithSuffixFunc replaces the random tag suffix generator (tests)
func WithSuffixFunc(fn func() string) MigrateOption {
	return func(uc *migrateUseCase) {
		uc.newSuffix = fn
	}
}

// WithClock replaces the clock used for the timestamp tag fallback (tests)
func WithClock(fn func() time.Time) MigrateOption {
	return func(uc *migrateUseCase) {
		uc.now = fn
	}
}

// NewMigrate creates a new instance of MigrateUseCase
func NewMigrate(driveClient interfaces.DriveClient, githubClient interfaces.GitHubClient, opts ...MigrateOption) interfaces.MigrateUseCase {
	uc := &migrateUseCase{
		drive:     driveClient,
		gh:        githubClient,
		tempDir:   os.TempDir(),
		newSuffix: func() string { return safename.RandomSuffix(6) },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Migrate reads the list file, processes every line in order, and rewrites
// the file with exactly the surviving GitHub URLs. Only an unreadable input
// file fails the whole run; every per-entry failure drops that entry and
// moves on.
func (uc *migrateUseCase) Migrate(ctx context.Context, listPath string) (*model.MigrationResult, error) {
	logger := ctxlog.From(ctx)

	data, err := os.ReadFile(listPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read list file", goerr.V("path", listPath))
	}

	runID := uuid.NewString()
	lines := strings.Split(string(data), "\n")
	logger.Info("starting migration",
		"run_id", runID,
		"path", listPath,
		"lines", len(lines),
	)

	workDir, err := os.MkdirTemp(uc.tempDir, "ferry-videos-*")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create work directory", goerr.V("temp_dir", uc.tempDir))
	}
	defer os.RemoveAll(workDir)

	result := &model.MigrationResult{}
	for i, raw := range lines {
		entry := model.ClassifyEntry(i+1, raw)

		switch entry.Kind {
		case model.EntryBlank:
			continue

		case model.EntryGitHub:
			logger.Info("already a GitHub URL, keeping", "line", entry.Line)
			result.URLs = append(result.URLs, entry.URL)
			result.Kept++

		case model.EntryUnknown:
			logger.Info("not a Drive URL, dropping", "line", entry.Line, "url", entry.URL)
			result.Dropped++

		case model.EntryDrive:
			assetURL, err := uc.migrateEntry(ctx, workDir, entry)
			if err != nil {
				logger.Error("failed to migrate entry",
					"run_id", runID,
					"line", entry.Line,
					"url", entry.URL,
					"error", err,
				)
				result.Dropped++
				continue
			}
			result.URLs = append(result.URLs, assetURL)
			result.Migrated++
		}
	}

	var buf strings.Builder
	for _, u := range result.URLs {
		buf.WriteString(u)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(listPath, []byte(buf.String()), 0644); err != nil {
		return nil, goerr.Wrap(err, "failed to rewrite list file", goerr.V("path", listPath))
	}

	logger.Info("migration completed",
		"run_id", runID,
		"migrated", result.Migrated,
		"kept", result.Kept,
		"dropped", result.Dropped,
	)
	return result, nil
}

// migrateEntry runs the full pipeline for one Drive URL: extract ID, resolve
// name, download, create a uniquely tagged release, upload. The local
// artifact is removed when this returns, success or not.
func (uc *migrateUseCase) migrateEntry(ctx context.Context, workDir string, entry model.SourceEntry) (string, error) {
	logger := ctxlog.From(ctx)

	fileID, ok := model.ExtractDriveFileID(entry.URL)
	if !ok {
		return "", goerr.New("could not extract file ID", goerr.V("url", entry.URL))
	}

	info := uc.drive.GetFileInfo(ctx, fileID)
	fileName := safename.FileName(info.Name)
	base := safename.Base(info.Name)

	logger.Info("processing drive file",
		"line", entry.Line,
		"file_id", fileID,
		"name", info.Name,
		"size", info.Size,
	)

	tempPath := filepath.Join(workDir, fileName)
	defer os.Remove(tempPath)

	if err := uc.drive.Download(ctx, fileID, tempPath); err != nil {
		return "", goerr.Wrap(err, "download failed", goerr.V("file_id", fileID))
	}

	tag := uc.uniqueTag(ctx, "video-"+base)
	release, err := uc.gh.CreateRelease(ctx, tag)
	if err != nil {
		return "", goerr.Wrap(err, "release creation failed", goerr.V("tag", tag))
	}

	asset, err := uc.gh.UploadAsset(ctx, release, tempPath)
	if err != nil {
		return "", goerr.Wrap(err, "asset upload failed", goerr.V("tag", tag))
	}

	logger.Info("entry migrated",
		"line", entry.Line,
		"tag", tag,
		"asset_url", asset.BrowserDownloadURL,
	)
	return asset.BrowserDownloadURL, nil
}

// uniqueTag generates a tag that does not collide with any listed release
// tag: while the candidate collides, the suffix is re-randomized; once the
// counter passes the retry limit the current Unix timestamp is used instead,
// which cannot collide with earlier video tags.
func (uc *migrateUseCase) uniqueTag(ctx context.Context, base string) string {
	existing := map[string]bool{}
	for _, r := range uc.gh.ListReleases(ctx) {
		existing[r.TagName] = true
	}

	tag := base
	counter := 1
	for existing[tag] {
		tag = fmt.Sprintf("%s-%s", base, uc.newSuffix())
		counter++
		if counter > tagSuffixRetryLimit {
			return fmt.Sprintf("%s-%d", base, uc.now().Unix())
		}
	}
	return tag
}
