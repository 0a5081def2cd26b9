package interfaces

import (
	"context"

	"github.com/m-mizutani/ferry/pkg/domain/model"
)

// GitHubClient defines operations for managing releases on the target repository
type GitHubClient interface {
	// ListReleases returns all releases of the target repository. Listing
	// failure is not an error: the caller receives an empty slice.
	ListReleases(ctx context.Context) []*model.Release

	// CreateRelease creates a non-draft, non-prerelease release with the given tag
	CreateRelease(ctx context.Context, tag string) (*model.Release, error)

	// UploadAsset uploads the file at path to the release as a binary asset
	UploadAsset(ctx context.Context, release *model.Release, path string) (*model.Asset, error)
}
