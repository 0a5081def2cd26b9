package interfaces

import (
	"context"

	"github.com/m-mizutani/ferry/pkg/domain/model"
)

// DriveClient defines operations against the Google Drive download surface.
// Download hides the confirm-token interstitial handling so the strategy can
// be replaced without touching the orchestrator.
type DriveClient interface {
	// GetFileInfo resolves the display name of a shared file. It never fails:
	// when metadata is unavailable a synthetic name is returned instead.
	GetFileInfo(ctx context.Context, fileID string) *model.DriveFile

	// Download streams the file content to destPath
	Download(ctx context.Context, fileID, destPath string) error
}
