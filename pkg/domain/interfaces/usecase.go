package interfaces

import (
	"context"

	"github.com/m-mizutani/ferry/pkg/domain/model"
)

// MigrateUseCase defines the batch migration over a URL list file
type MigrateUseCase interface {
	// Migrate reads the list file, re-hosts every Drive link as a GitHub
	// release asset, and rewrites the file with the surviving URLs.
	Migrate(ctx context.Context, listPath string) (*model.MigrationResult, error)
}
