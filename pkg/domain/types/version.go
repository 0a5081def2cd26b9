package types

// Version is the application version. Overwritten at build time via
// -ldflags "-X github.com/m-mizutani/ferry/pkg/domain/types.Version=vX.Y.Z".
var Version = "dev"
