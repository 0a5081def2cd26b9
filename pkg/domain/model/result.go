package model

// MigrationResult summarizes one batch run over the source list
type MigrationResult struct {
	URLs     []string // Surviving entries in original relative order
	Migrated int      // Drive links re-hosted as release assets
	Kept     int      // Lines that were already GitHub URLs
	Dropped  int      // Lines removed (unrecognized or failed at some stage)
}
