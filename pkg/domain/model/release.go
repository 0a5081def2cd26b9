package model

// Release represents a GitHub release that can hold binary assets
type Release struct {
	ID      int64  // Release ID used by the asset upload endpoint
	TagName string // Unique tag the release was created with
	Name    string // Release name (same as the tag)
	HTMLURL string // Web URL of the release page
}

// Asset represents a binary file attached to a release
type Asset struct {
	Name               string // Asset file name
	BrowserDownloadURL string // Stable public download URL, the terminal artifact of a migration
}
