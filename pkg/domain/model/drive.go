package model

import "regexp"

// The three positional URL shapes a shared link may take. Order matters:
// /file/d/<id> is the canonical share link, id=<id> covers open?id= links,
// /d/<id> catches shortened document links.
var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`),
}

// ExtractDriveFileID extracts a Drive file identifier from a shared URL. The
// ID is not validated beyond its character class.
func ExtractDriveFileID(url string) (string, bool) {
	for _, re := range driveIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// DriveFile represents a file on Google Drive resolved from a shared link
type DriveFile struct {
	ID   string // File identifier extracted from the URL
	Name string // Display name; synthetic (video_<id[:8]>.mp4) when metadata is unavailable
	Size int64  // Size in bytes, 0 when unknown
}
