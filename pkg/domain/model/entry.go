package model

import "strings"

// EntryKind classifies a single line of the source list
type EntryKind int

const (
	// EntryBlank is an empty (or whitespace-only) line
	EntryBlank EntryKind = iota
	// EntryGitHub is a line that already points at GitHub and is kept as-is
	EntryGitHub
	// EntryDrive is a Google Drive link to be migrated
	EntryDrive
	// EntryUnknown is neither GitHub nor Drive and is dropped
	EntryUnknown
)

func (k EntryKind) String() string {
	switch k {
	case EntryBlank:
		return "blank"
	case EntryGitHub:
		return "github"
	case EntryDrive:
		return "drive"
	default:
		return "unknown"
	}
}

// SourceEntry represents one line of the URL list with its position preserved
type SourceEntry struct {
	Line int    // 1-origin line number in the input file
	URL  string // Trimmed line content
	Kind EntryKind
}

// ClassifyEntry builds a SourceEntry from a raw line. Classification is
// substring based: any line mentioning github.com is passed through, any line
// mentioning drive.google.com is a migration candidate, everything else is
// dropped by the orchestrator.
func ClassifyEntry(line int, raw string) SourceEntry {
	url := strings.TrimSpace(raw)

	kind := EntryUnknown
	switch {
	case url == "":
		kind = EntryBlank
	case strings.Contains(url, "github.com"):
		kind = EntryGitHub
	case strings.Contains(url, "drive.google.com"):
		kind = EntryDrive
	}

	return SourceEntry{Line: line, URL: url, Kind: kind}
}
