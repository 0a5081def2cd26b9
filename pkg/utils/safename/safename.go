// Package safename derives filesystem- and tag-safe names from Drive display
// names, and generates the random suffixes used for release tag collision
// avoidance.
package safename

import (
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
)

const maxBaseLen = 50

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Base strips the extension from name, replaces every character outside
// [a-zA-Z0-9_-] with an underscore, and caps the result at 50 characters.
func Base(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	safe := unsafeChars.ReplaceAllString(base, "_")
	if len(safe) > maxBaseLen {
		safe = safe[:maxBaseLen]
	}
	return safe
}

// Ext returns the extension of name, defaulting to .mp4 when absent
func Ext(name string) string {
	if ext := filepath.Ext(name); ext != "" {
		return ext
	}
	return ".mp4"
}

// FileName returns the sanitized base joined with the (defaulted) extension
func FileName(name string) string {
	return Base(name) + Ext(name)
}

const suffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomSuffix returns a random lowercase alphanumeric string of length n
func RandomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixChars[rand.Intn(len(suffixChars))]
	}
	return string(b)
}
