package service

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify lowercases a name and collapses every run of non-alphanumeric
// characters into a single hyphen: "Root Crops" becomes "root-crops".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// DisambiguateSlug appends a short random suffix so a colliding slug stays
// readable while becoming unique.
func DisambiguateSlug(slug string) string {
	return slug + "-" + uuid.NewString()[:4]
}
