package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify lowercases the name, collapses runs of non-alphanumerics into a
// single hyphen and trims leading/trailing hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(name) {
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
	return strings.TrimSuffix(b.String(), "-")
}

// SlugWithSuffix appends a short random suffix for collision retries.
func SlugWithSuffix(base string) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
