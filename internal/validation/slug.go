package validation

import (
	"regexp"
	"strings"
)

var slugStripRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title into a URL-safe slug. The caller is responsible
// for guaranteeing uniqueness (the article service appends a random suffix
// on collision).
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = slug[:80]
		slug = strings.Trim(slug, "-")
	}
	return slug
}
