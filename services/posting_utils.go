package services

import (
	"fmt"
	"strings"
)

// FormatHashtag turns a tag name into a social hashtag body: letters, digits
// and underscores only, lowercased. Returns "" when nothing usable is left or
// the result would start with a digit.
func FormatHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}

	var result strings.Builder
	for _, r := range tag {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}

	formatted := strings.ToLower(result.String())
	if len(formatted) > 0 && formatted[0] >= '0' && formatted[0] <= '9' {
		return ""
	}
	return formatted
}

// BuildPostURL returns the public Journal URL of a post, or "" when either
// part is missing.
func BuildPostURL(siteBaseURL, slug string) string {
	if siteBaseURL == "" || slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/journal/%s", strings.TrimSuffix(siteBaseURL, "/"), slug)
}
