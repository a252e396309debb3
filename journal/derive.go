package journal

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rpupo63/ambitious-journal-backend/models"
)

const (
	wordsPerMinute = 200

	// DefaultExcerptLength is the cut-off StripHTML applies when given a non-positive length.
	DefaultExcerptLength = 160

	ellipsis = "..."
)

var (
	// RE2's \s is ASCII only; titles pasted from editors carry NBSP and other
	// Unicode separators, which must hyphenate rather than vanish.
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s\v\p{Z}\x{FEFF}-]`)
	slugWhitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	slugHyphens    = regexp.MustCompile(`-+`)

	htmlTag = regexp.MustCompile(`<[^>]*>`)
)

// GenerateSlug turns a title into a lowercase, hyphenated, URL-safe identifier.
// Symbol-only input yields "". Applying it twice gives the same result as once.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// EstimateReadingTime returns whole minutes at 200 words per minute, rounded up.
// Blank content reads in 0 minutes.
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// StripHTML removes tag markup and truncates the remaining text to maxLength
// characters followed by "...". Entities are left as written.
func StripHTML(html string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	text := htmlTag.ReplaceAllString(html, "")
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	return string([]rune(text)[:maxLength]) + ellipsis
}

// DisplayExcerpt is the author's excerpt, or the start of the content when none was written.
func DisplayExcerpt(post *models.Post) string {
	if post.Excerpt != nil && strings.TrimSpace(*post.Excerpt) != "" {
		return *post.Excerpt
	}
	return StripHTML(post.Content, DefaultExcerptLength)
}

// SEOTitle falls back to the post title.
func SEOTitle(post *models.Post) string {
	if post.SEOTitle != nil && strings.TrimSpace(*post.SEOTitle) != "" {
		return *post.SEOTitle
	}
	return post.Title
}

// SEODescription falls back to the display excerpt.
func SEODescription(post *models.Post) string {
	if post.SEODescription != nil && strings.TrimSpace(*post.SEODescription) != "" {
		return *post.SEODescription
	}
	return DisplayExcerpt(post)
}
