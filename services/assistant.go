package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/journal"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const (
	FeatureGenerate = "generate"
	FeatureSEO      = "seo"
	FeatureGrammar  = "grammar"
	FeatureIdeas    = "ideas"
	FeatureImprove  = "improve"
	FeatureTags     = "tags"

	grammarFallback    = "Unable to check grammar at this time."
	defaultIdeaCount   = 5
	maxIdeaCount       = 10
	defaultTagCount    = 7
	maxTagCount        = 20
	seoDescriptionSize = 160
)

var (
	jsonObject      = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArray       = regexp.MustCompile(`(?s)\[.*\]`)
	firstJSONArray  = regexp.MustCompile(`(?s)\[.*?\]`)
	writingGuidance = map[WritingStyle]string{
		StyleProfessional: "sophisticated, well-structured, and authoritative",
		StyleCasual:       "conversational, friendly, and relatable",
		StylePersuasive:   "compelling, engaging, and action-oriented",
	}
)

type WritingStyle string

const (
	StyleProfessional WritingStyle = "professional"
	StyleCasual       WritingStyle = "casual"
	StylePersuasive   WritingStyle = "persuasive"
)

type SEOSuggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

type PostIdea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MainPoints  []string `json:"main_points"`
}

type AILogStore interface {
	CreateAILog(ctx context.Context, entry *models.AILog) error
}

// Assistant is the admin writing assistant. Apart from Generate, every
// operation degrades to a fixed fallback instead of failing, so the editor
// keeps working when the model is down or unconfigured.
type Assistant struct {
	llm    Completer
	logs   AILogStore
	logger zerolog.Logger
}

// NewAssistant accepts a nil llm; Generate then reports a config error.
func NewAssistant(llm Completer, logs AILogStore) *Assistant {
	return &Assistant{
		llm:    llm,
		logs:   logs,
		logger: log.With().Str("service", "assistant").Logger(),
	}
}

type completion struct {
	entry models.AILog
	text  string
}

func (a *Assistant) complete(ctx context.Context, feature, requestedBy, prompt string, temperature float64) (*completion, error) {
	if a.llm == nil {
		return nil, errs.NewConfigError("GEMINI_API_KEY", nil)
	}

	start := time.Now()
	text, err := a.llm.Complete(ctx, prompt, temperature)
	c := &completion{
		text: text,
		entry: models.AILog{
			Feature:     feature,
			ModelName:   a.llm.ModelName(),
			Temperature: temperature,
			InputPrompt: prompt,
			Output:      text,
			DurationMs:  time.Since(start).Milliseconds(),
			RequestedBy: requestedBy,
		},
	}
	if err != nil {
		message := err.Error()
		c.entry.ErrorMessage = &message
		a.record(ctx, c, nil)
		a.logger.Error().Err(err).Str("feature", feature).Msg("Language model call failed")
		return nil, errs.NewServiceUnreachableError("gemini", err)
	}
	return c, nil
}

// record stores the call in ai_logs. A failure here never reaches the caller.
func (a *Assistant) record(ctx context.Context, c *completion, parsed any) {
	if a.logs == nil {
		return
	}
	if parsed != nil {
		if raw, err := json.Marshal(parsed); err == nil {
			c.entry.Parsed = datatypes.JSON(raw)
		}
	}
	if err := a.logs.CreateAILog(ctx, &c.entry); err != nil {
		a.logger.Warn().Err(err).Str("feature", c.entry.Feature).Msg("Failed to record AI log")
	}
}

// decodeMatch unmarshals the JSON the model embedded in its reply.
func decodeMatch(match, shape string, v any) error {
	if match == "" {
		return fmt.Errorf("no JSON %s in response", shape)
	}
	return json.Unmarshal([]byte(match), v)
}

// unparsable logs a reply the caller could not use and is about to replace
// with its fallback. The ai_logs row keeps the reason.
func (a *Assistant) unparsable(ctx context.Context, c *completion, cause error) {
	err := errs.NewInvalidLLMResponseError(c.entry.ModelName, cause)
	message := err.GetFullError()
	c.entry.ErrorMessage = &message
	a.record(ctx, c, nil)
	a.logger.Warn().Err(err).Str("feature", c.entry.Feature).Msg("Unusable language model response")
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Generate returns the raw model output for a free-form prompt.
func (a *Assistant) Generate(ctx context.Context, requestedBy, prompt string, temperature float64) (string, error) {
	c, err := a.complete(ctx, FeatureGenerate, requestedBy, prompt, temperature)
	if err != nil {
		return "", err
	}
	a.record(ctx, c, nil)
	return c.text, nil
}

func seoFallback(title, content string) SEOSuggestion {
	return SEOSuggestion{
		Title:       title,
		Description: firstRunes(journal.StripHTML(content, len(content)+1), seoDescriptionSize),
		Keywords:    []string{},
	}
}

func (a *Assistant) OptimizeSEO(ctx context.Context, requestedBy, title, content string) SEOSuggestion {
	prompt := fmt.Sprintf(`You are an SEO expert. Based on this blog post, generate:
1. An optimized SEO title (max 60 characters)
2. A compelling meta description (max 160 characters)
3. 5-7 relevant keywords

Blog Title: %s
Blog Content: %s...

Return the response in this JSON format:
{
  "title": "...",
  "description": "...",
  "keywords": ["keyword1", "keyword2", ...]
}`, title, firstRunes(content, 500))

	c, err := a.complete(ctx, FeatureSEO, requestedBy, prompt, 0.3)
	if err != nil {
		return seoFallback(title, content)
	}

	var parsed struct {
		Title          string   `json:"title"`
		SEOTitle       string   `json:"seo_title"`
		Description    string   `json:"description"`
		SEODescription string   `json:"seo_description"`
		Keywords       []string `json:"keywords"`
	}
	if err := decodeMatch(jsonObject.FindString(c.text), "object", &parsed); err != nil {
		a.unparsable(ctx, c, err)
		return seoFallback(title, content)
	}

	suggestion := SEOSuggestion{
		Title:       firstNonEmpty(parsed.Title, parsed.SEOTitle, title),
		Description: firstNonEmpty(parsed.Description, parsed.SEODescription),
		Keywords:    parsed.Keywords,
	}
	if suggestion.Keywords == nil {
		suggestion.Keywords = []string{}
	}
	a.record(ctx, c, suggestion)
	return suggestion
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func (a *Assistant) CheckGrammar(ctx context.Context, requestedBy, content string) string {
	prompt := fmt.Sprintf(`You are a professional editor. Review this text for grammar, spelling, and style issues. Provide specific, actionable suggestions for improvement.

Text to review:
%s

Provide 3-5 clear suggestions as a simple text response.`, firstRunes(content, 1000))

	c, err := a.complete(ctx, FeatureGrammar, requestedBy, prompt, 0.2)
	if err != nil {
		return grammarFallback
	}
	a.record(ctx, c, nil)
	return c.text
}

func (a *Assistant) GenerateIdeas(ctx context.Context, requestedBy, topic string, count int) []PostIdea {
	if count <= 0 {
		count = defaultIdeaCount
	}
	count = min(count, maxIdeaCount)

	prompt := fmt.Sprintf(`Generate %d compelling blog post ideas about "%s" for a men's lifestyle and fashion blog called "The Ambitious Journal".

For each idea, provide:
1. A catchy title
2. A brief description
3. Suggested main points to cover

Return as JSON array:
[
  {
    "title": "...",
    "description": "...",
    "main_points": ["point1", "point2", "point3"]
  }
]`, count, topic)

	c, err := a.complete(ctx, FeatureIdeas, requestedBy, prompt, 0.8)
	if err != nil {
		return []PostIdea{}
	}

	var ideas []PostIdea
	if err := decodeMatch(jsonArray.FindString(c.text), "array", &ideas); err != nil {
		a.unparsable(ctx, c, err)
		return []PostIdea{}
	}
	if ideas == nil {
		ideas = []PostIdea{}
	}
	a.record(ctx, c, ideas)
	return ideas
}

// ParseWritingStyle maps an empty style to professional and rejects unknown ones.
func ParseWritingStyle(style string) (WritingStyle, error) {
	if style == "" {
		return StyleProfessional, nil
	}
	s := WritingStyle(strings.ToLower(style))
	if _, ok := writingGuidance[s]; !ok {
		return "", errs.NewInvalidFieldError("style", "must be professional, casual or persuasive")
	}
	return s, nil
}

func (a *Assistant) ImproveParagraph(ctx context.Context, requestedBy, paragraph string, style WritingStyle) string {
	guidance, ok := writingGuidance[style]
	if !ok {
		guidance = writingGuidance[StyleProfessional]
	}
	prompt := fmt.Sprintf(`Rewrite this paragraph to be more %s. Maintain the core message but improve clarity, flow, and impact.

Original paragraph:
%s

Return only the improved paragraph, no explanation needed.`, guidance, paragraph)

	c, err := a.complete(ctx, FeatureImprove, requestedBy, prompt, 0.7)
	if err != nil {
		return paragraph
	}
	a.record(ctx, c, nil)
	return c.text
}

func (a *Assistant) SuggestTags(ctx context.Context, requestedBy, title, content string, maxTags int) []string {
	if maxTags <= 0 {
		maxTags = defaultTagCount
	}
	maxTags = min(maxTags, maxTagCount)

	prompt := fmt.Sprintf(`Based on this blog post, suggest %d relevant tags/topics that would help categorize and improve discoverability.

Title: %s
Content: %s...

Return ONLY a JSON array of tag strings, nothing else: ["tag1", "tag2", "tag3"]`, maxTags, title, firstRunes(content, 300))

	c, err := a.complete(ctx, FeatureTags, requestedBy, prompt, 0.5)
	if err != nil {
		return []string{}
	}

	var raw []string
	if err := decodeMatch(firstJSONArray.FindString(c.text), "array", &raw); err != nil {
		a.unparsable(ctx, c, err)
		return []string{}
	}

	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	a.record(ctx, c, tags)
	return tags
}
