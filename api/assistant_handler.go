package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rpupo63/ambitious-journal-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultGenerateTemperature = 0.7
	defaultAILogLimit          = 50
	maxAILogLimit              = 200
)

var aiFeatures = map[string]bool{
	services.FeatureGenerate: true,
	services.FeatureSEO:      true,
	services.FeatureGrammar:  true,
	services.FeatureIdeas:    true,
	services.FeatureImprove:  true,
	services.FeatureTags:     true,
}

// WritingAssistant is the AI helper behind the post editor.
type WritingAssistant interface {
	Generate(ctx context.Context, requestedBy, prompt string, temperature float64) (string, error)
	OptimizeSEO(ctx context.Context, requestedBy, title, content string) services.SEOSuggestion
	CheckGrammar(ctx context.Context, requestedBy, content string) string
	GenerateIdeas(ctx context.Context, requestedBy, topic string, count int) []services.PostIdea
	ImproveParagraph(ctx context.Context, requestedBy, paragraph string, style services.WritingStyle) string
	SuggestTags(ctx context.Context, requestedBy, title, content string, maxTags int) []string
}

// AILogReader lists recorded language model calls.
type AILogReader interface {
	ListAILogs(ctx context.Context, feature string, limit int) ([]models.AILog, error)
}

type assistantHandler struct {
	responder Responder
	logger    zerolog.Logger
	assistant WritingAssistant
	logs      AILogReader
}

func newAssistantHandler(assistant WritingAssistant, logs AILogReader) assistantHandler {
	logger := log.With().Str("handlerName", "assistantHandler").Logger()

	return assistantHandler{
		responder: NewResponder(logger),
		logger:    logger,
		assistant: assistant,
		logs:      logs,
	}
}

type assistantRequest struct {
	Prompt      string   `json:"prompt"`
	Temperature *float64 `json:"temperature"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Topic       string   `json:"topic"`
	Count       int      `json:"count"`
	Paragraph   string   `json:"paragraph"`
	Style       string   `json:"style"`
	Max         int      `json:"max"`
}

// decode reads the body and checks that every named field is non-blank.
func (h assistantHandler) decode(w http.ResponseWriter, r *http.Request, required ...string) (assistantRequest, bool) {
	var req assistantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.responder.WriteError(w, err)
		return req, false
	}
	values := map[string]string{
		"prompt":    req.Prompt,
		"title":     req.Title,
		"content":   req.Content,
		"topic":     req.Topic,
		"paragraph": req.Paragraph,
	}
	for _, field := range required {
		if strings.TrimSpace(values[field]) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
			return req, false
		}
	}
	return req, true
}

func (h assistantHandler) generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decode(w, r, "prompt")
		if !ok {
			return
		}
		temperature := defaultGenerateTemperature
		if req.Temperature != nil {
			temperature = *req.Temperature
		}
		if temperature < 0 || temperature > 2 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("temperature", "must be between 0 and 2"))
			return
		}

		text, err := h.assistant.Generate(r.Context(), ctxGetUserID(r.Context()), req.Prompt, temperature)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{"text": text})
	}
}

func (h assistantHandler) seo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decode(w, r, "title", "content")
		if !ok {
			return
		}
		h.responder.WriteJSON(w, h.assistant.OptimizeSEO(r.Context(), ctxGetUserID(r.Context()), req.Title, req.Content))
	}
}

func (h assistantHandler) grammar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decode(w, r, "content")
		if !ok {
			return
		}
		suggestions := h.assistant.CheckGrammar(r.Context(), ctxGetUserID(r.Context()), req.Content)
		h.responder.WriteJSON(w, map[string]string{"suggestions": suggestions})
	}
}

func (h assistantHandler) ideas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decode(w, r, "topic")
		if !ok {
			return
		}
		ideas := h.assistant.GenerateIdeas(r.Context(), ctxGetUserID(r.Context()), req.Topic, req.Count)
		h.responder.WriteJSON(w, map[string]any{"ideas": ideas})
	}
}

func (h assistantHandler) improve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decode(w, r, "paragraph")
		if !ok {
			return
		}
		style, err := services.ParseWritingStyle(req.Style)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		text := h.assistant.ImproveParagraph(r.Context(), ctxGetUserID(r.Context()), req.Paragraph, style)
		h.responder.WriteJSON(w, map[string]string{"text": text})
	}
}

func (h assistantHandler) tags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decode(w, r, "title", "content")
		if !ok {
			return
		}
		tags := h.assistant.SuggestTags(r.Context(), ctxGetUserID(r.Context()), req.Title, req.Content, req.Max)
		h.responder.WriteJSON(w, map[string]any{"tags": tags})
	}
}

// listLogs returns the newest ai_logs rows, optionally for one feature.
func (h assistantHandler) listLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.logs == nil {
			h.responder.WriteError(w, errs.NewConfigError("DATABASE_URL", nil))
			return
		}
		feature := r.URL.Query().Get("feature")
		if feature != "" && !aiFeatures[feature] {
			h.responder.WriteError(w, errs.NewInvalidFieldError("feature", "unknown assistant feature"))
			return
		}
		limit, err := intQuery(r, "limit", defaultAILogLimit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if limit == 0 || limit > maxAILogLimit {
			limit = maxAILogLimit
		}

		entries, err := h.logs.ListAILogs(r.Context(), feature, limit)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "ai logs", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"logs": entries})
	}
}
