package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rpupo63/ambitious-journal-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistantRequiresFields(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		path  string
		body  map[string]any
		field string
	}{
		{"/admin/ai/generate", map[string]any{"prompt": "  "}, "prompt"},
		{"/admin/ai/seo", map[string]any{"title": "T"}, "content"},
		{"/admin/ai/grammar", map[string]any{}, "content"},
		{"/admin/ai/ideas", map[string]any{}, "topic"},
		{"/admin/ai/improve", map[string]any{}, "paragraph"},
		{"/admin/ai/tags", map[string]any{"content": "C"}, "title"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := env.serve(t, adminRequest(t, http.MethodPost, tc.path, tc.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.field, decodeBody(t, rec)["field"])
		})
	}
}

func TestAssistantRequiresSession(t *testing.T) {
	env := newTestEnv()

	rec := env.serve(t, jsonRequest(t, http.MethodPost, "/admin/ai/generate", map[string]any{"prompt": "hi"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateAttributesRequestToSessionUser(t *testing.T) {
	env := newTestEnv()

	rec := env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/generate", map[string]any{"prompt": "a haiku"}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "admin-1:a haiku", decodeBody(t, rec)["text"])
}

func TestGenerateRejectsTemperatureOutOfRange(t *testing.T) {
	env := newTestEnv()

	rec := env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/generate", map[string]any{"prompt": "x", "temperature": 2.5}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "temperature", decodeBody(t, rec)["field"])
}

func TestImproveParsesStyle(t *testing.T) {
	env := newTestEnv()

	rec := env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/improve", map[string]any{"paragraph": "It was fine", "style": "poetic"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "style", decodeBody(t, rec)["field"])

	rec = env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/improve", map[string]any{"paragraph": "It was fine"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "It was fine!", decodeBody(t, rec)["text"])

	rec = env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/improve", map[string]any{"paragraph": "Hey", "style": "casual"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []services.WritingStyle{services.StyleProfessional, services.StyleCasual}, env.assistant.styles)
}

func TestAssistantSuccessShapes(t *testing.T) {
	env := newTestEnv()

	rec := env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/seo", map[string]any{"title": "T", "content": "C"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "T", decodeBody(t, rec)["title"])

	rec = env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/grammar", map[string]any{"content": "C"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "looks good", decodeBody(t, rec)["suggestions"])

	rec = env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/ideas", map[string]any{"topic": "Lisbon"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["ideas"], 1)

	rec = env.serve(t, adminRequest(t, http.MethodPost, "/admin/ai/tags", map[string]any{"title": "T", "content": "C"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"style"}, decodeBody(t, rec)["tags"])
}

func TestListAILogs(t *testing.T) {
	env := newTestEnv()
	env.aiLogs.entries = []models.AILog{{Feature: services.FeatureSEO, ModelName: "gemini-2.5-flash"}}

	rec := env.serve(t, adminRequest(t, http.MethodGet, "/admin/ai/logs?feature=seo&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	logs := decodeBody(t, rec)["logs"].([]any)
	require.Len(t, logs, 1)
	assert.Equal(t, "seo", logs[0].(map[string]any)["feature"])
	assert.Equal(t, []string{"seo"}, env.aiLogs.features)
	assert.Equal(t, []int{10}, env.aiLogs.limits)
}

func TestListAILogsLimits(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", defaultAILogLimit},
		{"?limit=0", maxAILogLimit},
		{"?limit=5000", maxAILogLimit},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			env := newTestEnv()
			rec := env.serve(t, adminRequest(t, http.MethodGet, "/admin/ai/logs"+tt.query, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []int{tt.want}, env.aiLogs.limits)
			assert.Equal(t, []string{""}, env.aiLogs.features)
		})
	}
}

func TestListAILogsRejectsBadInput(t *testing.T) {
	env := newTestEnv()

	rec := env.serve(t, adminRequest(t, http.MethodGet, "/admin/ai/logs?feature=poetry", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "feature", decodeBody(t, rec)["field"])

	rec = env.serve(t, adminRequest(t, http.MethodGet, "/admin/ai/logs?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.serve(t, jsonRequest(t, http.MethodGet, "/admin/ai/logs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, env.aiLogs.limits)
}

func TestListAILogsStorageFailure(t *testing.T) {
	env := newTestEnv()
	env.aiLogs.err = errors.New("disk full")

	rec := env.serve(t, adminRequest(t, http.MethodGet, "/admin/ai/logs", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
