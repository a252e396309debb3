package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply        string
	err          error
	prompts      []string
	temperatures []float64
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.temperatures = append(f.temperatures, temperature)
	return f.reply, f.err
}

func (f *fakeCompleter) ModelName() string { return "fake-model" }

type fakeAILogs struct {
	entries []models.AILog
	err     error
}

func (f *fakeAILogs) CreateAILog(ctx context.Context, entry *models.AILog) error {
	f.entries = append(f.entries, *entry)
	return f.err
}

func newTestAssistant(reply string, err error) (*Assistant, *fakeCompleter, *fakeAILogs) {
	llm := &fakeCompleter{reply: reply, err: err}
	logs := &fakeAILogs{}
	return NewAssistant(llm, logs), llm, logs
}

func TestGenerateRecordsLog(t *testing.T) {
	a, llm, logs := newTestAssistant("A crisp navy blazer...", nil)

	text, err := a.Generate(context.Background(), "user-1", "Write about blazers", 0.7)
	require.NoError(t, err)
	assert.Equal(t, "A crisp navy blazer...", text)
	assert.Equal(t, []float64{0.7}, llm.temperatures)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	assert.Equal(t, FeatureGenerate, entry.Feature)
	assert.Equal(t, "fake-model", entry.ModelName)
	assert.Equal(t, "user-1", entry.RequestedBy)
	assert.Equal(t, "Write about blazers", entry.InputPrompt)
	assert.Nil(t, entry.ErrorMessage)
}

func TestGenerateErrors(t *testing.T) {
	_, err := NewAssistant(nil, nil).Generate(context.Background(), "u", "p", 0.7)
	assert.True(t, errs.IsConfigError(err))

	a, _, logs := newTestAssistant("", errors.New("quota"))
	_, err = a.Generate(context.Background(), "u", "p", 0.7)
	assert.True(t, errs.IsServiceUnreachableError(err))
	require.Len(t, logs.entries, 1)
	require.NotNil(t, logs.entries[0].ErrorMessage)
	assert.Equal(t, "quota", *logs.entries[0].ErrorMessage)
}

func TestLogFailureDoesNotFailCall(t *testing.T) {
	a, _, logs := newTestAssistant("ok", nil)
	logs.err = errors.New("db down")
	text, err := a.Generate(context.Background(), "u", "p", 0.5)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestOptimizeSEO(t *testing.T) {
	a, llm, logs := newTestAssistant("Sure!\n{\"title\": \"Tailoring 101\", \"description\": \"Fit first.\", \"keywords\": [\"tailoring\", \"fit\"]}\nEnjoy.", nil)

	got := a.OptimizeSEO(context.Background(), "u", "Tailoring", "<p>Content</p>")
	assert.Equal(t, SEOSuggestion{Title: "Tailoring 101", Description: "Fit first.", Keywords: []string{"tailoring", "fit"}}, got)
	assert.Equal(t, []float64{0.3}, llm.temperatures)
	require.Len(t, logs.entries, 1)
	assert.JSONEq(t, `{"title":"Tailoring 101","description":"Fit first.","keywords":["tailoring","fit"]}`, string(logs.entries[0].Parsed))
}

func TestOptimizeSEOAcceptsSEOPrefixedKeys(t *testing.T) {
	a, _, _ := newTestAssistant(`{"seo_title": "Alt", "seo_description": "Alt desc"}`, nil)
	got := a.OptimizeSEO(context.Background(), "u", "Tailoring", "body")
	assert.Equal(t, "Alt", got.Title)
	assert.Equal(t, "Alt desc", got.Description)
	assert.Equal(t, []string{}, got.Keywords)
}

func TestOptimizeSEOFallback(t *testing.T) {
	content := "<p>Hello <b>World</b></p>" + strings.Repeat("x", 300)
	want := SEOSuggestion{
		Title:       "Title",
		Description: ("Hello World" + strings.Repeat("x", 300))[:160],
		Keywords:    []string{},
	}

	a, _, logs := newTestAssistant("no json here", nil)
	assert.Equal(t, want, a.OptimizeSEO(context.Background(), "u", "Title", content))
	require.Len(t, logs.entries, 1)
	require.NotNil(t, logs.entries[0].ErrorMessage)
	assert.Contains(t, *logs.entries[0].ErrorMessage, "invalid LLM response")
	assert.Contains(t, *logs.entries[0].ErrorMessage, "no JSON object in response")
	assert.Equal(t, "no json here", logs.entries[0].Output)

	a, _, _ = newTestAssistant("", errors.New("down"))
	assert.Equal(t, want, a.OptimizeSEO(context.Background(), "u", "Title", content))

	assert.Equal(t, want, NewAssistant(nil, nil).OptimizeSEO(context.Background(), "u", "Title", content))
}

func TestCheckGrammar(t *testing.T) {
	a, llm, _ := newTestAssistant("1. Use active voice.", nil)
	long := strings.Repeat("a", 1500)
	assert.Equal(t, "1. Use active voice.", a.CheckGrammar(context.Background(), "u", long))
	assert.Contains(t, llm.prompts[0], strings.Repeat("a", 1000))
	assert.NotContains(t, llm.prompts[0], strings.Repeat("a", 1001))

	a, _, _ = newTestAssistant("", errors.New("down"))
	assert.Equal(t, "Unable to check grammar at this time.", a.CheckGrammar(context.Background(), "u", "text"))
}

func TestGenerateIdeas(t *testing.T) {
	a, llm, _ := newTestAssistant("Here you go:\n[{\"title\": \"Capsule Wardrobe\", \"description\": \"Ten pieces\", \"main_points\": [\"fit\", \"color\"]}]", nil)
	ideas := a.GenerateIdeas(context.Background(), "u", "minimalism", 0)
	require.Len(t, ideas, 1)
	assert.Equal(t, PostIdea{Title: "Capsule Wardrobe", Description: "Ten pieces", MainPoints: []string{"fit", "color"}}, ideas[0])
	assert.Contains(t, llm.prompts[0], "Generate 5 compelling blog post ideas about \"minimalism\"")
	assert.Equal(t, []float64{0.8}, llm.temperatures)

	a, _, logs := newTestAssistant(`[{"title": 3}]`, nil)
	assert.Equal(t, []PostIdea{}, a.GenerateIdeas(context.Background(), "u", "t", 3))
	require.Len(t, logs.entries, 1)
	require.NotNil(t, logs.entries[0].ErrorMessage)
	assert.Contains(t, *logs.entries[0].ErrorMessage, "Unexpected response from fake-model")
}

func TestImproveParagraph(t *testing.T) {
	a, llm, _ := newTestAssistant("Better.", nil)
	assert.Equal(t, "Better.", a.ImproveParagraph(context.Background(), "u", "Good.", StyleCasual))
	assert.Contains(t, llm.prompts[0], "conversational, friendly, and relatable")

	a, _, _ = newTestAssistant("", errors.New("down"))
	assert.Equal(t, "Good.", a.ImproveParagraph(context.Background(), "u", "Good.", StylePersuasive))
}

func TestParseWritingStyle(t *testing.T) {
	style, err := ParseWritingStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleProfessional, style)

	style, err = ParseWritingStyle("Persuasive")
	require.NoError(t, err)
	assert.Equal(t, StylePersuasive, style)

	_, err = ParseWritingStyle("poetic")
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestSuggestTags(t *testing.T) {
	a, _, logs := newTestAssistant(`Tags: ["Style", " Tailoring ", ""] and also [not json]`, nil)
	assert.Equal(t, []string{"Style", "Tailoring"}, a.SuggestTags(context.Background(), "u", "T", "C", 0))
	assert.JSONEq(t, `["Style","Tailoring"]`, string(logs.entries[0].Parsed))

	a, _, _ = newTestAssistant(`["a", "b", "c"]`, nil)
	assert.Equal(t, []string{"a", "b"}, a.SuggestTags(context.Background(), "u", "T", "C", 2))

	a, _, _ = newTestAssistant("", errors.New("down"))
	assert.Equal(t, []string{}, a.SuggestTags(context.Background(), "u", "T", "C", 0))
}
