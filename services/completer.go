package services

import (
	"context"
	"strings"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash"
	maxOutputTokens    = 2048
)

// Completer turns a single prompt into text.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
	ModelName() string
}

// LangChainCompleter calls Gemini through langchaingo's googleai provider.
type LangChainCompleter struct {
	llm   llms.Model
	model string
}

func NewLangChainCompleter(ctx context.Context, apiKey, model string) (*LangChainCompleter, error) {
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("GEMINI_API_KEY")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	llm, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
	if err != nil {
		return nil, errs.NewConfigError("googleai", err)
	}
	return &LangChainCompleter{llm: llm, model: model}, nil
}

func (c *LangChainCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxOutputTokens),
	)
}

func (c *LangChainCompleter) ModelName() string {
	return c.model
}

// GenAICompleter calls Gemini through Google's genai SDK.
type GenAICompleter struct {
	client *genai.Client
	model  string
}

func NewGenAICompleter(ctx context.Context, apiKey, model string) (*GenAICompleter, error) {
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("GEMINI_API_KEY")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errs.NewConfigError("genai", err)
	}
	return &GenAICompleter{client: client, model: model}, nil
}

func (c *GenAICompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

func (c *GenAICompleter) ModelName() string {
	return c.model
}

// NewCompleter picks the provider named by AI_PROVIDER: "genai", or langchaingo for anything else.
func NewCompleter(ctx context.Context, provider, apiKey, model string) (Completer, error) {
	if strings.EqualFold(provider, "genai") {
		c, err := NewGenAICompleter(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	c, err := NewLangChainCompleter(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return c, nil
}
