package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog/log"
)

const (
	defaultMediumBaseURL = "https://api.medium.com"
	maxMediumTags        = 5
)

// MediumUserResponse represents the response from Medium API /me endpoint
type MediumUserResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"data"`
}

// MediumPostResponse represents the response from Medium API when creating a post
type MediumPostResponse struct {
	Data struct {
		ID            string   `json:"id"`
		Title         string   `json:"title"`
		AuthorID      string   `json:"authorId"`
		Tags          []string `json:"tags"`
		URL           string   `json:"url"`
		CanonicalURL  string   `json:"canonicalUrl"`
		PublishStatus string   `json:"publishStatus"`
	} `json:"data"`
}

// MediumErrorResponse represents an error response from Medium API
type MediumErrorResponse struct {
	Errors []struct {
		Message string `json:"message"`
		Code    int    `json:"code,omitempty"`
	} `json:"errors"`
}

type mediumPostRequest struct {
	Title         string   `json:"title"`
	ContentFormat string   `json:"contentFormat"`
	Content       string   `json:"content"`
	PublishStatus string   `json:"publishStatus"`
	Tags          []string `json:"tags,omitempty"`
	CanonicalURL  string   `json:"canonicalUrl,omitempty"`
}

// MediumClient cross-posts Journal entries to Medium with an integration token.
type MediumClient struct {
	token         string
	publishStatus string
	siteBaseURL   string
	baseURL       string
	httpClient    *http.Client
}

type MediumOption func(*MediumClient)

func WithMediumBaseURL(baseURL string) MediumOption {
	return func(c *MediumClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewMediumClient accepts publish status public, draft or unlisted; anything
// else falls back to public.
func NewMediumClient(token, publishStatus, siteBaseURL string, opts ...MediumOption) (*MediumClient, error) {
	if token == "" {
		return nil, errs.NewEnvironmentVariableError("MEDIUM_INTEGRATION_TOKEN")
	}
	switch publishStatus {
	case "public", "draft", "unlisted":
	default:
		if publishStatus != "" {
			log.Warn().Str("status", publishStatus).Msg("Invalid MEDIUM_PUBLISH_STATUS, defaulting to 'public'")
		}
		publishStatus = "public"
	}
	c := &MediumClient{
		token:         token,
		publishStatus: publishStatus,
		siteBaseURL:   siteBaseURL,
		baseURL:       defaultMediumBaseURL,
		httpClient:    newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *MediumClient) Name() string {
	return "medium"
}

func (c *MediumClient) headers() map[string]string {
	return map[string]string{
		"Authorization":  "Bearer " + c.token,
		"Accept-Charset": "utf-8",
	}
}

func (c *MediumClient) userID(ctx context.Context) (string, error) {
	var user MediumUserResponse
	if err := doJSON(ctx, c.httpClient, "Medium", http.MethodGet, c.baseURL+"/v1/me", c.headers(), nil, &user, mediumErrorMessage); err != nil {
		return "", err
	}
	if user.Data.ID == "" {
		return "", fmt.Errorf("Medium API returned empty user ID")
	}
	return user.Data.ID, nil
}

func buildMediumPost(post models.Post, publishStatus, siteBaseURL string) mediumPostRequest {
	payload := mediumPostRequest{
		Title:         post.Title,
		ContentFormat: "html",
		Content:       post.Content,
		PublishStatus: publishStatus,
		CanonicalURL:  BuildPostURL(siteBaseURL, post.Slug),
	}
	for _, tag := range post.Tags {
		name := strings.TrimSpace(tag.Name)
		if name == "" {
			continue
		}
		payload.Tags = append(payload.Tags, name)
		if len(payload.Tags) == maxMediumTags {
			break
		}
	}
	return payload
}

// Publish creates the post on Medium and returns its Medium URL.
func (c *MediumClient) Publish(ctx context.Context, post models.Post) (string, error) {
	userID, err := c.userID(ctx)
	if err != nil {
		return "", errs.NewServiceUnreachableError("medium", err)
	}

	var created MediumPostResponse
	url := fmt.Sprintf("%s/v1/users/%s/posts", c.baseURL, userID)
	payload := buildMediumPost(post, c.publishStatus, c.siteBaseURL)
	if err := doJSON(ctx, c.httpClient, "Medium", http.MethodPost, url, c.headers(), payload, &created, mediumErrorMessage); err != nil {
		return "", errs.NewServiceUnreachableError("medium", err)
	}

	log.Info().
		Str("postId", created.Data.ID).
		Str("url", created.Data.URL).
		Str("status", created.Data.PublishStatus).
		Msg("Successfully posted to Medium")
	return created.Data.URL, nil
}

func mediumErrorMessage(body []byte) string {
	var errorResp MediumErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || len(errorResp.Errors) == 0 {
		return ""
	}
	return errorResp.Errors[0].Message
}
