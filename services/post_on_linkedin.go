package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/journal"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog/log"
)

const defaultLinkedInBaseURL = "https://api.linkedin.com"

// LinkedInPostResponse represents the response from LinkedIn API
type LinkedInPostResponse struct {
	ID string `json:"id"`
}

// LinkedInErrorResponse represents an error response from LinkedIn API
type LinkedInErrorResponse struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

type linkedInShareCommentary struct {
	Text string `json:"text"`
}

type linkedInMedia struct {
	Status      string `json:"status"`
	OriginalURL string `json:"originalUrl"`
}

type linkedInShareContent struct {
	ShareCommentary    linkedInShareCommentary `json:"shareCommentary"`
	ShareMediaCategory string                  `json:"shareMediaCategory"`
	Media              []linkedInMedia         `json:"media,omitempty"`
}

type linkedInUGCPost struct {
	Author          string                          `json:"author"`
	LifecycleState  string                          `json:"lifecycleState"`
	SpecificContent map[string]linkedInShareContent `json:"specificContent"`
	Visibility      map[string]string               `json:"visibility"`
}

// LinkedInClient shares Journal entries to a member feed through the UGC Posts API.
type LinkedInClient struct {
	accessToken string
	personURN   string
	siteBaseURL string
	baseURL     string
	httpClient  *http.Client
}

type LinkedInOption func(*LinkedInClient)

func WithLinkedInBaseURL(baseURL string) LinkedInOption {
	return func(c *LinkedInClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func NewLinkedInClient(accessToken, personURN, siteBaseURL string, opts ...LinkedInOption) (*LinkedInClient, error) {
	if accessToken == "" {
		return nil, errs.NewEnvironmentVariableError("LINKEDIN_ACCESS_TOKEN")
	}
	if personURN == "" {
		return nil, errs.NewEnvironmentVariableError("LINKEDIN_PERSON_URN")
	}
	c := &LinkedInClient{
		accessToken: accessToken,
		personURN:   personURN,
		siteBaseURL: siteBaseURL,
		baseURL:     defaultLinkedInBaseURL,
		httpClient:  newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *LinkedInClient) Name() string {
	return "linkedin"
}

// linkedInText is the title, the display excerpt, a read-more link and the
// hashtags, separated by blank lines. Empty parts are skipped.
func linkedInText(post models.Post, postURL string) string {
	var parts []string
	if post.Title != "" {
		parts = append(parts, post.Title)
	}
	if excerpt := journal.DisplayExcerpt(&post); excerpt != "" {
		parts = append(parts, excerpt)
	}
	if postURL != "" {
		parts = append(parts, fmt.Sprintf("Read more: %s", postURL))
	}

	var hashtags []string
	for _, tag := range post.Tags {
		if hashtag := FormatHashtag(tag.Name); hashtag != "" {
			hashtags = append(hashtags, "#"+hashtag)
		}
	}
	if len(hashtags) > 0 {
		parts = append(parts, strings.Join(hashtags, " "))
	}
	return strings.Join(parts, "\n\n")
}

func buildLinkedInPost(personURN, text, postURL string) linkedInUGCPost {
	content := linkedInShareContent{
		ShareCommentary:    linkedInShareCommentary{Text: text},
		ShareMediaCategory: "NONE",
	}
	if postURL != "" {
		content.ShareMediaCategory = "ARTICLE"
		content.Media = []linkedInMedia{{Status: "READY", OriginalURL: postURL}}
	}
	return linkedInUGCPost{
		Author:          personURN,
		LifecycleState:  "PUBLISHED",
		SpecificContent: map[string]linkedInShareContent{"com.linkedin.ugc.ShareContent": content},
		Visibility:      map[string]string{"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC"},
	}
}

// Publish shares the post and returns the LinkedIn post ID.
func (c *LinkedInClient) Publish(ctx context.Context, post models.Post) (string, error) {
	postURL := BuildPostURL(c.siteBaseURL, post.Slug)
	payload := buildLinkedInPost(c.personURN, linkedInText(post, postURL), postURL)

	var created LinkedInPostResponse
	err := doJSON(ctx, c.httpClient, "LinkedIn", http.MethodPost, c.baseURL+"/v2/ugcPosts",
		map[string]string{
			"Authorization":             "Bearer " + c.accessToken,
			"X-Restli-Protocol-Version": "2.0.0",
		},
		payload, &created, linkedInErrorMessage)
	if err != nil {
		return "", errs.NewServiceUnreachableError("linkedin", err)
	}

	log.Info().Str("postId", created.ID).Msg("Successfully posted to LinkedIn")
	return created.ID, nil
}

func linkedInErrorMessage(body []byte) string {
	var errorResp LinkedInErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return ""
	}
	return errorResp.Message
}
