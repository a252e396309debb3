package journal

import (
	"time"

	"github.com/rpupo63/ambitious-journal-backend/models"
)

// PublishState is the stored status/published_at pair of a post.
// The zero value is a post that has never been saved.
type PublishState struct {
	Status      models.PostStatus
	PublishedAt *time.Time
}

// NextPublishedAt decides published_at for a post moving from current to requested.
//
//	draft/scheduled -> published   now
//	published       -> published   unchanged
//	any             -> draft       nil
//	any             -> scheduled   nil
//
// A published post that somehow lost its timestamp gets now, so the result
// always satisfies "non-nil iff published".
func NextPublishedAt(current PublishState, requested models.PostStatus, now time.Time) *time.Time {
	if requested != models.PostStatusPublished {
		return nil
	}
	if current.Status == models.PostStatusPublished && current.PublishedAt != nil {
		kept := *current.PublishedAt
		return &kept
	}
	return &now
}
