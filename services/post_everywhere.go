package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const syndicationTimeout = 60 * time.Second

// Platform is one place a published post gets cross-posted to.
type Platform interface {
	Name() string
	Publish(ctx context.Context, post models.Post) (string, error)
}

// Syndicator cross-posts newly published Journal entries. Its Syndicate
// method is used as the journal service's publish hook.
type Syndicator struct {
	platforms []Platform
	timeout   time.Duration
	logger    zerolog.Logger
	wg        sync.WaitGroup
}

func NewSyndicator(platforms ...Platform) *Syndicator {
	return &Syndicator{
		platforms: platforms,
		timeout:   syndicationTimeout,
		logger:    log.With().Str("service", "syndicator").Logger(),
	}
}

// Platforms names the configured targets.
func (s *Syndicator) Platforms() []string {
	names := make([]string, 0, len(s.platforms))
	for _, p := range s.platforms {
		names = append(names, p.Name())
	}
	return names
}

// Syndicate starts cross-posting in the background and returns immediately.
// The request context is not used: the work outlives the request.
func (s *Syndicator) Syndicate(post models.Post) {
	if len(s.platforms) == 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.PostEverywhere(ctx, post); err != nil {
			s.logger.Error().Err(err).Str("postId", post.ID.String()).Msg("Syndication finished with failures")
		}
	}()
}

// Wait blocks until background syndications have finished.
func (s *Syndicator) Wait() {
	s.wg.Wait()
}

// PostEverywhere publishes to every platform concurrently. One platform
// failing does not stop the others; the failures are joined in the error.
func (s *Syndicator) PostEverywhere(ctx context.Context, post models.Post) error {
	var (
		mu        sync.Mutex
		failures  []string
		successes []string
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, platform := range s.platforms {
		g.Go(func() error {
			ref, err := platform.Publish(ctx, post)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Error().Err(err).Str("platform", platform.Name()).Msg("Failed to syndicate post")
				failures = append(failures, fmt.Sprintf("%s: %v", platform.Name(), err))
				return nil
			}
			s.logger.Info().Str("platform", platform.Name()).Str("ref", ref).Msg("Syndicated post")
			successes = append(successes, platform.Name())
			return nil
		})
	}
	_ = g.Wait()

	if len(successes) > 0 {
		s.logger.Info().Strs("platforms", successes).Str("slug", post.Slug).Msg("Successfully posted to platforms")
	}
	if len(failures) > 0 {
		return errs.NewPartialFailureError("syndication", failures)
	}
	return nil
}
