package journal

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
)

// CreateOrGetTag returns the tag whose slug matches name, creating it when
// absent. A stored tag keeps its original name.
func (s *Service) CreateOrGetTag(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValidationError("name", "tag name is required")
	}
	slug := GenerateSlug(name)
	if slug == "" {
		return nil, errs.NewDerivationError("name", name)
	}

	tag, err := s.tags.FindTagBySlug(ctx, slug)
	if err == nil {
		return tag, nil
	}
	if !errs.IsNotFound(err) {
		return nil, errs.NewStorageError("find", "tag", err)
	}

	tag = &models.Tag{Name: name, Slug: slug}
	if err := s.tags.CreateTag(ctx, tag); err != nil {
		// Someone else created the same slug between lookup and insert.
		if errs.IsUniqueConstraintViolationError(err) {
			if existing, findErr := s.tags.FindTagBySlug(ctx, slug); findErr == nil {
				return existing, nil
			}
		}
		return nil, errs.NewStorageError("create", "tag", err)
	}
	return tag, nil
}

// checkTagNames rejects names that cannot become a tag slug. It runs before
// the post is written; the tags themselves are only created afterwards.
func checkTagNames(names []string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if GenerateSlug(name) == "" {
			return errs.NewDerivationError("tag_names", name)
		}
	}
	return nil
}

// reconcileTags resolves the desired set and replaces the post's tags with it.
// The post row already exists, so any failure is a tags-phase error.
func (s *Service) reconcileTags(ctx context.Context, postID uuid.UUID, ids []uuid.UUID, names []string) error {
	tagIDs, err := s.resolveTags(ctx, ids, names)
	if err == nil {
		err = s.posts.ReplacePostTags(ctx, postID, tagIDs)
	}
	if err != nil {
		return errs.NewTagReconcileError(postID.String(), err)
	}
	return nil
}

// resolveTags builds the de-duplicated desired tag set from explicit IDs and
// names, creating tags for names seen for the first time.
func (s *Service) resolveTags(ctx context.Context, ids []uuid.UUID, names []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids)+len(names))
	desired := make([]uuid.UUID, 0, len(ids)+len(names))
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		desired = append(desired, id)
	}

	for _, id := range ids {
		add(id)
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tag, err := s.CreateOrGetTag(ctx, name)
		if err != nil {
			return nil, err
		}
		add(tag.ID)
	}
	return desired, nil
}

func (s *Service) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		return nil, errs.NewStorageError("list", "tags", err)
	}
	return tags, nil
}
