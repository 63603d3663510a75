package repository

import (
	"context"
	"time"

	"github.com/travelbuddy/journal-api/internal/domain/entity"
)

// StoryRepository defines travel-story persistence. Every read and write is
// scoped to the owning user: lookups take (id, ownerID) and return ErrNotFound
// when the pair does not match, so an ownership mismatch is indistinguishable
// from absence.
type StoryRepository interface {
	Create(ctx context.Context, s *entity.TravelStory) error
	GetOwned(ctx context.Context, id, ownerID string) (*entity.TravelStory, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.TravelStory, error)
	Update(ctx context.Context, s *entity.TravelStory) error
	Delete(ctx context.Context, id, ownerID string) error
	Search(ctx context.Context, ownerID, query string) ([]*entity.TravelStory, error)
	FilterByVisitedRange(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.TravelStory, error)
}
