package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/travelbuddy/journal-api/internal/cleanup"
	"github.com/travelbuddy/journal-api/internal/domain/entity"
	repo "github.com/travelbuddy/journal-api/internal/domain/repository"
)

var ErrStoryNotFound = errors.New("travel story not found")

// StoryInput carries the caller-supplied story fields. VisitedDate is epoch
// milliseconds as received on the wire.
type StoryInput struct {
	Title           string
	Story           string
	VisitedLocation string
	ImageURL        string
	VisitedDate     int64
}

// StoryService owns the travel-story lifecycle. Every operation is scoped to
// the requesting owner; an ownership mismatch surfaces as ErrStoryNotFound,
// identical to a nonexistent id.
type StoryService struct {
	Repo           repo.StoryRepository
	Cleanup        cleanup.Enqueuer
	Logger         *logrus.Logger
	PlaceholderURL string
}

func NewStoryService(r repo.StoryRepository, cl cleanup.Enqueuer, logger *logrus.Logger, placeholderURL string) *StoryService {
	return &StoryService{Repo: r, Cleanup: cl, Logger: logger, PlaceholderURL: placeholderURL}
}

func (s *StoryService) Create(ctx context.Context, ownerID string, in StoryInput) (*entity.TravelStory, error) {
	st := &entity.TravelStory{
		Title:           in.Title,
		Story:           in.Story,
		VisitedLocation: in.VisitedLocation,
		ImageURL:        in.ImageURL,
		VisitedDate:     time.UnixMilli(in.VisitedDate).UTC(),
		IsFavourite:     false,
		UserID:          ownerID,
	}
	if err := s.Repo.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	return st, nil
}

// List returns every story owned by ownerID, favourites first.
func (s *StoryService) List(ctx context.Context, ownerID string) ([]*entity.TravelStory, error) {
	stories, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return favouritesFirst(stories), nil
}

// Edit overwrites every field of the owned story. An omitted image reference
// is substituted with the placeholder asset instead of failing.
func (s *StoryService) Edit(ctx context.Context, ownerID, storyID string, in StoryInput) (*entity.TravelStory, error) {
	st, err := s.resolveOwned(ctx, ownerID, storyID)
	if err != nil {
		return nil, err
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = s.PlaceholderURL
	}

	st.Title = in.Title
	st.Story = in.Story
	st.VisitedLocation = in.VisitedLocation
	st.ImageURL = imageURL
	st.VisitedDate = time.UnixMilli(in.VisitedDate).UTC()

	if err := s.Repo.Update(ctx, st); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("update story: %w", err)
	}
	return st, nil
}

// Delete removes the owned story, then schedules deletion of its image asset.
// The cleanup is best-effort and never affects the reported outcome.
func (s *StoryService) Delete(ctx context.Context, ownerID, storyID string) error {
	st, err := s.resolveOwned(ctx, ownerID, storyID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, storyID, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrStoryNotFound
		}
		return fmt.Errorf("delete story: %w", err)
	}
	s.Cleanup.Enqueue(ctx, st.ImageURL)
	return nil
}

// SetFavourite overwrites the favourite flag. Setting the current value again
// is a no-op in effect.
func (s *StoryService) SetFavourite(ctx context.Context, ownerID, storyID string, isFavourite bool) (*entity.TravelStory, error) {
	st, err := s.resolveOwned(ctx, ownerID, storyID)
	if err != nil {
		return nil, err
	}
	st.IsFavourite = isFavourite
	if err := s.Repo.Update(ctx, st); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("update story: %w", err)
	}
	return st, nil
}

// Search matches the owner's stories whose title, narrative or location
// contains query as a case-insensitive substring.
func (s *StoryService) Search(ctx context.Context, ownerID, query string) ([]*entity.TravelStory, error) {
	stories, err := s.Repo.Search(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("search stories: %w", err)
	}
	return favouritesFirst(stories), nil
}

// FilterByDateRange returns the owner's stories visited within [startMs, endMs].
func (s *StoryService) FilterByDateRange(ctx context.Context, ownerID string, startMs, endMs int64) ([]*entity.TravelStory, error) {
	from := time.UnixMilli(startMs).UTC()
	to := time.UnixMilli(endMs).UTC()
	stories, err := s.Repo.FilterByVisitedRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("filter stories: %w", err)
	}
	return favouritesFirst(stories), nil
}

// resolveOwned keeps the "ownership mismatch = not found" policy in one place.
func (s *StoryService) resolveOwned(ctx context.Context, ownerID, storyID string) (*entity.TravelStory, error) {
	st, err := s.Repo.GetOwned(ctx, storyID, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("resolve story: %w", err)
	}
	return st, nil
}

// favouritesFirst places flagged stories before unflagged ones, preserving
// the repository's creation order within each group.
func favouritesFirst(stories []*entity.TravelStory) []*entity.TravelStory {
	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].IsFavourite && !stories[j].IsFavourite
	})
	return stories
}
