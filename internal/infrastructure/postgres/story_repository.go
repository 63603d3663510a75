package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/travelbuddy/journal-api/internal/domain/entity"
	"github.com/travelbuddy/journal-api/internal/domain/repository"
)

const storyColumns = `id, title, story, visited_location, image_url, visited_date, is_favourite, user_id, created_on`

type StoryRepository struct {
	pool *pgxpool.Pool
}

func NewStoryRepository(pool *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{pool: pool}
}

func (r *StoryRepository) Create(ctx context.Context, s *entity.TravelStory) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO travel_stories (title, story, visited_location, image_url, visited_date, is_favourite, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_on
	`, s.Title, s.Story, s.VisitedLocation, s.ImageURL, s.VisitedDate, s.IsFavourite, s.UserID)

	return row.Scan(&s.ID, &s.CreatedOn)
}

func (r *StoryRepository) GetOwned(ctx context.Context, id, ownerID string) (*entity.TravelStory, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+storyColumns+`
		FROM travel_stories
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	return scanStory(row)
}

// ListByOwner returns the owner's stories in creation order. Favourite-first
// ordering is applied by the service layer.
func (r *StoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.TravelStory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+storyColumns+`
		FROM travel_stories
		WHERE user_id = $1
		ORDER BY created_on, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectStories(rows)
}

func (r *StoryRepository) Update(ctx context.Context, s *entity.TravelStory) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE travel_stories
		SET title = $1, story = $2, visited_location = $3, image_url = $4, visited_date = $5, is_favourite = $6
		WHERE id = $7 AND user_id = $8
	`, s.Title, s.Story, s.VisitedLocation, s.ImageURL, s.VisitedDate, s.IsFavourite, s.ID, s.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StoryRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM travel_stories
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StoryRepository) Search(ctx context.Context, ownerID, query string) ([]*entity.TravelStory, error) {
	pattern := "%" + query + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT `+storyColumns+`
		FROM travel_stories
		WHERE user_id = $1
		  AND (title ILIKE $2 OR story ILIKE $2 OR visited_location ILIKE $2)
		ORDER BY created_on, id
	`, ownerID, pattern)
	if err != nil {
		return nil, err
	}
	return collectStories(rows)
}

func (r *StoryRepository) FilterByVisitedRange(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.TravelStory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+storyColumns+`
		FROM travel_stories
		WHERE user_id = $1 AND visited_date BETWEEN $2 AND $3
		ORDER BY created_on, id
	`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	return collectStories(rows)
}

func scanStory(row pgx.Row) (*entity.TravelStory, error) {
	s := &entity.TravelStory{}
	err := row.Scan(&s.ID, &s.Title, &s.Story, &s.VisitedLocation, &s.ImageURL,
		&s.VisitedDate, &s.IsFavourite, &s.UserID, &s.CreatedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func collectStories(rows pgx.Rows) ([]*entity.TravelStory, error) {
	defer rows.Close()
	out := []*entity.TravelStory{}
	for rows.Next() {
		s := &entity.TravelStory{}
		if err := rows.Scan(&s.ID, &s.Title, &s.Story, &s.VisitedLocation, &s.ImageURL,
			&s.VisitedDate, &s.IsFavourite, &s.UserID, &s.CreatedOn); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ repository.StoryRepository = (*StoryRepository)(nil)
