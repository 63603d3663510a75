package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/travelbuddy/journal-api/internal/domain/entity"
	repo "github.com/travelbuddy/journal-api/internal/domain/repository"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const profileCacheTTL = 15 * time.Minute

// UserService implements registration, login and profile lookup. Tokens are
// issued on register and login; the Redis client is optional and only backs a
// read-through profile cache.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.TokenManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.TokenManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger}
}

func profileKey(userID string) string {
	return "user:profile:" + userID
}

// cachedProfile is the Redis representation of a user; the password digest is
// deliberately not cached.
type cachedProfile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

// Register creates a new account and issues a session token. A taken email
// yields ErrEmailTaken whether detected by the pre-check or by the unique
// constraint on insert.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (*entity.User, string, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{FullName: fullName, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Login checks credentials and issues a fresh token. An unknown email and a
// wrong password fail with distinct errors; both map to 400 at the boundary.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// GetProfile resolves the authenticated identity to its stored record,
// consulting the Redis cache first. Accounts are immutable in this service,
// so the cache never needs invalidation. Cache failures degrade to a direct
// store read.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if s.Redis != nil {
		var cached cachedProfile
		hit, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(userID), &cached)
		if err != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("profile cache read failed")
		} else if hit {
			return &entity.User{ID: cached.ID, FullName: cached.FullName, Email: cached.Email, CreatedOn: cached.CreatedOn}, nil
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if s.Redis != nil {
		cached := cachedProfile{ID: u.ID, FullName: u.FullName, Email: u.Email, CreatedOn: u.CreatedOn}
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(u.ID), cached, profileCacheTTL); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("profile cache write failed")
		}
	}
	return u, nil
}
