package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/travelbuddy/journal-api/internal/application"
	"github.com/travelbuddy/journal-api/internal/domain/entity"
	"github.com/travelbuddy/journal-api/internal/domain/repository"
	handlers "github.com/travelbuddy/journal-api/internal/interface/http"
	"github.com/travelbuddy/journal-api/internal/router/modules"
	"github.com/travelbuddy/journal-api/pkg/helpers"
	"github.com/travelbuddy/journal-api/pkg/validation"
)

// ---- in-memory fakes -------------------------------------------------------

type memUserRepo struct {
	users []*entity.User
	seq   int
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("u%d", r.seq)
	u.CreatedOn = time.Now()
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, e := range r.users {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, e := range r.users {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memStoryRepo struct {
	stories []*entity.TravelStory
	seq     int
}

func (r *memStoryRepo) Create(ctx context.Context, s *entity.TravelStory) error {
	r.seq++
	s.ID = fmt.Sprintf("s%d", r.seq)
	s.CreatedOn = time.Unix(int64(r.seq), 0)
	cp := *s
	r.stories = append(r.stories, &cp)
	return nil
}

func (r *memStoryRepo) GetOwned(ctx context.Context, id, ownerID string) (*entity.TravelStory, error) {
	for _, s := range r.stories {
		if s.ID == id && s.UserID == ownerID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memStoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.TravelStory, error) {
	out := []*entity.TravelStory{}
	for _, s := range r.stories {
		if s.UserID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memStoryRepo) Update(ctx context.Context, s *entity.TravelStory) error {
	for i, e := range r.stories {
		if e.ID == s.ID && e.UserID == s.UserID {
			cp := *s
			r.stories[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memStoryRepo) Delete(ctx context.Context, id, ownerID string) error {
	for i, e := range r.stories {
		if e.ID == id && e.UserID == ownerID {
			r.stories = append(r.stories[:i], r.stories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memStoryRepo) Search(ctx context.Context, ownerID, query string) ([]*entity.TravelStory, error) {
	q := strings.ToLower(query)
	out := []*entity.TravelStory{}
	for _, s := range r.stories {
		if s.UserID != ownerID {
			continue
		}
		if strings.Contains(strings.ToLower(s.Title), q) ||
			strings.Contains(strings.ToLower(s.Story), q) ||
			strings.Contains(strings.ToLower(s.VisitedLocation), q) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memStoryRepo) FilterByVisitedRange(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.TravelStory, error) {
	out := []*entity.TravelStory{}
	for _, s := range r.stories {
		if s.UserID != ownerID {
			continue
		}
		if !s.VisitedDate.Before(from) && !s.VisitedDate.After(to) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memCleaner struct {
	urls []string
}

func (c *memCleaner) Enqueue(ctx context.Context, imageURL string) {
	c.urls = append(c.urls, imageURL)
}

// ---- test server -----------------------------------------------------------

type testServer struct {
	engine  *gin.Engine
	jwt     *helpers.TokenManager
	cleaner *memCleaner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()
	logger := logrus.New()

	jwt := helpers.NewTokenManager("test-secret", 72*time.Hour)
	cleaner := &memCleaner{}

	userSvc := application.NewUserService(&memUserRepo{}, jwt, nil, logger)
	storySvc := application.NewStoryService(&memStoryRepo{}, cleaner, logger, "http://localhost:8000/assets/placeholder.png")

	engine := gin.New()
	root := engine.Group("/")
	modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt).Register(root)
	modules.NewStoryModule(handlers.NewStoryHandler(storySvc, logger), jwt).Register(root)

	return &testServer{engine: engine, jwt: jwt, cleaner: cleaner}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (ts *testServer) register(t *testing.T, name, email string) string {
	t.Helper()
	w, body := ts.do(t, http.MethodPost, "/create-account", "", gin.H{
		"fullName": name, "email": email, "password": "pw1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func (ts *testServer) addStory(t *testing.T, token string, payload gin.H) string {
	t.Helper()
	w, body := ts.do(t, http.MethodPost, "/add-travel-story", token, payload)
	require.Equal(t, http.StatusCreated, w.Code)
	story := body["story"].(map[string]any)
	return story["id"].(string)
}

func parisPayload() gin.H {
	return gin.H{
		"title":           "Paris",
		"story":           "Saw the tower",
		"visitedLocation": "Paris",
		"imageUrl":        "http://localhost:8000/uploads/p.png",
		"visitedDate":     1700000000000,
	}
}

// ---- account routes --------------------------------------------------------

func TestCreateAccountValidation(t *testing.T) {
	ts := newTestServer(t)

	w, body := ts.do(t, http.MethodPost, "/create-account", "", gin.H{"email": "ann@x.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, true, body["error"])
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann@x.com")

	w, _ := ts.do(t, http.MethodPost, "/create-account", "", gin.H{
		"fullName": "Another Ann", "email": "ann@x.com", "password": "pw2",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndGetUser(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann@x.com")

	w, body := ts.do(t, http.MethodPost, "/login", "", gin.H{"email": "ann@x.com", "password": "pw1"})
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	require.Equal(t, "Ann", user["fullName"])
	require.Equal(t, "ann@x.com", user["email"])
	require.NotContains(t, user, "password")
	token := body["accessToken"].(string)

	w, body = ts.do(t, http.MethodGet, "/get-user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user = body["user"].(map[string]any)
	require.Equal(t, "ann@x.com", user["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann@x.com")

	w, _ := ts.do(t, http.MethodPost, "/login", "", gin.H{"email": "ann@x.com", "password": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/login", "", gin.H{"email": "ghost@x.com", "password": "pw1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- story routes ----------------------------------------------------------

func TestStoryRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/add-travel-story"},
		{http.MethodGet, "/get-all-stories"},
		{http.MethodPut, "/edit-story/s1"},
		{http.MethodDelete, "/delete-story/s1"},
		{http.MethodPut, "/update-is-favourite/s1"},
		{http.MethodGet, "/search?query=x"},
		{http.MethodGet, "/travel-stories/filter?startDate=0&endDate=1"},
	} {
		w, _ := ts.do(t, route.method, route.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestAddStoryValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ann", "ann@x.com")

	payload := parisPayload()
	delete(payload, "imageUrl")
	w, _ := ts.do(t, http.MethodPost, "/add-travel-story", token, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// non-numeric visited date is rejected, not coerced
	payload = parisPayload()
	payload["visitedDate"] = "yesterday"
	w, _ = ts.do(t, http.MethodPost, "/add-travel-story", token, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	payload = parisPayload()
	delete(payload, "visitedDate")
	w, _ = ts.do(t, http.MethodPost, "/add-travel-story", token, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddStoryAcceptsEpochZeroDate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ann", "ann@x.com")

	// an explicit 0 is a valid timestamp, not a missing field
	payload := parisPayload()
	payload["visitedDate"] = 0
	w, body := ts.do(t, http.MethodPost, "/add-travel-story", token, payload)
	require.Equal(t, http.StatusCreated, w.Code)
	story := body["story"].(map[string]any)
	require.Equal(t, "1970-01-01T00:00:00Z", story["visitedDate"])

	edit := parisPayload()
	edit["visitedDate"] = 0
	w, body = ts.do(t, http.MethodPut, "/edit-story/"+story["id"].(string), token, edit)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "1970-01-01T00:00:00Z", body["story"].(map[string]any)["visitedDate"])
}

func TestStoryLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ann", "ann@x.com")

	id := ts.addStory(t, token, parisPayload())

	w, body := ts.do(t, http.MethodGet, "/get-all-stories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stories := body["stories"].([]any)
	require.Len(t, stories, 1)
	first := stories[0].(map[string]any)
	require.Equal(t, false, first["isFavourite"])

	// favourite: false must bind (pointer field, not a zero-value reject)
	w, body = ts.do(t, http.MethodPut, "/update-is-favourite/"+id, token, gin.H{"isFavourite": false})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = ts.do(t, http.MethodPut, "/update-is-favourite/"+id, token, gin.H{"isFavourite": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["story"].(map[string]any)["isFavourite"])

	edit := parisPayload()
	edit["title"] = "Paris in spring"
	delete(edit, "imageUrl")
	w, body = ts.do(t, http.MethodPut, "/edit-story/"+id, token, edit)
	require.Equal(t, http.StatusOK, w.Code)
	story := body["story"].(map[string]any)
	require.Equal(t, "Paris in spring", story["title"])
	require.Equal(t, "http://localhost:8000/assets/placeholder.png", story["imageUrl"])

	w, _ = ts.do(t, http.MethodDelete, "/delete-story/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"http://localhost:8000/assets/placeholder.png"}, ts.cleaner.urls)

	w, body = ts.do(t, http.MethodGet, "/get-all-stories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, body["stories"])

	w, _ = ts.do(t, http.MethodDelete, "/delete-story/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoriesAreOwnerScoped(t *testing.T) {
	ts := newTestServer(t)
	tokenA := ts.register(t, "Ann", "ann@x.com")
	tokenB := ts.register(t, "Bob", "bob@x.com")

	idA := ts.addStory(t, tokenA, parisPayload())
	ts.addStory(t, tokenB, parisPayload())

	w, body := ts.do(t, http.MethodGet, "/get-all-stories", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stories := body["stories"].([]any)
	require.Len(t, stories, 1)
	require.NotEqual(t, idA, stories[0].(map[string]any)["id"])

	// B guessing A's id gets the same 404 as a nonexistent id
	w, _ = ts.do(t, http.MethodPut, "/edit-story/"+idA, tokenB, parisPayload())
	require.Equal(t, http.StatusNotFound, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/delete-story/"+idA, tokenB, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchAndFilter(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ann", "ann@x.com")
	ts.addStory(t, token, parisPayload())

	w, _ := ts.do(t, http.MethodGet, "/search", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, body := ts.do(t, http.MethodGet, "/search?query=tower", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["stories"].([]any), 1)

	w, body = ts.do(t, http.MethodGet, "/search?query=rome", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, body["stories"])

	w, _ = ts.do(t, http.MethodGet, "/travel-stories/filter?startDate=abc&endDate=1", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, body = ts.do(t, http.MethodGet, "/travel-stories/filter?startDate=1699999999999&endDate=1700000000001", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["stories"].([]any), 1)

	w, body = ts.do(t, http.MethodGet, "/travel-stories/filter?startDate=0&endDate=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, body["stories"])
}
