package router

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"community/internal/auth"
	"community/internal/config"
	"community/internal/handler"
	"community/internal/model"
	"community/internal/render"
	"community/internal/repository"
	"community/internal/service"
	"community/internal/upload"
)

// memorySessionStore stands in for Redis in tests.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]uint
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]uint)}
}

func (s *memorySessionStore) StoreSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *memorySessionStore) GetSession(ctx context.Context, sessionID string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return 0, auth.ErrSessionNotFound
	}
	return userID, nil
}

func (s *memorySessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var _ auth.SessionStoreInterface = (*memorySessionStore)(nil)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.CommentLike{},
	))

	cfg := &config.Config{
		StaticDir: filepath.Join(dir, "static"),
		UploadDir: filepath.Join(dir, "static", "uploads"),
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	jwtService := auth.NewJWTService("test-secret")
	sessionStore := newMemorySessionStore()

	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	postService := service.NewPostService(postRepo, uploads)
	commentService := service.NewCommentService(commentRepo)
	userService := service.NewUserService(userRepo, postRepo)

	e := echo.New()
	renderer, err := render.New()
	require.NoError(t, err)
	e.Renderer = renderer

	Register(
		e,
		cfg,
		authService,
		handler.NewAuthHandler(authService),
		handler.NewPostHandler(postService, commentService),
		handler.NewUserHandler(userService),
		handler.NewSearchHandler(postService),
	)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := srv.Client()
	client.Jar = jar
	return client
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRegisterTwiceFails(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	form := url.Values{"username": {"alice"}, "password": {"pw1234"}}

	resp := postForm(t, client, srv.URL+"/register", form)
	readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode) // redirected to /login

	resp = postForm(t, client, srv.URL+"/register", form)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "username exists")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	postForm(t, client, srv.URL+"/register", url.Values{"username": {"alice"}, "password": {"pw1234"}}).Body.Close()

	resp := postForm(t, client, srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "invalid credentials")

	resp = postForm(t, client, srv.URL+"/login", url.Values{"username": {"nobody"}, "password": {"pw1234"}})
	body = readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "invalid credentials", "unknown user and wrong password are indistinguishable")
}

func TestUnknownPostAndProfileReturn404(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	resp, err := client.Get(srv.URL + "/post/999")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/user/nobody")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Full scenario: register alice, log in, post, comment, like twice.
func TestForumScenario(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	// register + login
	postForm(t, client, srv.URL+"/register", url.Values{"username": {"alice"}, "password": {"pw1234"}}).Body.Close()
	resp := postForm(t, client, srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"pw1234"}})
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "alice", "front page shows the signed-in user")

	// create a post
	resp = postForm(t, client, srv.URL+"/post/new", url.Values{"title": {"Hello"}, "body": {"first post"}})
	body = readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hello")

	// detail shows the title and no comments yet
	resp, err := client.Get(srv.URL + "/post/1")
	require.NoError(t, err)
	body = readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hello")
	assert.Contains(t, body, "No comments yet.")

	// comment as alice
	resp = postForm(t, client, srv.URL+"/post/1", url.Values{"comment": {"Nice!"}})
	body = readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Nice!")
	assert.NotContains(t, body, "No comments yet.")

	// like once
	resp, err = client.Get(srv.URL + "/post/1/like_comment/1")
	require.NoError(t, err)
	body = readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "1 likes")

	// like again: still one
	resp, err = client.Get(srv.URL + "/post/1/like_comment/1")
	require.NoError(t, err)
	body = readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "1 likes")
	assert.NotContains(t, body, "2 likes")
}

func TestSearchPage(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	postForm(t, client, srv.URL+"/register", url.Values{"username": {"alice"}, "password": {"pw1234"}}).Body.Close()
	postForm(t, client, srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"pw1234"}}).Body.Close()
	postForm(t, client, srv.URL+"/post/new", url.Values{"title": {"Gophers ahoy"}, "body": {"x"}}).Body.Close()
	postForm(t, client, srv.URL+"/post/new", url.Values{"title": {"Other"}, "body": {"y"}}).Body.Close()

	resp, err := client.Get(srv.URL + "/search?q=Gophers")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Gophers ahoy")
	assert.NotContains(t, body, "Other")

	// empty query renders without results and without error
	resp, err = client.Get(srv.URL + "/search?q=")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "Results for")
}

func TestLogoutClearsSession(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	postForm(t, client, srv.URL+"/register", url.Values{"username": {"alice"}, "password": {"pw1234"}}).Body.Close()
	postForm(t, client, srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"pw1234"}}).Body.Close()

	resp, err := client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	readBody(t, resp)

	// creating a post now redirects to the login page
	resp, err = client.Get(srv.URL + "/post/new")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.True(t, strings.Contains(body, "Log in"), "expected to land on the login page")
}
