package service

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "community/internal/errors"
	"community/internal/model"
	"community/internal/repository"
	"community/internal/upload"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.CommentLike{},
	))
	return db
}

func newTestPostService(t *testing.T, db *gorm.DB) PostService {
	t.Helper()
	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewPostService(repository.NewPostRepository(db), uploads)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Password: "x:y"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPostService_ListPage_Pagination(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db)
	user := createTestUser(t, db, "alice")

	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&model.Post{
			UserID:  user.ID,
			Title:   "post",
			Created: int64(1000 + i),
		}).Error)
	}

	tests := []struct {
		page    int
		wantLen int
	}{
		{1, 5},
		{2, 5},
		{3, 2},
		{4, 0}, // past the end, deliberately not clamped
	}
	for _, tt := range tests {
		posts, totalPages, err := svc.ListPage(context.Background(), tt.page)
		require.NoError(t, err)
		assert.Equal(t, 3, totalPages, "page %d", tt.page)
		assert.Len(t, posts, tt.wantLen, "page %d", tt.page)
	}
}

func TestPostService_ListPage_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db)
	user := createTestUser(t, db, "alice")

	require.NoError(t, db.Create(&model.Post{UserID: user.ID, Title: "old", Created: 100}).Error)
	require.NoError(t, db.Create(&model.Post{UserID: user.ID, Title: "new", Created: 200}).Error)

	posts, totalPages, err := svc.ListPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, totalPages)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Title)
	assert.Equal(t, "old", posts[1].Title)
	assert.Equal(t, "alice", posts[0].Username)
}

func TestPostService_Create_TruncatesTitle(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db)
	user := createTestUser(t, db, "alice")

	long := strings.Repeat("t", 250)
	post, err := svc.Create(context.Background(), user.ID, long, "body", nil)
	require.NoError(t, err)
	assert.Len(t, []rune(post.Title), 200)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Len(t, []rune(stored.Title), 200)
}

func TestPostService_Create_DisallowedImageDropped(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db)
	user := createTestUser(t, db, "alice")

	// Extension check happens before the file is opened, so a bare
	// header is enough here.
	image := &multipart.FileHeader{Filename: "payload.exe"}
	post, err := svc.Create(context.Background(), user.ID, "title", "body", image)
	require.NoError(t, err)
	assert.Nil(t, post.Image)
}

func TestPostService_Get(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db)
	user := createTestUser(t, db, "alice")

	created, err := svc.Create(context.Background(), user.ID, "Hello", "body", nil)
	require.NoError(t, err)

	post, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "alice", post.Username)

	_, err = svc.Get(context.Background(), created.ID+999)
	assert.Equal(t, apperrors.ErrPostNotFound, err)
}

func TestPostService_Search(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db)
	user := createTestUser(t, db, "alice")

	require.NoError(t, db.Create(&model.Post{UserID: user.ID, Title: "Gophers in production", Created: 100}).Error)
	require.NoError(t, db.Create(&model.Post{UserID: user.ID, Title: "Unrelated", Body: "nothing here", Created: 200}).Error)

	results, err := svc.Search(context.Background(), "Gophers")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Gophers in production", results[0].Title)
}

func TestPostService_Search_MatchesBody(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db)
	user := createTestUser(t, db, "alice")

	require.NoError(t, db.Create(&model.Post{UserID: user.ID, Title: "plain", Body: "needle inside", Created: 100}).Error)

	results, err := svc.Search(context.Background(), "needle")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

// mockPostRepository only records whether it was called; the empty-query
// short circuit must never reach storage.
type mockPostRepository struct {
	repository.PostRepository
	searched bool
}

func (m *mockPostRepository) Search(ctx context.Context, query string, limit int) ([]repository.PostWithAuthor, error) {
	m.searched = true
	return nil, nil
}

func TestPostService_Search_EmptyQuerySkipsStorage(t *testing.T) {
	repo := &mockPostRepository{}
	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)
	svc := NewPostService(repo, uploads)

	for _, q := range []string{"", "   "} {
		results, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.False(t, repo.searched)
}
