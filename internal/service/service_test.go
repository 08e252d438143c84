package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/minisocial/internal/model"
	"github.com/d60-Lab/minisocial/internal/repository"
)

type testEnv struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	friendRepo repository.FriendshipRepository
	postRepo   repository.PostRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Friendship{}, &model.Post{}))
	return &testEnv{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		friendRepo: repository.NewFriendshipRepository(db),
		postRepo:   repository.NewPostRepository(db),
	}
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) post(t *testing.T, authorID uint, content string, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{AuthorID: authorID, Content: content, CreatedAt: at.UTC()}
	require.NoError(t, e.db.Create(p).Error)
	return p
}
