package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/minisocial/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Friendship{}, &model.Post{}))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, usernames ...string) []*model.User {
	t.Helper()
	users := make([]*model.User, len(usernames))
	for i, name := range usernames {
		u := &model.User{Username: name, PasswordHash: "x"}
		require.NoError(t, db.Create(u).Error)
		users[i] = u
	}
	return users
}

func directedEdgeCount(t *testing.T, db *gorm.DB, from, to uint) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", from, to).
		Count(&cnt).Error)
	return cnt
}

func TestFriendshipCreateIsSymmetric(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, "alice01", "bob001")
	a, b := users[0].ID, users[1].ID

	require.NoError(t, repo.Create(ctx, a, b))

	require.EqualValues(t, 1, directedEdgeCount(t, db, a, b))
	require.EqualValues(t, 1, directedEdgeCount(t, db, b, a))

	ab, err := repo.Exists(ctx, a, b)
	require.NoError(t, err)
	ba, err := repo.Exists(ctx, b, a)
	require.NoError(t, err)
	require.True(t, ab)
	require.True(t, ba)
}

func TestFriendshipCreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, "alice01", "bob001")
	a, b := users[0].ID, users[1].ID

	require.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.Create(ctx, b, a))

	// 每个方向各一行，复合唯一键挡掉重复边
	require.EqualValues(t, 1, directedEdgeCount(t, db, a, b))
	require.EqualValues(t, 1, directedEdgeCount(t, db, b, a))
}

func TestFriendshipDeleteRemovesBothDirections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, "alice01", "bob001")
	a, b := users[0].ID, users[1].ID

	require.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.Delete(ctx, b, a))

	require.EqualValues(t, 0, directedEdgeCount(t, db, a, b))
	require.EqualValues(t, 0, directedEdgeCount(t, db, b, a))
}

func TestFriendshipDeleteNeverFriendsIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, "alice01", "bob001", "carol1")
	a, b, c := users[0].ID, users[1].ID, users[2].ID

	require.NoError(t, repo.Create(ctx, a, b))
	// a 与 c 从未是好友；删除不报错也不动现有边
	require.NoError(t, repo.Delete(ctx, a, c))

	require.EqualValues(t, 1, directedEdgeCount(t, db, a, b))
	require.EqualValues(t, 1, directedEdgeCount(t, db, b, a))
	require.EqualValues(t, 0, directedEdgeCount(t, db, a, c))
}

func TestListFriendIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, "alice01", "bob001", "carol1")
	a, b, c := users[0].ID, users[1].ID, users[2].ID

	require.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.Create(ctx, a, c))

	ids, err := repo.ListFriendIDs(ctx, a)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{b, c}, ids)

	ids, err = repo.ListFriendIDs(ctx, b)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{a}, ids)
}
