package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/minisocial/internal/model"
)

// FriendshipRepository 边存储：一条逻辑边对应两条有向行，增删在同一事务内完成，
// 事务中途崩溃不会留下单向边。
type FriendshipRepository interface {
	Create(ctx context.Context, userID, friendID uint) error
	Delete(ctx context.Context, userID, friendID uint) error
	Exists(ctx context.Context, userID, friendID uint) (bool, error)
	ListFriendIDs(ctx context.Context, userID uint) ([]uint, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Create(ctx context.Context, userID, friendID uint) error {
	rows := []model.Friendship{
		{ID: uuid.New().String(), UserID: userID, FriendID: friendID},
		{ID: uuid.New().String(), UserID: friendID, FriendID: userID},
	}
	// 幂等：重复添加不报错；两行同事务落地
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *friendshipRepository) Delete(ctx context.Context, userID, friendID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).
			Delete(&model.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, userID).
			Delete(&model.Friendship{}).Error
	})
}

func (r *friendshipRepository) Exists(ctx context.Context, userID, friendID uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *friendshipRepository) ListFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.Friendship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}
