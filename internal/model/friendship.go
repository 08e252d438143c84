package model

import "time"

// Friendship 好友关系的有向行；一条逻辑边固定写两行（A→B 与 B→A），
// 两行在同一事务内增删，保证对称不变量。
// idx_friend_pair = (user_id, friend_id) 复合唯一键，避免重复边
type Friendship struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    uint      `gorm:"index:idx_friend_user;index:idx_friend_pair,unique;not null"`
	FriendID  uint      `gorm:"not null;index:idx_friend_pair,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Friendship) TableName() string { return "friendships" }
