package model

import "time"

// User 用户主体；PasswordHash 仅存 bcrypt 结果，明文不落库
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(80);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
