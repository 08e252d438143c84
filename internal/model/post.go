package model

import "time"

// Post 内容主体；创建后不可变，CreatedAt 由系统时钟（UTC）赋值
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index:idx_post_author;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Post) TableName() string { return "posts" }

// TimeLayout 展示层时间格式（分钟粒度）
const TimeLayout = "02-01-2006, 15:04"

// PostView 帖子的只读投影，冗余作者用户名用于展示；排序只用 CreatedAt，
// 展示字符串跨月份字典序不单调，不能作比较键。
type PostView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	CreatedAt string    `json:"created_at"`
	Instant   time.Time `json:"-"`
}

// NewPostView 组装投影
func NewPostView(p *Post, username string) PostView {
	return PostView{
		ID:        p.ID,
		Content:   p.Content,
		Username:  username,
		CreatedAt: p.CreatedAt.UTC().Format(TimeLayout),
		Instant:   p.CreatedAt,
	}
}
