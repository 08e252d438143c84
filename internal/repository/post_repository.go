package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/minisocial/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	ListByAuthor(ctx context.Context, authorID uint) ([]*model.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint) ([]*model.Post, error)
	ListExcludingAuthors(ctx context.Context, authorIDs []uint) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint) ([]*model.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}

// ListExcludingAuthors 补集查询（发现页）：作者不在给定集合内的全部帖子
func (r *postRepository) ListExcludingAuthors(ctx context.Context, authorIDs []uint) ([]*model.Post, error) {
	var res []*model.Post
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if len(authorIDs) > 0 {
		q = q.Where("author_id NOT IN ?", authorIDs)
	}
	err := q.Find(&res).Error
	return res, err
}
