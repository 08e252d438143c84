package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/d60-Lab/minisocial/internal/model"
	"github.com/d60-Lab/minisocial/internal/repository"
)

var ErrEmptyContent = errors.New("post content must not be empty")

// PostService 发帖；时间戳由系统时钟（UTC）按分钟粒度赋值，调用方不可指定
type PostService interface {
	Publish(ctx context.Context, authorID uint, content string) (*model.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo, now: time.Now}
}

func (s *postService) Publish(ctx context.Context, authorID uint, content string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	post := &model.Post{
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: s.now().UTC().Truncate(time.Minute),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
