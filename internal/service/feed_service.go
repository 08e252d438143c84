package service

import (
	"context"
	"errors"
	"sort"

	"github.com/d60-Lab/minisocial/internal/model"
	"github.com/d60-Lab/minisocial/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// FeedService 信息流组装：主页流（自己 + 好友）与发现流（补集）。
// 两条路径统一按落库时刻倒序（id 兜底），不用展示字符串作比较键。
type FeedService interface {
	ComposeFeed(ctx context.Context, actorID uint) ([]model.PostView, error)
	ComposeDiscovery(ctx context.Context, actorID uint) ([]model.PostView, error)
	ListUserPosts(ctx context.Context, username string) ([]model.PostView, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	friendRepo repository.FriendshipRepository
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, friendRepo repository.FriendshipRepository) FeedService {
	return &feedService{postRepo: postRepo, userRepo: userRepo, friendRepo: friendRepo}
}

func (s *feedService) ComposeFeed(ctx context.Context, actorID uint) ([]model.PostView, error) {
	friendIDs, err := s.friendRepo.ListFriendIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	authors := append([]uint{actorID}, friendIDs...)
	posts, err := s.postRepo.ListByAuthors(ctx, authors)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, posts)
}

func (s *feedService) ComposeDiscovery(ctx context.Context, actorID uint) ([]model.PostView, error) {
	friendIDs, err := s.friendRepo.ListFriendIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	excluded := append([]uint{actorID}, friendIDs...)
	posts, err := s.postRepo.ListExcludingAuthors(ctx, excluded)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, posts)
}

func (s *feedService) ListUserPosts(ctx context.Context, username string) ([]model.PostView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	posts, err := s.postRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	views := make([]model.PostView, len(posts))
	for i, p := range posts {
		views[i] = model.NewPostView(p, user.Username)
	}
	return views, nil
}

// project 批量反查作者用户名并组装投影；仓库层已按时间倒序返回，
// 合并多作者结果后再排一次以固化顺序。
func (s *feedService) project(ctx context.Context, posts []*model.Post) ([]model.PostView, error) {
	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}
	users, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	views := make([]model.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, model.NewPostView(p, names[p.AuthorID]))
	}
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].Instant.Equal(views[j].Instant) {
			return views[i].Instant.After(views[j].Instant)
		}
		return views[i].ID > views[j].ID
	})
	return views, nil
}
