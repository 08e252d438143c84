package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/d60-Lab/minisocial/internal/model"
	"github.com/d60-Lab/minisocial/internal/repository"
	"github.com/d60-Lab/minisocial/pkg/logger"
)

var (
	ErrSelfFriend = errors.New("cannot befriend self")
)

// FriendshipService 好友关系服务；边是无向的，按用户名操作，
// 目标用户不存在时按前置条件失败处理为 no-op（与上游 UI 过滤约定一致）。
type FriendshipService interface {
	AddFriend(ctx context.Context, actorID uint, username string) error
	RemoveFriend(ctx context.Context, actorID uint, username string) error
	IsFriend(ctx context.Context, a, b uint) (bool, error)
	ListFriends(ctx context.Context, userID uint) ([]*model.User, error)
}

type friendshipService struct {
	friendRepo repository.FriendshipRepository
	userRepo   repository.UserRepository
}

func NewFriendshipService(friendRepo repository.FriendshipRepository, userRepo repository.UserRepository) FriendshipService {
	return &friendshipService{friendRepo: friendRepo, userRepo: userRepo}
}

func (s *friendshipService) AddFriend(ctx context.Context, actorID uint, username string) error {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target == nil {
		logger.Warn("add_friend target not found", zap.String("username", username))
		return nil
	}
	if target.ID == actorID {
		return ErrSelfFriend
	}
	return s.friendRepo.Create(ctx, actorID, target.ID)
}

func (s *friendshipService) RemoveFriend(ctx context.Context, actorID uint, username string) error {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target == nil {
		logger.Warn("remove_friend target not found", zap.String("username", username))
		return nil
	}
	if target.ID == actorID {
		return nil
	}
	return s.friendRepo.Delete(ctx, actorID, target.ID)
}

func (s *friendshipService) IsFriend(ctx context.Context, a, b uint) (bool, error) {
	if a == b {
		return false, nil
	}
	return s.friendRepo.Exists(ctx, a, b)
}

func (s *friendshipService) ListFriends(ctx context.Context, userID uint) ([]*model.User, error) {
	ids, err := s.friendRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByIDs(ctx, ids)
}
