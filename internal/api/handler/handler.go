package handler

import (
	"github.com/d60-Lab/minisocial/internal/service"
)

// Handler 聚合各服务，供路由注册
type Handler struct {
	authSvc   service.AuthService
	friendSvc service.FriendshipService
	feedSvc   service.FeedService
	postSvc   service.PostService
}

func New(authSvc service.AuthService, friendSvc service.FriendshipService, feedSvc service.FeedService, postSvc service.PostService) *Handler {
	return &Handler{authSvc: authSvc, friendSvc: friendSvc, feedSvc: feedSvc, postSvc: postSvc}
}
