package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/minisocial/internal/api/middleware"
	"github.com/d60-Lab/minisocial/internal/service"
	"github.com/d60-Lab/minisocial/pkg/response"
)

// AddFriend 与目标用户互加好友（双向行同事务写入）
// @Summary 添加好友
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Param username path string true "目标用户名"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /add_friend/{username} [post]
func (h *Handler) AddFriend(c *gin.Context) {
	err := h.friendSvc.AddFriend(c.Request.Context(), middleware.ActorID(c), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrSelfFriend) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveFriend 解除好友关系；从未是好友时为 no-op
// @Summary 删除好友
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Param username path string true "目标用户名"
// @Success 200 {object} response.Response
// @Router /remove_friend/{username} [post]
func (h *Handler) RemoveFriend(c *gin.Context) {
	if err := h.friendSvc.RemoveFriend(c.Request.Context(), middleware.ActorID(c), c.Param("username")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

type removeFriendForm struct {
	Username string `json:"username" form:"username" binding:"required"`
}

// FriendsList GET 列出好友；POST 提交用户名删除该好友（沿用老路由语义）
// @Summary 好友列表
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /friends_list [get]
func (h *Handler) FriendsList(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := middleware.ActorID(c)

	if c.Request.Method == "POST" {
		var req removeFriendForm
		if err := c.ShouldBind(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.friendSvc.RemoveFriend(ctx, actorID, req.Username); err != nil {
			response.InternalError(c, err)
			return
		}
	}

	friends, err := h.friendSvc.ListFriends(ctx, actorID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	names := make([]string, len(friends))
	for i, f := range friends {
		names[i] = f.Username
	}
	response.Success(c, gin.H{"friends": names})
}
