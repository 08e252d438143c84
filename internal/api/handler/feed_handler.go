package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/minisocial/internal/api/middleware"
	"github.com/d60-Lab/minisocial/internal/service"
	"github.com/d60-Lab/minisocial/pkg/response"
)

// HomePage 主页信息流：自己与好友的帖子，按时间倒序
// @Summary 主页信息流
// @Tags 信息流
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /home_page [get]
func (h *Handler) HomePage(c *gin.Context) {
	posts, err := h.feedSvc.ComposeFeed(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// UsersList 发现页：非好友（且非本人）作者的全部帖子
// @Summary 发现页信息流
// @Tags 信息流
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /users_list [get]
func (h *Handler) UsersList(c *gin.Context) {
	posts, err := h.feedSvc.ComposeDiscovery(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// Profile 查看某用户的帖子
// @Summary 用户主页
// @Tags 信息流
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /profile/{username} [get]
func (h *Handler) Profile(c *gin.Context) {
	username := c.Param("username")
	posts, err := h.feedSvc.ListUserPosts(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"username": username, "posts": posts})
}
