package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/minisocial/internal/api/middleware"
	"github.com/d60-Lab/minisocial/internal/service"
	"github.com/d60-Lab/minisocial/pkg/response"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required,username,min=4,max=20"`
	Password string `json:"password" binding:"required,min=4,max=20"`
}

// Register 注册新用户
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body credentialsRequest true "用户名与密码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"id": user.ID, "username": user.Username})
}

// Login 登录，签发会话 token
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body credentialsRequest true "用户名与密码"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 401 {object} response.Response
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}

// Logout 注销当前会话
// @Summary 注销
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), middleware.JTI(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
