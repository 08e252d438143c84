package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/minisocial/internal/api/middleware"
	"github.com/d60-Lab/minisocial/internal/service"
	"github.com/d60-Lab/minisocial/pkg/response"
)

type addPostRequest struct {
	Content string `json:"content" form:"post_content" binding:"required"`
}

// AddPost 以当前用户身份发帖
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body addPostRequest true "帖子内容"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /add_post [post]
func (h *Handler) AddPost(c *gin.Context) {
	var req addPostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postSvc.Publish(c.Request.Context(), middleware.ActorID(c), req.Content)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"id": post.ID})
}
