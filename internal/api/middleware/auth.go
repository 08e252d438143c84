package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/minisocial/internal/service"
	"github.com/d60-Lab/minisocial/pkg/response"
)

const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyJTI    = "auth_jti"
)

// Auth 解析 Bearer token 并把当事人写入请求上下文；
// 未认证统一 401（JSON 接口不做 302，跳转交给展示层）。
func Auth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}
		userID, jti, err := authSvc.Verify(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyJTI, jti)
		c.Next()
	}
}

// ActorID 取出已认证用户 id；仅在 Auth 之后的 handler 内调用
func ActorID(c *gin.Context) uint {
	return c.GetUint(ContextKeyUserID)
}

// JTI 取出当前会话标识
func JTI(c *gin.Context) string {
	return c.GetString(ContextKeyJTI)
}
