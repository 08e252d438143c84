package router

import (
	"regexp"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/minisocial/config"
	_ "github.com/d60-Lab/minisocial/docs"
	"github.com/d60-Lab/minisocial/internal/api/handler"
	"github.com/d60-Lab/minisocial/internal/api/middleware"
	"github.com/d60-Lab/minisocial/internal/service"
	"github.com/d60-Lab/minisocial/pkg/response"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// New 注册全部路由；路径沿用老服务的对外契约
func New(cfg *config.Config, h *handler.Handler, authSvc service.AuthService) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware(cfg.Otel.ServiceName))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{"service": cfg.Otel.ServiceName})
	})

	// 匿名入口限流
	anon := r.Group("/", middleware.RateLimit(rate.Limit(5), 10))
	anon.POST("/register", h.Register)
	anon.POST("/login", h.Login)

	auth := r.Group("/", middleware.Auth(authSvc))
	auth.POST("/logout", h.Logout)
	auth.GET("/home_page", h.HomePage)
	auth.GET("/users_list", h.UsersList)
	auth.GET("/profile/:username", h.Profile)
	auth.GET("/friends_list", h.FriendsList)
	auth.POST("/friends_list", h.FriendsList)
	auth.POST("/add_friend/:username", h.AddFriend)
	auth.POST("/remove_friend/:username", h.RemoveFriend)
	auth.POST("/add_post", h.AddPost)

	return r
}
