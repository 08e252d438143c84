package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/minisocial/config"
	"github.com/d60-Lab/minisocial/internal/api/handler"
	"github.com/d60-Lab/minisocial/internal/api/router"
	"github.com/d60-Lab/minisocial/internal/cache"
	"github.com/d60-Lab/minisocial/internal/model"
	"github.com/d60-Lab/minisocial/internal/repository"
	"github.com/d60-Lab/minisocial/internal/service"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Friendship{}, &model.Post{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
		Otel:   config.OtelConfig{ServiceName: "minisocial-test"},
	}

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendshipRepository(db)
	postRepo := repository.NewPostRepository(db)
	sessions := cache.NewSessionStore(rdb, cfg.JWT.TTL)

	authSvc := service.NewAuthService(userRepo, sessions, cfg.JWT.Secret, cfg.JWT.TTL)
	friendSvc := service.NewFriendshipService(friendRepo, userRepo)
	feedSvc := service.NewFeedService(postRepo, userRepo, friendRepo)
	postSvc := service.NewPostService(postRepo)

	h := handler.New(authSvc, friendSvc, feedSvc, postSvc)
	return router.New(cfg, h, authSvc)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func register(t *testing.T, r *gin.Engine, username, password string) {
	t.Helper()
	w, _ := do(t, r, "POST", "/register", "", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusOK, w.Code)
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w, env := do(t, r, "POST", "/login", "", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func feedContents(t *testing.T, env envelope) []string {
	t.Helper()
	var data struct {
		Posts []model.PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	out := make([]string, len(data.Posts))
	for i, p := range data.Posts {
		out[i] = p.Content
	}
	return out
}

func TestAuthRequiredOnMutationRoutes(t *testing.T) {
	r := newTestServer(t)
	for _, route := range []struct{ method, path string }{
		{"GET", "/home_page"},
		{"GET", "/users_list"},
		{"GET", "/friends_list"},
		{"POST", "/add_friend/alice01"},
		{"POST", "/add_post"},
		{"POST", "/logout"},
	} {
		w, env := do(t, r, route.method, route.path, "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
		require.Equal(t, "login required", env.Message)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := newTestServer(t)

	// 用户名不足 4 字符
	w, _ := do(t, r, "POST", "/register", "", `{"username":"ab","password":"pw123"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	register(t, r, "alice01", "pw123")
	w, env := do(t, r, "POST", "/register", "", `{"username":"alice01","password":"pw123"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, env.Message, "already exists")
}

func TestLoginFailureIsGeneric(t *testing.T) {
	r := newTestServer(t)
	register(t, r, "alice01", "pw123")

	w1, env1 := do(t, r, "POST", "/login", "", `{"username":"nobody1","password":"pw123"}`)
	w2, env2 := do(t, r, "POST", "/login", "", `{"username":"alice01","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w1.Code)
	require.Equal(t, http.StatusUnauthorized, w2.Code)
	require.Equal(t, env1.Message, env2.Message)
}

func TestLogoutRevokesToken(t *testing.T) {
	r := newTestServer(t)
	register(t, r, "alice01", "pw123")
	token := login(t, r, "alice01", "pw123")

	w, _ := do(t, r, "POST", "/logout", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, "GET", "/home_page", token, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// §8 场景：alice 发帖 → bob 的发现页可见；互加好友后移入 bob 的主页流
func TestFeedScenario(t *testing.T) {
	r := newTestServer(t)
	register(t, r, "alice01", "pw123")
	register(t, r, "bob001", "pw123")
	aliceToken := login(t, r, "alice01", "pw123")
	bobToken := login(t, r, "bob001", "pw123")

	w, _ := do(t, r, "POST", "/add_post", aliceToken, `{"content":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	_, env := do(t, r, "GET", "/users_list", bobToken, "")
	require.Equal(t, []string{"hello"}, feedContents(t, env))

	_, env = do(t, r, "GET", "/home_page", bobToken, "")
	require.Empty(t, feedContents(t, env))

	_, env = do(t, r, "GET", "/home_page", aliceToken, "")
	require.Equal(t, []string{"hello"}, feedContents(t, env))

	w, _ = do(t, r, "POST", "/add_friend/bob001", aliceToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	_, env = do(t, r, "GET", "/home_page", bobToken, "")
	require.Equal(t, []string{"hello"}, feedContents(t, env))

	_, env = do(t, r, "GET", "/users_list", bobToken, "")
	require.Empty(t, feedContents(t, env))

	// 好友列表两侧一致
	_, env = do(t, r, "GET", "/friends_list", bobToken, "")
	var data struct {
		Friends []string `json:"friends"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, []string{"alice01"}, data.Friends)
}

func TestAddFriendSelfRejectedOverHTTP(t *testing.T) {
	r := newTestServer(t)
	register(t, r, "alice01", "pw123")
	token := login(t, r, "alice01", "pw123")

	w, _ := do(t, r, "POST", "/add_friend/alice01", token, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveFriendNeverFriendsIsNoop(t *testing.T) {
	r := newTestServer(t)
	register(t, r, "alice01", "pw123")
	register(t, r, "bob001", "pw123")
	token := login(t, r, "alice01", "pw123")

	w, _ := do(t, r, "POST", "/remove_friend/bob001", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	_, env := do(t, r, "GET", "/friends_list", token, "")
	var data struct {
		Friends []string `json:"friends"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Empty(t, data.Friends)
}

func TestProfileShowsUserPosts(t *testing.T) {
	r := newTestServer(t)
	register(t, r, "alice01", "pw123")
	register(t, r, "bob001", "pw123")
	aliceToken := login(t, r, "alice01", "pw123")
	bobToken := login(t, r, "bob001", "pw123")

	w, _ := do(t, r, "POST", "/add_post", aliceToken, `{"content":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	_, env := do(t, r, "GET", "/profile/alice01", bobToken, "")
	var data struct {
		Username string           `json:"username"`
		Posts    []model.PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "alice01", data.Username)
	require.Len(t, data.Posts, 1)
	require.Equal(t, "alice01", data.Posts[0].Username)

	w, _ = do(t, r, "GET", "/profile/nobody1", bobToken, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddPostRejectsEmptyContent(t *testing.T) {
	r := newTestServer(t)
	register(t, r, "alice01", "pw123")
	token := login(t, r, "alice01", "pw123")

	w, _ := do(t, r, "POST", "/add_post", token, `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, "POST", "/add_post", token, `{"content":"  "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
