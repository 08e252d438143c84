package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/minisocial/internal/cache"
	"github.com/d60-Lab/minisocial/internal/model"
	"github.com/d60-Lab/minisocial/internal/repository"
	"github.com/d60-Lab/minisocial/pkg/logger"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	// 不区分用户不存在与密码错误，避免泄露账号存在性
	ErrBadCredentials = errors.New("invalid username or password")
	ErrInvalidToken   = errors.New("invalid or expired token")
)

// AuthService 注册 / 登录 / 会话管理；密码仅存 bcrypt 哈希，
// 会话为 JWT + redis 登记（jti），注销即删登记。
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, jti string) error
	Verify(ctx context.Context, token string) (uint, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions *cache.SessionStore
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions *cache.SessionStore, secret string, ttl time.Duration) AuthService {
	return &authService{userRepo: userRepo, sessions: sessions, secret: []byte(secret), ttl: ttl}
}

func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUsername
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{Username: username, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", username))
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrBadCredentials
	}

	jti := uuid.New().String()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Put(ctx, jti, user.ID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *authService) Logout(ctx context.Context, jti string) error {
	return s.sessions.Delete(ctx, jti)
}

// Verify 校验签名与会话登记，返回 (userID, jti)
func (s *authService) Verify(ctx context.Context, tokenStr string) (uint, string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}
	userID, ok, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return 0, "", ErrInvalidToken
	}
	return userID, claims.ID, nil
}
