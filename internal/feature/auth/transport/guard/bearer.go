package guard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"uventory_backend/internal/feature/users/domain/entity"
	usersuc "uventory_backend/internal/feature/users/usecase"
	"uventory_backend/internal/platform/http/response"
	jwtmw "uventory_backend/internal/platform/jwt"
)

const bearerPrefix = "Bearer "

// TokenVerifier はトークン検証を抽象化します。
type TokenVerifier interface {
	Verify(token string) (*jwtmw.Claims, error)
}

// AliveChecker はトークンのユーザーが現存するかを確認します。
type AliveChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// BearerStrategy はAuthorizationヘッダーのJWTによる認証です。
// 既定ではクレームのみを信頼し、DBを参照しません。
type BearerStrategy struct {
	tokens TokenVerifier
	alive  AliveChecker
}

// BearerOption はBearerStrategyの設定です。
type BearerOption func(*BearerStrategy)

// WithAliveCheck はリクエストごとにユーザーの存在を確認します。
// 論理削除済みユーザーのトークンは有効期限内でも拒否されます。
func WithAliveCheck(a AliveChecker) BearerOption {
	return func(s *BearerStrategy) { s.alive = a }
}

// NewBearerStrategy はBearerStrategyを生成します。
func NewBearerStrategy(tokens TokenVerifier, opts ...BearerOption) *BearerStrategy {
	s := &BearerStrategy{tokens: tokens}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BearerStrategy) authenticate(c *gin.Context) *rejection {
	unauthorized := &rejection{status: http.StatusUnauthorized, message: response.MsgUnauthorized}

	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return unauthorized
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return unauthorized
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		slog.Debug("bearer token rejected", "error", err, "remote_addr", c.ClientIP())
		return unauthorized
	}
	userID, err := claims.UserID()
	if err != nil {
		return unauthorized
	}

	if s.alive != nil {
		if _, err := s.alive.FindByID(c.Request.Context(), userID); err != nil {
			if errors.Is(err, usersuc.ErrUserNotFound) {
				slog.Warn("token for missing user", "user_id", userID, "remote_addr", c.ClientIP())
				return unauthorized
			}
			slog.Error("bearer revalidation failed", "error", err, "remote_addr", c.ClientIP())
			return &rejection{status: http.StatusInternalServerError, message: response.MsgInternal}
		}
	}

	c.Set(identityKey, Identity{UserID: userID, Email: claims.Email})
	return nil
}
