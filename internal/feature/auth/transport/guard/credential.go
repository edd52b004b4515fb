package guard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"uventory_backend/internal/feature/auth/transport/http/dto"
	"uventory_backend/internal/feature/users/domain/entity"
	usersuc "uventory_backend/internal/feature/users/usecase"
	"uventory_backend/internal/platform/http/response"
)

// CredentialVerifier はメールアドレスとパスワードによる照合を抽象化します。
type CredentialVerifier interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// VerifyCredentials はuserがnilの場合もダミー照合を行いfalseを返します。
	VerifyCredentials(user *entity.User, password string) bool
}

// CredentialStrategy はログイン用のメールアドレス・パスワード認証です。
type CredentialStrategy struct {
	users CredentialVerifier
}

// NewCredentialStrategy はCredentialStrategyを生成します。
func NewCredentialStrategy(users CredentialVerifier) *CredentialStrategy {
	return &CredentialStrategy{users: users}
}

func (s *CredentialStrategy) authenticate(c *gin.Context) *rejection {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		return &rejection{status: http.StatusBadRequest, message: response.MsgBadRequest}
	}

	user, err := s.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, usersuc.ErrUserNotFound) {
		slog.Error("login lookup failed", "error", err, "remote_addr", c.ClientIP())
		return &rejection{status: http.StatusInternalServerError, message: response.MsgInternal}
	}
	// 未登録の場合もuser=nilでダミー照合を実行する
	if !s.users.VerifyCredentials(user, req.Password) {
		// ユーザー列挙攻撃を防止するため、未登録とパスワード不一致を区別しない
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		return &rejection{status: http.StatusUnauthorized, message: response.MsgInvalidCredentials}
	}

	c.Set(userKey, user)
	return nil
}
