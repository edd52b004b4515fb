// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"uventory_backend/internal/feature/auth/transport/guard"
	"uventory_backend/internal/feature/auth/transport/http/dto"
	"uventory_backend/internal/feature/auth/usecase"
	"uventory_backend/internal/feature/users/domain/entity"
	userdto "uventory_backend/internal/feature/users/transport/http/dto"
	usersuc "uventory_backend/internal/feature/users/usecase"
	"uventory_backend/internal/platform/http/response"
	"uventory_backend/internal/platform/password"
)

// MsgEmailTaken はメールアドレス重複時のメッセージです。
const MsgEmailTaken = "User with this email already exists"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンを発行します。
	Register(ctx context.Context, in usersuc.RegisterInput) (*usecase.AuthResult, error)
	// Login は認証済みユーザーにトークンを発行します。
	Login(user *entity.User) (*usecase.AuthResult, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時はユーザーとトークンを201で返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, http.StatusBadRequest, response.MsgBadRequest)
		return
	}
	// bindingのmaxは文字数なのでバイト長も確認する
	if len(req.Password) > password.MaxLength {
		slog.Warn("register validation failed", "error", "password too long", "remote_addr", c.ClientIP())
		response.Error(c, http.StatusBadRequest, response.MsgBadRequest)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), usersuc.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, usersuc.ErrEmailAlreadyExists) {
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			response.Error(c, http.StatusConflict, MsgEmailTaken)
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}
	slog.Info("user registered", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, toAuthResponse(res))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 資格情報はguard.CredentialStrategyで検証済みです。
func (h *AuthHandler) Login(c *gin.Context) {
	user, ok := guard.UserFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.MsgInvalidCredentials)
		return
	}
	res, err := h.auth.Login(user)
	if err != nil {
		slog.Error("login token issue failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toAuthResponse(res))
}

// Profile はトークンのクレームから呼び出し元を返します。
func (h *AuthHandler) Profile(c *gin.Context) {
	id, ok := guard.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{ID: id.UserID.String(), Email: id.Email})
}

func toAuthResponse(res *usecase.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{User: userdto.NewUserResponse(res.User), Token: res.Token}
}
