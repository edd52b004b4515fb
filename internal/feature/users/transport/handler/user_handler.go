// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"uventory_backend/internal/feature/users/domain/entity"
	"uventory_backend/internal/feature/users/transport/http/dto"
	"uventory_backend/internal/feature/users/usecase"
	"uventory_backend/internal/platform/http/param"
	"uventory_backend/internal/platform/http/response"
)

// MsgUserNotFound は対象ユーザーが存在しない場合のメッセージです。
const MsgUserNotFound = "User not found"

// UserUsecase はユーザー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type UserUsecase interface {
	List(ctx context.Context) ([]entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch usecase.ProfilePatch) (*entity.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// UserHandler はユーザー管理のHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List は有効なユーザーの一覧を返します。
//
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list users failed", err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDで有効なユーザーを返します。
//
// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	user, err := h.uc.FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get user failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update は氏名・有効フラグを部分更新します。
// - 不正なIDまたはボディは400
// - 有効なユーザーが存在しない場合は404
//
// PATCH /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, http.StatusBadRequest, response.MsgBadRequest)
		return
	}

	user, err := h.uc.UpdateProfile(c.Request.Context(), id, usecase.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.fail(c, "update user failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Delete はユーザーを論理削除します。
//
// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.uc.SoftDelete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete user failed", err)
		return
	}
	slog.Info("user soft-deleted", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, response.MessageResponse{Message: "User deleted successfully"})
}

func (h *UserHandler) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		response.Error(c, http.StatusNotFound, MsgUserNotFound)
		return
	}
	// 内部エラーの詳細はログのみに出力する
	slog.Error(msg, "error", err, "remote_addr", c.ClientIP())
	response.Error(c, http.StatusInternalServerError, response.MsgInternal)
}

func bindID(c *gin.Context) (uuid.UUID, bool) {
	id, err := param.UUID(c, "id")
	if err != nil {
		slog.Warn("invalid user id", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, http.StatusBadRequest, response.MsgBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
