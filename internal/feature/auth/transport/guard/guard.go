// Package guard は認証ガード（gin middleware）を提供します。
// ルートごとにCredentialStrategyまたはBearerStrategyのどちらかを選択します。
package guard

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"uventory_backend/internal/feature/users/domain/entity"
	"uventory_backend/internal/platform/http/response"
)

const (
	userKey     = "auth.user"
	identityKey = "auth.identity"
)

// Identity はBearerトークンのクレームから得られる呼び出し元です。
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// rejection は認証失敗時に返すステータスとメッセージです。
type rejection struct {
	status  int
	message string
}

// Strategy は認証方式です。実装はこのパッケージ内の2種類に限られます。
type Strategy interface {
	authenticate(c *gin.Context) *rejection
}

// Require はStrategyで認証し、失敗時はエラーレスポンスで処理を中断します。
func Require(s Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rej := s.authenticate(c); rej != nil {
			response.Abort(c, rej.status, rej.message)
			return
		}
		c.Next()
	}
}

// UserFrom はCredentialStrategyが認証したユーザーを返します。
func UserFrom(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

// IdentityFrom はBearerStrategyが認証した呼び出し元を返します。
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
