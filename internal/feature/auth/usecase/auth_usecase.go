// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"uventory_backend/internal/feature/users/domain/entity"
	usersuc "uventory_backend/internal/feature/users/usecase"
)

// UserRegistrar はユーザー登録を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（users）ではなくコンシューマー（auth）が定義します。
type UserRegistrar interface {
	// Register は新規ユーザーを作成します。メール重複時はErrEmailAlreadyExistsを返します。
	Register(ctx context.Context, in usersuc.RegisterInput) (*entity.User, error)
}

// TokenIssuer はJWTトークン発行のインターフェースを定義します。
type TokenIssuer interface {
	// Issue は指定されたユーザーの署名済みトークンを発行します。
	Issue(userID uuid.UUID, email string) (string, error)
}

// AuthResult は登録・ログイン成功時の結果です。
type AuthResult struct {
	User  *entity.User
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRegistrar
	tokens TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRegistrar, tokens TokenIssuer) *authUsecase {
	return &authUsecase{users: users, tokens: tokens}
}

// Register はユーザーを登録し、そのユーザーのトークンを発行します。
// users側のエラー（ErrEmailAlreadyExists等）はそのまま返します。
func (u *authUsecase) Register(ctx context.Context, in usersuc.RegisterInput) (*AuthResult, error) {
	user, err := u.users.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return u.issue(user)
}

// Login は認証済みのユーザーにトークンを発行します。
// 資格情報の照合はガード（CredentialStrategy）が済ませています。
func (u *authUsecase) Login(user *entity.User) (*AuthResult, error) {
	return u.issue(user)
}

func (u *authUsecase) issue(user *entity.User) (*AuthResult, error) {
	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
