package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"uventory_backend/internal/feature/users/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// 論理削除されたユーザーはすべての検索から除外されます。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// 同じメールアドレスの有効なユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail はメールアドレスに一致する有効なユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はIDに一致する有効なユーザーを取得します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// List は有効なユーザーをすべて取得します。
	List(ctx context.Context) ([]entity.User, error)

	// Update は氏名と有効フラグのみを更新します。
	Update(ctx context.Context, user *entity.User) error

	// SoftDelete は削除日時を記録します。有効なユーザーが存在しない場合、ErrUserNotFoundを返します。
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// PasswordHasher はパスワードのハッシュ化と照合を抽象化します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
	VerifyDummy(plain string) bool
}

// RegisterInput は新規登録に必要な値です。
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfilePatch は部分更新の値です。nilのフィールドは変更されません。
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	IsActive  *bool
}

// userUsecase はユーザー管理のビジネスロジックを実装します。
type userUsecase struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, hasher PasswordHasher) *userUsecase {
	return &userUsecase{users: users, hasher: hasher}
}

// Register はパスワードをハッシュ化して新規ユーザーを登録します。
// 事前チェックに加え、同時登録はストアの一意制約でErrEmailAlreadyExistsになります。
func (u *userUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        in.Email,
		PasswordHash: hashed,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail はメールアドレスで有効なユーザーを取得します。
func (u *userUsecase) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return u.users.FindByEmail(ctx, email)
}

// FindByID はIDで有効なユーザーを取得します。
func (u *userUsecase) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// List は有効なユーザーの一覧を返します。
func (u *userUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}

// VerifyCredentials はパスワードがユーザーのハッシュと一致するか検証します。
// userがnilの場合もダミーハッシュとの比較を行い、falseを返します。
func (u *userUsecase) VerifyCredentials(user *entity.User, password string) bool {
	if user == nil {
		return u.hasher.VerifyDummy(password)
	}
	return u.hasher.Verify(password, user.PasswordHash)
}

// UpdateProfile は指定されたフィールドのみ更新します。メールアドレスとパスワードは変更できません。
func (u *userUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SoftDelete はユーザーを論理削除します。2回目の呼び出しはErrUserNotFoundになります。
func (u *userUsecase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return u.users.SoftDelete(ctx, id)
}
