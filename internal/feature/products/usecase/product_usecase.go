package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"uventory_backend/internal/feature/products/domain/entity"
)

// ProductRepository は商品エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProductRepository interface {
	// Create は商品を追加し、生成されたIDとタイムスタンプを反映します。
	Create(ctx context.Context, p *entity.Product) error
	// ListActive は有効な商品を名前順で取得します。
	ListActive(ctx context.Context) ([]entity.Product, error)
	// SearchByName は名前に部分一致する有効な商品を取得します（大文字小文字を区別しない）。
	SearchByName(ctx context.Context, name string) ([]entity.Product, error)
	// FindByID は論理削除されていない商品を取得します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// Update は可変フィールドをすべて保存します。
	Update(ctx context.Context, p *entity.Product) error
	// SoftDelete は削除日時を記録します。
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// CreateInput は商品作成の値です。IsActiveがnilの場合はtrueになります。
type CreateInput struct {
	Name        string
	Description *string
	Price       float64
	Quantity    int
	SKU         *string
	UnitID      uuid.UUID
	IsActive    *bool
}

// ProductPatch は部分更新の値です。nilのフィールドは変更されません。
// QuantityToAddが指定された場合、Quantityより優先され現在の在庫数に加算されます。
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *float64
	Quantity      *int
	QuantityToAdd *int
	SKU           *string
	UnitID        *uuid.UUID
	IsActive      *bool
}

// productUsecase は商品管理のビジネスロジックを実装します。
type productUsecase struct {
	products ProductRepository
}

// NewProductUsecase はproductUsecaseの新しいインスタンスを生成します。
func NewProductUsecase(products ProductRepository) *productUsecase {
	return &productUsecase{products: products}
}

// Create は商品を作成します。
func (u *productUsecase) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		SKU:         in.SKU,
		UnitID:      in.UnitID,
		IsActive:    true,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := u.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// List は有効な商品を名前順で返します。
func (u *productUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return u.products.ListActive(ctx)
}

// Search は名前に部分一致する有効な商品を返します。
func (u *productUsecase) Search(ctx context.Context, name string) ([]entity.Product, error) {
	return u.products.SearchByName(ctx, name)
}

// FindByID はIDで商品を返します。
func (u *productUsecase) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return u.products.FindByID(ctx, id)
}

// Update は商品を部分更新します。
func (u *productUsecase) Update(ctx context.Context, id uuid.UUID, patch ProductPatch) (*entity.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	switch {
	case patch.QuantityToAdd != nil:
		p.Quantity += *patch.QuantityToAdd
	case patch.Quantity != nil:
		p.Quantity = *patch.Quantity
	}
	if patch.SKU != nil {
		p.SKU = patch.SKU
	}
	if patch.UnitID != nil {
		p.UnitID = *patch.UnitID
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}

	if err := u.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete は商品を論理削除します。
func (u *productUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.products.SoftDelete(ctx, id)
}
