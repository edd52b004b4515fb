// Package adapters はproductsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uventory_backend/internal/feature/products/domain/entity"
	"uventory_backend/internal/feature/products/usecase"
)

// productPostgres はProductRepositoryインターフェースのGORM実装です。
type productPostgres struct {
	db *gorm.DB
}

// productPostgresがProductRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ProductRepository = (*productPostgres)(nil)

// NewProductPostgres は指定されたgorm.DB接続でproductPostgresの新しいインスタンスを生成します。
func NewProductPostgres(db *gorm.DB) *productPostgres {
	return &productPostgres{db: db}
}

// Create は商品を追加し、生成されたIDとタイムスタンプをpに反映します。
func (r *productPostgres) Create(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return errors.New("product must not be nil")
	}
	m := ProductModelFromEntity(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*p = *m.ToEntity()
	return nil
}

// ListActive は有効な商品を名前順で取得します。
func (r *productPostgres) ListActive(ctx context.Context) ([]entity.Product, error) {
	var ms []ProductModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toEntities(ms), nil
}

// SearchByName は名前に部分一致する有効な商品を取得します。
// LIKEのワイルドカード文字はエスケープされません。
func (r *productPostgres) SearchByName(ctx context.Context, name string) ([]entity.Product, error) {
	var ms []ProductModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toEntities(ms), nil
}

// FindByID はIDで商品を取得します。無効（is_active=false）な商品も返します。
func (r *productPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var m ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Update は可変フィールドを保存します。対象が存在しない場合、usecase.ErrProductNotFoundを返します。
func (r *productPostgres) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()
	m := ProductModelFromEntity(p)
	res := r.db.WithContext(ctx).
		Model(&ProductModel{ID: p.ID}).
		Select("name", "description", "price", "quantity", "sku", "unit_id", "is_active", "updated_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

// SoftDelete は削除日時を記録します。削除済みまたは未登録の場合、usecase.ErrProductNotFoundを返します。
func (r *productPostgres) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ProductModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

func toEntities(ms []ProductModel) []entity.Product {
	out := make([]entity.Product, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToEntity())
	}
	return out
}
