package adapters

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uventory_backend/internal/feature/products/domain/entity"
)

// ProductModel is the GORM model for the products table.
type ProductModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"size:255;not null;index:idx_products_name"`
	Description *string        `gorm:"type:text"`
	Price       float64        `gorm:"type:numeric(10,2);not null"`
	Quantity    int            `gorm:"not null"`
	SKU         *string        `gorm:"column:sku;size:50"`
	UnitID      uuid.UUID      `gorm:"type:uuid;not null"`
	IsActive    bool           `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// BeforeCreate assigns a random UUID when none is set.
func (m *ProductModel) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts the GORM model to a domain entity.
func (m *ProductModel) ToEntity() *entity.Product {
	return &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		SKU:         m.SKU,
		UnitID:      m.UnitID,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProductModelFromEntity converts a domain entity to a GORM model.
func ProductModelFromEntity(p *entity.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		SKU:         p.SKU,
		UnitID:      p.UnitID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
