// Package dto defines data transfer objects for the products feature's HTTP transport layer.
package dto

import (
	"uventory_backend/internal/feature/products/domain/entity"
)

// CreateProductReq is the body of POST /products.
// Price and quantity are pointers so that an explicit 0 passes the required check.
type CreateProductReq struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,min=0"`
	Quantity    *int     `json:"quantity" binding:"required,min=0"`
	SKU         *string  `json:"sku" binding:"omitempty,max=50"`
	UnitID      string   `json:"unitId" binding:"required,uuid"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateProductReq is the body of PATCH /products/:id. Omitted fields are left unchanged.
type UpdateProductReq struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"omitempty,min=0"`
	Quantity      *int     `json:"quantity" binding:"omitempty,min=0"`
	QuantityToAdd *int     `json:"quantityToAdd" binding:"omitempty,min=0"`
	SKU           *string  `json:"sku" binding:"omitempty,max=50"`
	UnitID        *string  `json:"unitId" binding:"omitempty,uuid"`
	IsActive      *bool    `json:"isActive"`
}

// SearchQuery holds the query string of GET /products/search.
type SearchQuery struct {
	Name string `form:"name"`
}

// ProductResponse is the public view of a product. Timestamps are not exposed.
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	SKU         *string `json:"sku"`
	UnitID      string  `json:"unitId"`
	IsActive    bool    `json:"isActive"`
}

// NewProductResponse converts a domain product to its public view.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		SKU:         p.SKU,
		UnitID:      p.UnitID.String(),
		IsActive:    p.IsActive,
	}
}

// NewProductListResponse converts a slice of products. The result is never nil.
func NewProductListResponse(ps []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for i := range ps {
		out = append(out, NewProductResponse(&ps[i]))
	}
	return out
}
