// Package entity defines the domain entities for the products feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a stock item. Price has two decimal places.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	SKU         *string   `json:"sku"`
	UnitID      uuid.UUID `json:"unitId"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
