// Package usecase implements the business logic for the products feature.
package usecase

import "errors"

// ErrProductNotFound is returned when no alive product has the requested ID.
var ErrProductNotFound = errors.New("product not found")
