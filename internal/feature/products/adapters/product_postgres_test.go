package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"uventory_backend/internal/feature/products/domain/entity"
	"uventory_backend/internal/feature/products/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&ProductModel{}), "failed to migrate table")
	return db
}

func strPtr(s string) *string { return &s }

func newProduct(name string, active bool) *entity.Product {
	return &entity.Product{
		Name:     name,
		Price:    9.99,
		Quantity: 10,
		SKU:      strPtr("SKU-" + name),
		UnitID:   uuid.New(),
		IsActive: active,
	}
}

func seed(t *testing.T, repo *productPostgres, ps ...*entity.Product) {
	t.Helper()
	for _, p := range ps {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

func names(ps []entity.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestProductPostgres_Create(t *testing.T) {
	repo := NewProductPostgres(setupTestDB(t))
	ctx := context.Background()

	p := newProduct("Widget", true)
	p.Description = strPtr("a widget")
	require.NoError(t, repo.Create(ctx, p))

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.InDelta(t, 9.99, got.Price, 0.001)
	assert.Equal(t, 10, got.Quantity)
	require.NotNil(t, got.Description)
	assert.Equal(t, "a widget", *got.Description)
	assert.Equal(t, p.UnitID, got.UnitID)

	t.Run("inactive flag is kept", func(t *testing.T) {
		off := newProduct("Dormant", false)
		require.NoError(t, repo.Create(ctx, off))
		got, err := repo.FindByID(ctx, off.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("nil product", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, nil))
	})
}

func TestProductPostgres_ListActive(t *testing.T) {
	repo := NewProductPostgres(setupTestDB(t))
	ctx := context.Background()
	deleted := newProduct("Apple", true)
	seed(t, repo, newProduct("Cherry", true), deleted, newProduct("Banana", true), newProduct("Durian", false))
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID))

	got, err := repo.ListActive(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Banana", "Cherry"}, names(got))
}

func TestProductPostgres_SearchByName(t *testing.T) {
	repo := NewProductPostgres(setupTestDB(t))
	ctx := context.Background()
	seed(t, repo,
		newProduct("Blue Widget", true),
		newProduct("widget mini", true),
		newProduct("Gadget", true),
		newProduct("Old Widget", false),
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case-insensitive substring", "WIDGET", []string{"Blue Widget", "widget mini"}},
		{"no match", "sprocket", []string{}},
		{"empty query matches every active product", "", []string{"Blue Widget", "Gadget", "widget mini"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.SearchByName(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestProductPostgres_FindByID_NotFound(t *testing.T) {
	repo := NewProductPostgres(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
}

func TestProductPostgres_Update(t *testing.T) {
	repo := NewProductPostgres(setupTestDB(t))
	ctx := context.Background()
	p := newProduct("Widget", true)
	seed(t, repo, p)

	p.Name = "Widget v2"
	p.Quantity = 0
	p.IsActive = false
	p.SKU = nil
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", got.Name)
	assert.Equal(t, 0, got.Quantity, "zero values must be written")
	assert.False(t, got.IsActive)
	assert.Nil(t, got.SKU)

	t.Run("missing product", func(t *testing.T) {
		ghost := newProduct("Ghost", true)
		ghost.ID = uuid.New()
		assert.ErrorIs(t, repo.Update(ctx, ghost), usecase.ErrProductNotFound)
	})
}

func TestProductPostgres_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductPostgres(db)
	ctx := context.Background()
	p := newProduct("Widget", true)
	seed(t, repo, p)

	require.NoError(t, repo.SoftDelete(ctx, p.ID))

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	assert.ErrorIs(t, repo.SoftDelete(ctx, p.ID), usecase.ErrProductNotFound, "second delete")
	assert.ErrorIs(t, repo.Update(ctx, p), usecase.ErrProductNotFound, "deleted rows are not updatable")

	var count int64
	require.NoError(t, db.Unscoped().Model(&ProductModel{}).Where("id = ?", p.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "row is retained")
}
