package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uventory_backend/internal/feature/products/domain/entity"
	"uventory_backend/internal/feature/products/usecase"
)

// mockProductRepository はテスト用のProductRepositoryモック実装です。
type mockProductRepository struct {
	createFn     func(ctx context.Context, p *entity.Product) error
	listActiveFn func(ctx context.Context) ([]entity.Product, error)
	searchFn     func(ctx context.Context, name string) ([]entity.Product, error)
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	updateFn     func(ctx context.Context, p *entity.Product) error
	softDeleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockProductRepository) ListActive(ctx context.Context) ([]entity.Product, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockProductRepository) SearchByName(ctx context.Context, name string) ([]entity.Product, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, name)
	}
	return nil, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrProductNotFound
}

func (m *mockProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, id)
	}
	return nil
}

var widget = entity.Product{
	ID:       uuid.MustParse("6f1c2a9e-8d7b-4c21-9e33-0a5b7c1d2e3f"),
	Name:     "Widget",
	Price:    9.99,
	Quantity: 10,
	UnitID:   uuid.MustParse("0b9a8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"),
	IsActive: true,
}

// TestNewCachingProductRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingProductRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "products"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "products"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingProductRepository(nil, tt.ttl, &mockProductRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

// TestCachingProductRepository_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingProductRepository_NilRedis(t *testing.T) {
	t.Parallel()

	calls := 0
	inner := &mockProductRepository{
		listActiveFn: func(context.Context) ([]entity.Product, error) {
			calls++
			return []entity.Product{widget}, nil
		},
	}
	repo := NewCachingProductRepository(nil, time.Minute, inner, "")

	for i := 0; i < 2; i++ {
		got, err := repo.ListActive(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 2, calls)
	require.NoError(t, repo.Create(context.Background(), &entity.Product{}))
}

// TestCachingProductRepository_ListActive_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingProductRepository_ListActive_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached, _ := json.Marshal([]entity.Product{widget})
	mock.ExpectGet("products:list").SetVal(string(cached))

	inner := &mockProductRepository{
		listActiveFn: func(context.Context) ([]entity.Product, error) {
			t.Error("inner repository should not be called on cache hit")
			return nil, nil
		},
	}

	got, err := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products").ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, widget.ID, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_FindByID_CacheMiss はキャッシュミス時にDBから取得してキャッシュに保存することを検証します。
func TestCachingProductRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	p := widget
	expected, _ := json.Marshal(&p)
	key := "products:id:" + widget.ID.String()
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, expected, 5*time.Minute).SetVal("OK")

	inner := &mockProductRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Product, error) { return &p, nil },
	}

	got, err := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products").FindByID(context.Background(), widget.ID)

	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_FindByID_NotFound は未検出の結果がキャッシュされないことを検証します。
func TestCachingProductRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	id := uuid.New()
	mock.ExpectGet("products:id:" + id.String()).RedisNil()

	_, err := NewCachingProductRepository(rdb, 5*time.Minute, &mockProductRepository{}, "products").FindByID(context.Background(), id)

	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_Search_CorruptedCache は破損したキャッシュを削除しDBにフォールバックすることを検証します。
func TestCachingProductRepository_Search_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected, _ := json.Marshal([]entity.Product{widget})
	key := "products:search:blue+wid%3A%2A"
	mock.ExpectGet(key).SetVal("invalid json")
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectSet(key, expected, 5*time.Minute).SetVal("OK")

	inner := &mockProductRepository{
		searchFn: func(ctx context.Context, name string) ([]entity.Product, error) {
			assert.Equal(t, "Blue Wid:*", name, "inner receives the raw term")
			return []entity.Product{widget}, nil
		},
	}

	got, err := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products").SearchByName(context.Background(), "Blue Wid:*")

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_InnerError は内部リポジトリのエラーが伝播されることを検証します。
func TestCachingProductRepository_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("products:list").RedisNil()

	inner := &mockProductRepository{
		listActiveFn: func(context.Context) ([]entity.Product, error) { return nil, expectedErr },
	}

	_, err := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products").ListActive(context.Background())

	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_WritesInvalidate は書き込み成功後に名前空間全体が無効化されることを検証します。
func TestCachingProductRepository_WritesInvalidate(t *testing.T) {
	t.Parallel()

	writes := []struct {
		name string
		run  func(r *CachingProductRepository) error
	}{
		{"create", func(r *CachingProductRepository) error { return r.Create(context.Background(), &entity.Product{}) }},
		{"update", func(r *CachingProductRepository) error { p := widget; return r.Update(context.Background(), &p) }},
		{"soft delete", func(r *CachingProductRepository) error { return r.SoftDelete(context.Background(), widget.ID) }},
	}

	for _, w := range writes {
		t.Run(w.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			defer func() { _ = rdb.Close() }()

			mock.ExpectScan(0, "products:*", 200).SetVal([]string{"products:list", "products:id:x"}, 7)
			mock.ExpectDel("products:list", "products:id:x").SetVal(2)
			mock.ExpectScan(7, "products:*", 200).SetVal([]string{"products:search:w"}, 0)
			mock.ExpectDel("products:search:w").SetVal(1)

			require.NoError(t, w.run(NewCachingProductRepository(rdb, time.Minute, &mockProductRepository{}, "products")))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestCachingProductRepository_FailedWriteKeepsCache は書き込み失敗時にキャッシュを触らないことを検証します。
func TestCachingProductRepository_FailedWriteKeepsCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockProductRepository{
		softDeleteFn: func(context.Context, uuid.UUID) error { return usecase.ErrProductNotFound },
	}

	err := NewCachingProductRepository(rdb, time.Minute, inner, "products").SoftDelete(context.Background(), widget.ID)

	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_InvalidateErrorIgnored はキャッシュ削除の失敗が書き込み結果に影響しないことを検証します。
func TestCachingProductRepository_InvalidateErrorIgnored(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "products:*", 200).SetErr(errors.New("redis down"))

	err := NewCachingProductRepository(rdb, time.Minute, &mockProductRepository{}, "products").Create(context.Background(), &entity.Product{})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"widget", "widget"},
		{"WIDGET", "widget"},
		{"a b", "a+b"},
		{"a_b", "a_b"},
		{"key:value", "key%3Avalue"},
		{"*", "%2A"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, searchKey(tt.input))
		})
	}
}
