// Package handler はproductsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"uventory_backend/internal/feature/products/domain/entity"
	"uventory_backend/internal/feature/products/transport/http/dto"
	"uventory_backend/internal/feature/products/usecase"
	"uventory_backend/internal/platform/http/param"
	"uventory_backend/internal/platform/http/response"
)

// ProductUsecase は商品管理のユースケースを定義します。
type ProductUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Search(ctx context.Context, name string) ([]entity.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, id uuid.UUID, patch usecase.ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductHandler は商品のHTTPリクエストを処理します。
type ProductHandler struct {
	uc ProductUsecase
}

// NewProductHandler はProductHandlerの新しいインスタンスを生成します。
func NewProductHandler(uc ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create は商品を作成します。
//
// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "create product validation failed", err)
		return
	}
	// bindingのuuidタグで形式は検証済み
	unitID := uuid.MustParse(req.UnitID)

	p, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		SKU:         req.SKU,
		UnitID:      unitID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.fail(c, uuid.Nil, "create product failed", err)
		return
	}
	slog.Info("product created", "product_id", p.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewProductResponse(p))
}

// List は有効な商品を名前順で返します。
//
// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	ps, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, uuid.Nil, "list products failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductListResponse(ps))
}

// Search は名前の部分一致で有効な商品を返します。
//
// GET /products/search?name=
func (h *ProductHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "search query invalid", err)
		return
	}
	ps, err := h.uc.Search(c.Request.Context(), q.Name)
	if err != nil {
		h.fail(c, uuid.Nil, "search products failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductListResponse(ps))
}

// Get はIDで商品を返します。
//
// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	p, err := h.uc.FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, id, "get product failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// Update は商品を部分更新します。quantityToAddは現在の在庫数に加算されます。
//
// PATCH /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "update product validation failed", err)
		return
	}

	patch := usecase.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Quantity:      req.Quantity,
		QuantityToAdd: req.QuantityToAdd,
		SKU:           req.SKU,
		IsActive:      req.IsActive,
	}
	if req.UnitID != nil {
		unitID := uuid.MustParse(*req.UnitID)
		patch.UnitID = &unitID
	}

	p, err := h.uc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, id, "update product failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// Delete は商品を論理削除します。
//
// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, id, "delete product failed", err)
		return
	}
	slog.Info("product soft-deleted", "product_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Product deleted successfully"})
}

// NotFoundMessage は商品が見つからない場合のメッセージを返します。
func NotFoundMessage(id uuid.UUID) string {
	return fmt.Sprintf("Product with ID %q not found", id.String())
}

func (h *ProductHandler) fail(c *gin.Context, id uuid.UUID, msg string, err error) {
	if errors.Is(err, usecase.ErrProductNotFound) {
		response.Error(c, http.StatusNotFound, NotFoundMessage(id))
		return
	}
	slog.Error(msg, "error", err, "remote_addr", c.ClientIP())
	response.Error(c, http.StatusInternalServerError, response.MsgInternal)
}

func badRequest(c *gin.Context, msg string, err error) {
	slog.Warn(msg, "error", err, "remote_addr", c.ClientIP())
	response.Error(c, http.StatusBadRequest, response.MsgBadRequest)
}

func bindID(c *gin.Context) (uuid.UUID, bool) {
	id, err := param.UUID(c, "id")
	if err != nil {
		badRequest(c, "invalid product id", err)
		return uuid.Nil, false
	}
	return id, true
}
