package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bakery-inventory/internal/models"
	"bakery-inventory/internal/store"
	"bakery-inventory/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidProduct = errors.New("invalid product")

// ProductInput carries the editable fields of a product
type ProductInput struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
}

// Validate applies the product form rules
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if !models.IsValidCategory(in.Category) {
		return fmt.Errorf("%w: category must be one of %s", ErrInvalidProduct, strings.Join(models.Categories, ", "))
	}
	if !in.UnitPrice.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidProduct)
	}
	return nil
}

func (in ProductInput) toProduct(id int64) models.Product {
	return models.Product{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Category:  in.Category,
		UnitPrice: in.UnitPrice,
		Stock:     in.Stock,
	}
}

// ProductService handles catalog management
type ProductService struct {
	// serializes id assignment with the add that consumes it
	mu     sync.Mutex
	store  *store.InventoryStore
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store *store.InventoryStore) *ProductService {
	return &ProductService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// List returns the current catalog
func (ps *ProductService) List(ctx context.Context) []models.Product {
	_, span := util.StartSpan(ctx, "ProductService.List")
	defer span.End()

	return ps.store.ListProducts()
}

// Get retrieves a product by ID
func (ps *ProductService) Get(ctx context.Context, id int64) (models.Product, error) {
	_, span := util.StartSpan(ctx, "ProductService.Get")
	defer span.End()

	product, ok := ps.store.FindProduct(id)
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %d", store.ErrProductNotFound, id)
	}
	return product, nil
}

// Create validates the input and adds it under the next free id
func (ps *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	_, span := util.StartSpan(ctx, "ProductService.Create")
	defer span.End()

	if err := in.Validate(); err != nil {
		return models.Product{}, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	product := in.toProduct(ps.store.NextProductID())
	ps.store.AddProduct(product)

	util.ProductsAddedTotal.Inc()
	ps.logger.Info("Product added",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name))
	return product, nil
}

// Update replaces the editable fields of an existing product
func (ps *ProductService) Update(ctx context.Context, id int64, in ProductInput) (models.Product, error) {
	_, span := util.StartSpan(ctx, "ProductService.Update")
	defer span.End()

	if err := in.Validate(); err != nil {
		return models.Product{}, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, ok := ps.store.FindProduct(id); !ok {
		return models.Product{}, fmt.Errorf("%w: %d", store.ErrProductNotFound, id)
	}

	product := in.toProduct(id)
	ps.store.UpdateProduct(product)

	util.ProductsUpdatedTotal.Inc()
	ps.logger.Info("Product updated", zap.Int64("product_id", id))
	return product, nil
}

// Delete removes a product from the catalog
func (ps *ProductService) Delete(ctx context.Context, id int64) error {
	_, span := util.StartSpan(ctx, "ProductService.Delete")
	defer span.End()

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, ok := ps.store.FindProduct(id); !ok {
		return fmt.Errorf("%w: %d", store.ErrProductNotFound, id)
	}

	ps.store.DeleteProduct(id)

	util.ProductsDeletedTotal.Inc()
	ps.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}
