package service

import (
	"context"
	"errors"
	"fmt"

	"bakery-inventory/internal/models"
	"bakery-inventory/internal/store"
	"bakery-inventory/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles order intake
type OrderService struct {
	store  *store.InventoryStore
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.InventoryStore) *OrderService {
	return &OrderService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// OrderRequest represents a request to buy one product
type OrderRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Quote prices an order against current stock without changing anything
func (s *OrderService) Quote(ctx context.Context, req OrderRequest) (models.Sale, error) {
	_, span := util.StartSpan(ctx, "OrderService.Quote")
	defer span.End()

	if req.Quantity <= 0 {
		return models.Sale{}, store.ErrInvalidQuantity
	}

	product, ok := s.store.FindProduct(req.ProductID)
	if !ok {
		return models.Sale{}, fmt.Errorf("%w: %d", store.ErrProductNotFound, req.ProductID)
	}

	if product.Stock < req.Quantity {
		return models.Sale{}, fmt.Errorf("%w: available=%d, requested=%d",
			store.ErrInsufficientStock, product.Stock, req.Quantity)
	}

	return models.Sale{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		UnitPrice:   product.UnitPrice,
		Total:       product.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
	}, nil
}

// PlaceOrder sells the requested quantity, updating stock and sales totals
// together.
func (s *OrderService) PlaceOrder(ctx context.Context, req OrderRequest) (models.Sale, error) {
	_, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	sale, err := s.store.Sell(req.ProductID, req.Quantity)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues(failureReason(err)).Inc()
		s.logger.Warn("Order rejected",
			zap.Int64("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		return models.Sale{}, err
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("product_id", sale.ProductID),
		zap.Int("quantity", sale.Quantity),
		zap.String("total", sale.Total.StringFixed(2)))

	return sale, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, store.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, store.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, store.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "error"
	}
}
