package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/events"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultStatus = "Pending"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")

	// ErrInvalidArgument means an empty item list, a non-positive quantity or
	// a negative price.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service creates and manages orders. An order's total and its items'
// amounts are fixed at creation time from the prices the caller supplies.
type Service struct {
	db     *gorm.DB
	events events.Publisher
}

func NewService(db *gorm.DB, pub events.Publisher) *Service {
	return &Service{db: db, events: pub}
}

type LineItemInput struct {
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

type CreateInput struct {
	UserID uint
	Status string
	Items  []LineItemInput
}

// CreateOrder validates the line items, computes the total and persists the
// order header plus every item in one transaction. No partial order is ever
// visible.
func (s *Service) CreateOrder(ctx context.Context, in CreateInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must have at least one item", ErrInvalidArgument)
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
		}
	}

	status := in.Status
	if status == "" {
		status = defaultStatus
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		amount := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(amount)
		items = append(items, models.OrderItem{
			BookID:   models.OptionalID(item.BookID),
			Quantity: item.Quantity,
			Price:    item.Price,
			Amount:   amount,
		})
	}

	order := models.Order{
		UserID:      models.OptionalID(in.UserID),
		TotalAmount: total,
		Status:      status,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	if err := s.events.Publish(ctx, events.TopicOrderCreated, events.OrderCreated{
		OrderID:     order.ID,
		UserID:      in.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		OccurredAt:  time.Now().UTC(),
	}); err != nil {
		logger.Log.Warn("failed to publish event", zap.String("topic", events.TopicOrderCreated), zap.Error(err))
	}
	return &order, nil
}

// GetOrder returns the order with its items.
func (s *Service) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns all orders, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteOrder removes an order; its items go with it through the store's
// cascade rule.
func (s *Service) DeleteOrder(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Unscoped().Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ListItems returns the line items of one order.
func (s *Service) ListItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem rewrites a line item's quantity and price and recomputes its
// amount. The owning order's total is deliberately not touched; totals are
// validated at creation only.
func (s *Service) UpdateItem(ctx context.Context, id uint, quantity int, price decimal.Decimal) (*models.OrderItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}

	var item models.OrderItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	item.Price = price
	item.Amount = price.Mul(decimal.NewFromInt(int64(quantity)))
	if err := s.db.WithContext(ctx).Model(&item).Updates(map[string]any{
		"quantity": item.Quantity,
		"price":    item.Price,
		"amount":   item.Amount,
	}).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes a single line item.
func (s *Service) DeleteItem(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Unscoped().Delete(&models.OrderItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderItemNotFound
	}
	return nil
}
