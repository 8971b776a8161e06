package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cramazon/internal/models"
	"cramazon/internal/repositories"
	"cramazon/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderEventPublisher publishes order lifecycle events to the message
// broker. Implemented by rabbitmq.Client.
type OrderEventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

// OrderService handles business logic for orders: the only resources
// with per-record ownership.
type OrderService struct {
	orderRepo repositories.OrderRepository
	itemRepo  repositories.ItemRepository
	publisher OrderEventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case events are skipped.
func NewOrderService(orderRepo repositories.OrderRepository, itemRepo repositories.ItemRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		publisher: publisher,
	}
}

// GetAllOrders retrieves all orders with their user and item.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return orders, nil
}

// GetOrderByID retrieves a single order with its user and item.
func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return order, nil
}

// CreateOrder creates an order owned by the caller. The owner is derived
// from the authenticated identity; a body-supplied owner that names
// someone else is rejected rather than trusted. At most one order may
// exist per (user, item) pair.
func (s *OrderService) CreateOrder(ctx context.Context, caller *models.User, order *models.Order) error {
	if caller == nil {
		return ErrTokenMissing
	}
	if order.UserID != 0 && order.UserID != caller.ID {
		return fmt.Errorf("order owner must be the authenticated user: %w", ErrForbidden)
	}
	order.UserID = caller.ID

	if _, err := s.itemRepo.GetByID(ctx, order.ItemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("item %d %w", order.ItemID, ErrNotFound)
		}
		return mapStorageError(err)
	}

	// Fast-path pair check; the composite unique index catches the race.
	if existing, err := s.orderRepo.GetByUserAndItem(ctx, order.UserID, order.ItemID); err == nil && existing != nil {
		return fmt.Errorf("order for user %d and item %d %w", order.UserID, order.ItemID, ErrConflict)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return mapStorageError(err)
	}

	s.publishEvent("order.created", order)
	return nil
}

// UpdateOrder updates an order owned by the caller, keyed by the order's
// own ID. Moving the order to another user is rejected; moving it to
// another item re-checks the pair invariant.
func (s *OrderService) UpdateOrder(ctx context.Context, caller *models.User, id uint, quantity int, userID, itemID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}
	if !CanMutateOrder(caller, order) {
		return nil, ErrForbidden
	}
	if userID != 0 && userID != caller.ID {
		return nil, fmt.Errorf("order owner cannot be reassigned: %w", ErrForbidden)
	}

	if itemID != 0 && itemID != order.ItemID {
		if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("item %d %w", itemID, ErrNotFound)
			}
			return nil, mapStorageError(err)
		}
		if existing, err := s.orderRepo.GetByUserAndItem(ctx, order.UserID, itemID); err == nil && existing != nil {
			return nil, fmt.Errorf("order for user %d and item %d %w", order.UserID, itemID, ErrConflict)
		}
		order.ItemID = itemID
		order.Item = nil
	}
	if quantity > 0 {
		order.Quantity = quantity
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, mapStorageError(err)
	}
	return order, nil
}

// DeleteOrder deletes an order owned by the caller and returns the
// deleted record.
func (s *OrderService) DeleteOrder(ctx context.Context, caller *models.User, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}
	if !CanMutateOrder(caller, order) {
		return nil, ErrForbidden
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return nil, mapStorageError(err)
	}

	s.publishEvent("order.deleted", order)
	return order, nil
}

// publishEvent emits an order lifecycle event. Event publication is best
// effort: failures are logged, never surfaced to the caller.
func (s *OrderService) publishEvent(eventType string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.OrderEvent{
		EventID:  uuid.New().String(),
		Type:     eventType,
		OrderID:  order.ID,
		UserID:   order.UserID,
		ItemID:   order.ItemID,
		Quantity: order.Quantity,
	}
	if err := s.publisher.PublishOrderEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", eventType, order.ID, err)
	}
}
