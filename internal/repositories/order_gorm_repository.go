package repositories

import (
	"context"
	"fmt"

	"cramazon/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their user and item.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Preload("User").Preload("Item").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", translate(err))
	}
	return orders, nil
}

// GetByID retrieves an order by ID, including its user and item.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("User").Preload("Item").First(&order, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, translate(err))
	}
	return &order, nil
}

// GetByUserAndItem retrieves the order for a (user, item) pair, if any.
func (r *GORMOrderRepository) GetByUserAndItem(ctx context.Context, userID, itemID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "user_id = ? AND item_id = ?", userID, itemID).Error; err != nil {
		return nil, fmt.Errorf("failed to get order for user %d and item %d: %w", userID, itemID, translate(err))
	}
	return &order, nil
}

// Create creates a new order in the database.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", translate(err))
	}
	return nil
}

// Update updates an existing order in the database, keyed by the order's own ID.
func (r *GORMOrderRepository) Update(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d not found for update: %w", order.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes an order by its ID.
func (r *GORMOrderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
