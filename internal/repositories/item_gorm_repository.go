package repositories

import (
	"context"
	"fmt"

	"cramazon/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// GetAll retrieves all items with their orders and the ordering users.
func (r *GORMItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).Preload("Orders.User").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", translate(err))
	}
	return items, nil
}

// GetByID retrieves an item by ID, including its orders and the ordering users.
func (r *GORMItemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Preload("Orders.User").First(&item, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get item by ID %d: %w", id, translate(err))
	}
	return &item, nil
}

// GetByName retrieves an item by its name.
func (r *GORMItemRepository) GetByName(ctx context.Context, name string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("failed to get item by name %s: %w", name, translate(err))
	}
	return &item, nil
}

// Create creates a new item in the database.
func (r *GORMItemRepository) Create(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", translate(err))
	}
	return nil
}

// Update updates an existing item in the database.
func (r *GORMItemRepository) Update(ctx context.Context, item *models.Item) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %d not found for update: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes an item and the orders referencing it inside one transaction.
func (r *GORMItemRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Item{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete item with ID %d: %w", id, translate(err))
	}
	return nil
}
