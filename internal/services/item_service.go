package services

import (
	"context"
	"fmt"

	"cramazon/internal/models"
	"cramazon/internal/repositories"
)

// ItemService handles business logic for catalog items.
type ItemService struct {
	itemRepo repositories.ItemRepository
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repositories.ItemRepository) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
	}
}

// GetAllItems retrieves all catalog items with the orders referencing them.
func (s *ItemService) GetAllItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.itemRepo.GetAll(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return items, nil
}

// GetItemByID retrieves a single catalog item with the orders referencing it.
func (s *ItemService) GetItemByID(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return item, nil
}

// CreateItem creates a new catalog item. Any authenticated caller may;
// item names must be unique. The name pre-check is a fast path, the
// unique index is authoritative.
func (s *ItemService) CreateItem(ctx context.Context, caller *models.User, item *models.Item) error {
	if caller == nil {
		return ErrTokenMissing
	}

	if existing, err := s.itemRepo.GetByName(ctx, item.Name); err == nil && existing != nil {
		return fmt.Errorf("item name '%s' %w", item.Name, ErrConflict)
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return mapStorageError(err)
	}
	return nil
}

// UpdateItem updates an existing catalog item. Any authenticated caller
// may update any item; renaming onto an existing name is a conflict.
func (s *ItemService) UpdateItem(ctx context.Context, caller *models.User, id uint, update *models.Item) (*models.Item, error) {
	if !CanUpdateItem(caller) {
		return nil, ErrForbidden
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}

	if update.Name != "" && update.Name != item.Name {
		if existing, err := s.itemRepo.GetByName(ctx, update.Name); err == nil && existing != nil {
			return nil, fmt.Errorf("item name '%s' %w", update.Name, ErrConflict)
		}
		item.Name = update.Name
	}
	item.Price = update.Price
	item.Image = update.Image
	item.Stock = update.Stock
	item.Type = update.Type
	item.Description = update.Description

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, mapStorageError(err)
	}
	return item, nil
}

// DeleteItem deletes a catalog item and the orders referencing it.
// Narrower than update: the caller must own an order on the item.
func (s *ItemService) DeleteItem(ctx context.Context, caller *models.User, id uint) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}

	if !CanDeleteItem(caller, id) {
		return nil, ErrForbidden
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return nil, mapStorageError(err)
	}
	return item, nil
}
