package services_test

import (
	"testing"

	"cramazon/internal/models"
	"cramazon/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCanMutateOrder(t *testing.T) {
	owner := &models.User{ID: 1}
	other := &models.User{ID: 2}
	order := &models.Order{ID: 10, UserID: 1, ItemID: 5}

	assert.True(t, services.CanMutateOrder(owner, order))
	assert.False(t, services.CanMutateOrder(other, order))
	assert.False(t, services.CanMutateOrder(nil, order))
	assert.False(t, services.CanMutateOrder(owner, nil))
}

func TestCanMutateUser(t *testing.T) {
	user := &models.User{ID: 3}

	assert.True(t, services.CanMutateUser(user, 3))
	assert.False(t, services.CanMutateUser(user, 4))
	assert.False(t, services.CanMutateUser(nil, 3))
}

func TestCanDeleteItem(t *testing.T) {
	// Deletion requires owning an order on the item; update does not.
	buyer := &models.User{
		ID: 1,
		Orders: []models.Order{
			{ID: 10, UserID: 1, ItemID: 5},
		},
	}
	browser := &models.User{ID: 2}

	assert.True(t, services.CanDeleteItem(buyer, 5))
	assert.False(t, services.CanDeleteItem(buyer, 6))
	assert.False(t, services.CanDeleteItem(browser, 5))
	assert.False(t, services.CanDeleteItem(nil, 5))

	assert.True(t, services.CanUpdateItem(browser))
	assert.False(t, services.CanUpdateItem(nil))
}
