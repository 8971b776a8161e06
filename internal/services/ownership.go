package services

import "cramazon/internal/models"

// Ownership predicates. Pure functions over already-loaded records; they
// never touch storage. Services apply them after resolving identity and
// loading the target, and return ErrForbidden when one fails.

// CanMutateOrder reports whether user owns the order.
func CanMutateOrder(user *models.User, order *models.Order) bool {
	return user != nil && order != nil && order.UserID == user.ID
}

// CanMutateUser reports whether user may mutate the account with the
// given ID. Self-service only: there is no administrative role.
func CanMutateUser(user *models.User, targetID uint) bool {
	return user != nil && user.ID == targetID
}

// CanUpdateItem reports whether user may update an item. Any
// authenticated caller may: the catalog carries no ownership of its own.
func CanUpdateItem(user *models.User) bool {
	return user != nil
}

// CanDeleteItem reports whether user may delete the item with the given
// ID. Deletion is narrower than update: the caller must own an order
// referencing the item. The user's orders must already be loaded.
func CanDeleteItem(user *models.User, itemID uint) bool {
	if user == nil {
		return false
	}
	for _, order := range user.Orders {
		if order.ItemID == itemID {
			return true
		}
	}
	return false
}
