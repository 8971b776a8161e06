package services

import (
	"context"
	"fmt"

	"cramazon/internal/models"
	"cramazon/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for user accounts.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetAllUsers retrieves all users with their order history.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return users, nil
}

// GetUserByID retrieves a single user with their order history.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return user, nil
}

// UpdateUser applies a self-service update to the caller's own account.
// Empty fields are left unchanged; a new password is re-hashed before it
// is persisted.
func (s *UserService) UpdateUser(ctx context.Context, caller *models.User, id uint, email, fullName, password string) (*models.User, error) {
	if !CanMutateUser(caller, id) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}

	if email != "" && email != user.Email {
		if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
			return nil, fmt.Errorf("email '%s' %w", email, ErrConflict)
		}
		user.Email = email
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, mapStorageError(err)
	}
	return user, nil
}

// DeleteUser deletes the caller's own account together with its orders
// and returns the deleted record.
func (s *UserService) DeleteUser(ctx context.Context, caller *models.User, id uint) (*models.User, error) {
	if !CanMutateUser(caller, id) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, mapStorageError(err)
	}
	return user, nil
}
