package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cramazon/internal/models"
	"cramazon/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies identity tokens and resolves bearer
// tokens into loaded user records. It is the single place tokens are
// inspected; handlers go through ResolveUser (via the auth middleware)
// and never parse tokens themselves.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. Tokens are valid for five
// hours from issuance.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  5 * time.Hour,
	}
}

// CreateToken signs a token binding the given user ID.
func (s *AuthService) CreateToken(userID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the embedded user ID.
// Every failure mode collapses to ErrTokenInvalid; callers never see
// library-level parse errors.
func (s *AuthService) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrTokenInvalid
	}

	// Numeric JSON claims decode as float64.
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return 0, ErrTokenInvalid
	}
	return uint(rawID), nil
}

// ResolveUser authenticates a raw bearer token and loads the caller's
// account with their orders (and each order's item). This is the
// identity-resolution chokepoint every mutating endpoint runs through.
func (s *AuthService) ResolveUser(ctx context.Context, rawToken string) (*models.User, error) {
	if rawToken == "" {
		return nil, ErrTokenMissing
	}

	userID, err := s.VerifyToken(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		// The account may have been deleted after the token was issued.
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, mapStorageError(err)
	}
	return user, nil
}

// RegisterUser registers a new user, hashing their password before it is
// persisted. The email pre-check is a fast path; the unique index on
// email is authoritative and a concurrent duplicate insert still
// surfaces as ErrConflict.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' %w", user.Email, ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return mapStorageError(err)
	}
	return nil
}

// LoginUser authenticates an (email, password) pair and returns the user
// with a fresh token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", mapStorageError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.CreateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
