package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kindbridge/internal/utils"
	"kindbridge/internal/validate"
	"kindbridge/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, user *types.User) error
	User(ctx context.Context, userID string) (*types.User, error)
	UserByEmail(ctx context.Context, email string) (*types.User, error)
}

type AccountService struct {
	users UserStore
}

func NewAccountService(users UserStore) *AccountService {
	return &AccountService{users: users}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
	Phone    string
	Address  string
	Bio      string
}

// Register creates a user with the chosen role. A taken email is
// reported as types.ErrEmailTaken and leaves the existing row alone.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	if err := validationError(validate.Registration(
		input.Email, input.Password, input.FullName, input.Role, input.Phone, input.Address,
	)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         types.UserRole(input.Role),
		Phone:        utils.NullableString(strings.TrimSpace(input.Phone)),
		Address:      utils.NullableString(strings.TrimSpace(input.Address)),
		Bio:          utils.NullableString(strings.TrimSpace(input.Bio)),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials without revealing which of the two was
// wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (*types.User, error) {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, types.ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, types.ErrBadCredentials
	}

	return user, nil
}

func (s *AccountService) User(ctx context.Context, userID string) (*types.User, error) {
	return s.users.User(ctx, userID)
}
