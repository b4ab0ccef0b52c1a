package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"repairdesk/internal/config"
	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

const bcryptCost = 12

// CreateUserInput is the DTO for creating a user.
type CreateUserInput struct {
	Username string          `json:"username" binding:"required,min=3,max=255"`
	Password string          `json:"password" binding:"required,min=8"`
	Name     string          `json:"name" binding:"required"`
	Role     domain.UserRole `json:"role" binding:"required"`
}

// UpdateUserInput is the DTO for updating a user.
type UpdateUserInput struct {
	Name     *string          `json:"name"`
	Role     *domain.UserRole `json:"role"`
	IsActive *bool            `json:"is_active"`
	Password *string          `json:"password" binding:"omitempty,min=8"`
}

// UserService defines the user management contract.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	EnsureBootstrapAdmin(ctx context.Context, cfg config.AuthConfig) error
}

type userService struct {
	repo port.UserRepository
	log  *zap.Logger
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository, log *zap.Logger) UserService {
	return &userService{repo: repo, log: log}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if !domain.ValidUserRoles[input.Role] {
		return nil, domain.ErrInsufficientRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !domain.ValidUserRoles[*input.Role] {
			return nil, domain.ErrInsufficientRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureBootstrapAdmin creates the first admin account when no users exist.
// It is a no-op when users are present or no bootstrap password is configured.
func (s *userService) EnsureBootstrapAdmin(ctx context.Context, cfg config.AuthConfig) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("userService.EnsureBootstrapAdmin: %w", err)
	}
	if count > 0 {
		return nil
	}
	if cfg.BootstrapPassword == "" {
		s.log.Warn("userService.EnsureBootstrapAdmin: no users exist and no bootstrap password configured")
		return nil
	}

	_, err = s.Create(ctx, CreateUserInput{
		Username: cfg.BootstrapUsername,
		Password: cfg.BootstrapPassword,
		Name:     cfg.BootstrapName,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("userService.EnsureBootstrapAdmin: %w", err)
	}
	s.log.Info("userService.EnsureBootstrapAdmin: created bootstrap admin",
		zap.String("username", cfg.BootstrapUsername))
	return nil
}
