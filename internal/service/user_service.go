package service

import (
	"context"
	"errors"
	"fmt"

	"travel_fleet/internal/model"
	"travel_fleet/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfDelete   = errors.New("you cannot delete your own account")
)

// UserService provides user administration operations
type UserService interface {
	List(ctx context.Context, page, limit int) ([]model.User, model.Pagination, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Delete(ctx context.Context, id, actorID primitive.ObjectID) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// List returns one page of users plus pagination metadata
func (s *userService) List(ctx context.Context, page, limit int) ([]model.User, model.Pagination, error) {
	skip := int64(page-1) * int64(limit)

	users, err := s.userRepo.FindAll(ctx, skip, int64(limit))
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to count users: %w", err)
	}

	return users, model.NewPagination(page, limit, total), nil
}

// GetByID returns a single user
func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete removes a user. Admins cannot delete their own account.
func (s *userService) Delete(ctx context.Context, id, actorID primitive.ObjectID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.ID == actorID {
		return nil, ErrSelfDelete
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}
