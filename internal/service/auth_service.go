package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel_fleet/internal/model"
	"travel_fleet/internal/repository"
	"travel_fleet/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService provides registration and login
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	email := utils.NormalizeEmail(req.Email)

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleCustomer // Default role
	}

	user := &model.User{
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Lost the race against a concurrent registration.
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
