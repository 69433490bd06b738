package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/repository"
	"github.com/hasan-mia/the-x-tribune-server/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("account is blocked")
)

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// TokenInvalidator drops cached data keyed to a token, used at logout.
type TokenInvalidator interface {
	Invalidate(ctx context.Context, token string) error
}

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	jwtUtil     *utils.JWTUtil
	invalidator TokenInvalidator
}

// NewAuthService creates a new AuthService. invalidator may be nil when no
// cache is configured.
func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtUtil *utils.JWTUtil, invalidator TokenInvalidator) AuthService {
	return &authService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		jwtUtil:     jwtUtil,
		invalidator: invalidator,
	}
}

// Register creates a new account with the basic role and a pending status.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	roleName := model.RoleNameUser
	status := model.StatusPending

	// Check for initial admin setup via environment variable
	initialAdminEmail := os.Getenv("INITIAL_ADMIN_EMAIL")
	if initialAdminEmail != "" && input.Email == initialAdminEmail {
		roleName = model.RoleNameSuperAdmin
		status = model.StatusActive
		log.Printf("INFO: User %s is being registered as SUPER ADMIN via INITIAL_ADMIN_EMAIL.", input.Email)
	}

	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up role %q: %w", roleName, err)
	}
	if role == nil {
		return nil, "", fmt.Errorf("role %q is not seeded", roleName)
	}

	user := &model.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashedPassword,
		Role:         *role,
		Status:       status,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email, user.Role.Name, user.Role.Score)
	if err != nil {
		log.Printf("ERROR: User %s (ID: %d) created, but failed to generate token: %v", user.Email, user.ID, err)
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	if user.Status == model.StatusBlocked {
		return nil, "", ErrUserBlocked
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email, user.Role.Name, user.Role.Score)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Logout invalidates cached data keyed to the token. Tokens themselves stay
// valid until they expire; logout only evicts the session's cached profile.
func (s *authService) Logout(ctx context.Context, token string) error {
	if s.invalidator == nil {
		return nil
	}
	if err := s.invalidator.Invalidate(ctx, token); err != nil {
		return fmt.Errorf("failed to invalidate cached profile: %w", err)
	}
	return nil
}
