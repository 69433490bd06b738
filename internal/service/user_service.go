package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/repository"
)

var (
	ErrRoleNotFound         = errors.New("role not found")
	ErrInvalidStatusChange  = errors.New("invalid status change")
	ErrCannotDemoteYourself = errors.New("cannot change your own role")
)

// ProfileUpdate carries the fields a user may change on their own profile.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Avatar    string
	Phone     string
	Address   string
}

// UserService provides the admin panel's user management operations.
type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	Get(ctx context.Context, id int) (*model.User, error)
	UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (*model.User, error)
	ChangeStatus(ctx context.Context, id int, newStatus string) (*model.User, error)
	AssignRole(ctx context.Context, actorID, id int, roleName string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile replaces the mutable profile fields.
func (s *userService) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Avatar = update.Avatar
	user.Phone = update.Phone
	user.Address = update.Address

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return user, nil
}

// ChangeStatus moves an account through the status workflow. Invalid
// transitions (anything back to pending, pending to pending, unknown
// statuses) are rejected.
func (s *userService) ChangeStatus(ctx context.Context, id int, newStatus string) (*model.User, error) {
	if err := model.ValidateStatus(newStatus); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatusChange, err)
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.ValidStatusTransition(user.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChange, user.Status, newStatus)
	}

	if err := s.userRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	user.Status = newStatus
	return user, nil
}

// AssignRole reassigns a user's role by name. An admin cannot change their
// own role; a second super admin has to do it.
func (s *userService) AssignRole(ctx context.Context, actorID, id int, roleName string) (*model.User, error) {
	if actorID == id {
		return nil, ErrCannotDemoteYourself
	}

	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, id, role.ID); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = *role
	return user, nil
}
