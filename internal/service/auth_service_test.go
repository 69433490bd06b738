package service

import (
	"context"
	"testing"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(userRepo *fakeUserRepo) AuthService {
	return NewAuthService(userRepo, newFakeRoleRepo(), utils.NewJWTUtil("test-secret", 1), nil)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{
		Email: "jane@example.com", Password: "secret123", FirstName: "Jane", LastName: "Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.RoleNameUser, user.Role.Name)
	assert.Equal(t, 1, user.Role.Score)
	assert.Equal(t, model.StatusPending, user.Status)

	// Token carries the role score for middleware authorization.
	claims, err := utils.NewJWTUtil("test-secret", 1).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.RoleScore)

	loggedIn, token, err := svc.Login(ctx, "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "other456"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginBlockedUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	userRepo.users[user.ID].Status = model.StatusBlocked

	_, _, err = svc.Login(ctx, "jane@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestAuthService_InitialAdminEmail(t *testing.T) {
	t.Setenv("INITIAL_ADMIN_EMAIL", "boss@example.com")
	svc := newAuthService(newFakeUserRepo())

	user, _, err := svc.Register(context.Background(), RegisterInput{Email: "boss@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleNameSuperAdmin, user.Role.Name)
	assert.Equal(t, 999, user.Role.Score)
	assert.Equal(t, model.StatusActive, user.Status)
}

func TestAuthService_LogoutInvalidatesCachedProfile(t *testing.T) {
	inv := &fakeInvalidator{}
	svc := NewAuthService(newFakeUserRepo(), newFakeRoleRepo(), utils.NewJWTUtil("test-secret", 1), inv)

	err := svc.Logout(context.Background(), "tok-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"tok-1"}, inv.tokens)
}

func TestAuthService_LogoutWithoutCache(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	assert.NoError(t, svc.Logout(context.Background(), "tok-1"))
}
