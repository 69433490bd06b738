package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/service"
	"github.com/hasan-mia/the-x-tribune-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	user  *model.User
	token string
	err   error

	loggedOut []string
}

func (s *stubAuthService) Register(ctx context.Context, input service.RegisterInput) (*model.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func authRouter(svc service.AuthService, jwtUtil *utils.JWTUtil) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(svc, jwtUtil)
	h.RegisterAuthRoutes(r.Group("/api/v1"))
	return r
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &stubAuthService{
		user:  &model.User{ID: 1, Email: "a@b.com", Role: model.Role{Name: model.RoleNameUser, Score: 1}},
		token: "tok-1",
	}
	r := authRouter(svc, utils.NewJWTUtil("secret", 1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"a@b.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok-1", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, 1, resp.User.Role.Score)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: service.ErrInvalidCredentials}
	r := authRouter(svc, utils.NewJWTUtil("secret", 1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestAuthHandler_LoginBlocked(t *testing.T) {
	svc := &stubAuthService{err: service.ErrUserBlocked}
	r := authRouter(svc, utils.NewJWTUtil("secret", 1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"a@b.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	svc := &stubAuthService{err: service.ErrUserAlreadyExists}
	r := authRouter(svc, utils.NewJWTUtil("secret", 1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"email":"a@b.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_RegisterRejectsBadInput(t *testing.T) {
	r := authRouter(&stubAuthService{}, utils.NewJWTUtil("secret", 1))

	// password below the minimum length
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"email":"a@b.com","password":"ab"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LogoutPassesToken(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	svc := &stubAuthService{}
	r := authRouter(svc, jwtUtil)

	token, err := jwtUtil.GenerateToken(1, "a@b.com", "User", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{token}, svc.loggedOut)
}
