package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rakibhasaniu/employee-schedule/config"
	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	"github.com/Rakibhasaniu/employee-schedule/pkg/jwt"
)

func setupTestAuthService() (AuthService, *jwt.Manager, *testRepos) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "unit-test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			DefaultPassword: testDefaultPassword,
		},
	}
	repos := newTestRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// nil Redis client: revocation degrades to token expiry
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, jwtMgr, repos
}

func createTestUser(t *testing.T, repos *testRepos, email, password, role, status string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	}
	if err := repos.user.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, jwtMgr, repos := setupTestAuthService()
	ctx := context.Background()

	user := createTestUser(t, repos, "alice.lee@example.com", "password123", "employee", "active")
	emp := seedEmployee(repos, "Alice", "Lee")
	emp.UserID = user.UserID

	resp, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "alice.lee@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("ExpiresIn = %d, want 900", resp.ExpiresIn)
	}
	if resp.User.ID != user.UserID || resp.User.Role != "employee" {
		t.Errorf("unexpected user payload: %+v", resp.User)
	}
	if resp.User.EmployeeID != emp.EmployeeID {
		t.Errorf("EmployeeID = %q, want %q", resp.User.EmployeeID, emp.EmployeeID)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != user.UserID {
		t.Errorf("unexpected access claims: %+v", claims)
	}
	refreshClaims, err := jwtMgr.ParseToken(resp.RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if refreshClaims.TokenType != "refresh" {
		t.Errorf("refresh TokenType = %q", refreshClaims.TokenType)
	}
}

func TestLogin_Failures(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	ctx := context.Background()

	createTestUser(t, repos, "alice.lee@example.com", "password123", "employee", "active")
	createTestUser(t, repos, "ivan.petrov@example.com", "password123", "employee", "inactive")

	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "alice.lee@example.com", Password: "wrong-password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "ivan.petrov@example.com", Password: "password123",
	}); !errors.Is(err, ErrUserInactive) {
		t.Errorf("inactive account: expected ErrUserInactive, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	ctx := context.Background()

	createTestUser(t, repos, "alice.lee@example.com", "password123", "employee", "active")

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "alice.lee@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("expected a fresh token pair")
	}

	// an access token is not accepted as a refresh token
	if _, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.AccessToken}); !errors.Is(err, ErrNotRefreshToken) {
		t.Errorf("expected ErrNotRefreshToken, got %v", err)
	}

	if _, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: "garbage"}); !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefresh_InactiveUser(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	ctx := context.Background()

	user := createTestUser(t, repos, "alice.lee@example.com", "password123", "employee", "active")
	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "alice.lee@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// account disabled between login and refresh
	user.Status = "inactive"
	if _, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, ErrUserInactive) {
		t.Errorf("expected ErrUserInactive, got %v", err)
	}
}

func TestLogout_WithoutRedis(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	ctx := context.Background()

	createTestUser(t, repos, "alice.lee@example.com", "password123", "employee", "active")
	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "alice.lee@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(ctx, login.AccessToken, login.RefreshToken); err != nil {
		t.Errorf("Logout without Redis should be a no-op, got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	ctx := context.Background()

	user := createTestUser(t, repos, "alice.lee@example.com", "password123", "employee", "active")
	emp := seedEmployee(repos, "Alice", "Lee")
	emp.UserID = user.UserID

	me, err := svc.Me(ctx, user.UserID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.User.Email != "alice.lee@example.com" || me.User.EmployeeID != emp.EmployeeID {
		t.Errorf("unexpected user payload: %+v", me.User)
	}
	if me.Employee == nil || me.Employee.FullName != "Alice Lee" {
		t.Errorf("employee profile not attached: %+v", me.Employee)
	}

	if _, err := svc.Me(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, repos := setupTestAuthService()
	ctx := context.Background()

	user := createTestUser(t, repos, "alice.lee@example.com", "password123", "employee", "active")
	user.MustChangePassword = true

	if err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "newpassword456",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	}); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	stored, _ := repos.user.GetByID(ctx, user.UserID)
	if stored.MustChangePassword {
		t.Error("MustChangePassword should be cleared")
	}

	// the new password works, the old one does not
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "alice.lee@example.com", Password: "newpassword456",
	}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "alice.lee@example.com", Password: "password123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}
}
