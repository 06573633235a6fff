package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
)

const testDefaultPassword = "Welcome123!"

func setupTestEmployeeService() (EmployeeService, *testRepos) {
	repos := newTestRepos()
	svc := NewEmployeeService(repos.toRepository(), zap.NewNop(), testDefaultPassword)
	return svc, repos
}

func createEmployeeRequest(email string) *dto.CreateEmployeeRequest {
	return &dto.CreateEmployeeRequest{
		FirstName:  "Alice",
		LastName:   "Lee",
		Email:      email,
		Role:       "Cashier",
		Department: "Operations",
		Location:   "Front Desk",
		Skills:     []string{"pos-system", "customer-service"},
		Availability: map[string]dto.DayAvailabilityInput{
			"monday": {Start: "09:00", End: "17:00", Available: true},
		},
	}
}

func TestCreateEmployee_PairAndCode(t *testing.T) {
	svc, repos := setupTestEmployeeService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, createEmployeeRequest("alice.lee@example.com"), "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	wantCode := fmt.Sprintf("EMP-%d-0001", time.Now().Year())
	if resp.Code != wantCode {
		t.Errorf("Code = %q, want %q", resp.Code, wantCode)
	}
	if resp.Status != "active" || resp.FullName != "Alice Lee" {
		t.Errorf("unexpected employee: %+v", resp)
	}

	// the identity record was created alongside
	user, err := repos.user.GetByEmail(ctx, "alice.lee@example.com")
	if err != nil {
		t.Fatalf("identity record missing: %v", err)
	}
	if resp.UserID != user.UserID {
		t.Errorf("UserID = %q, want %q", resp.UserID, user.UserID)
	}
	if user.Role != "employee" {
		t.Errorf("user role = %q, want default employee", user.Role)
	}
	// no explicit password: the default applies and a change is forced
	if !user.MustChangePassword {
		t.Error("MustChangePassword should be set when no password was given")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(testDefaultPassword)) != nil {
		t.Error("password hash does not match the default password")
	}

	second, err := svc.Create(ctx, createEmployeeRequest("bob.ng@example.com"), "admin-1")
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if want := fmt.Sprintf("EMP-%d-0002", time.Now().Year()); second.Code != want {
		t.Errorf("second Code = %q, want %q", second.Code, want)
	}
}

func TestCreateEmployee_ExplicitPassword(t *testing.T) {
	svc, repos := setupTestEmployeeService()
	ctx := context.Background()

	req := createEmployeeRequest("carol.wu@example.com")
	req.Password = "S3cretPass!"
	req.UserRole = "manager"
	if _, err := svc.Create(ctx, req, "admin-1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	user, _ := repos.user.GetByEmail(ctx, "carol.wu@example.com")
	if user.MustChangePassword {
		t.Error("explicit password should not force a change")
	}
	if user.Role != "manager" {
		t.Errorf("user role = %q, want manager", user.Role)
	}
}

func TestCreateEmployee_EmailExists(t *testing.T) {
	svc, _ := setupTestEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createEmployeeRequest("alice.lee@example.com"), "admin-1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, createEmployeeRequest("alice.lee@example.com"), "admin-1"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestUpdateEmployee_EmailSync(t *testing.T) {
	svc, repos := setupTestEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createEmployeeRequest("alice.lee@example.com"), "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateEmployeeRequest{
		Email: strPtr("alice.new@example.com"),
	}, "admin-1")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Email != "alice.new@example.com" {
		t.Errorf("Email = %q, want the new address", updated.Email)
	}

	// the identity record follows the employee's email
	if _, err := repos.user.GetByEmail(ctx, "alice.new@example.com"); err != nil {
		t.Errorf("identity email not synced: %v", err)
	}
	if _, err := repos.user.GetByEmail(ctx, "alice.lee@example.com"); err == nil {
		t.Error("old identity email still resolvable")
	}
}

func TestUpdateEmployee_EmailCollision(t *testing.T) {
	svc, _ := setupTestEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createEmployeeRequest("alice.lee@example.com"), "admin-1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(ctx, createEmployeeRequest("bob.ng@example.com"), "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Update(ctx, second.ID, &dto.UpdateEmployeeRequest{
		Email: strPtr("alice.lee@example.com"),
	}, "admin-1"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestDeleteEmployee_RemovesPair(t *testing.T) {
	svc, repos := setupTestEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createEmployeeRequest("alice.lee@example.com"), "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "admin-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
	if _, err := repos.user.GetByID(ctx, created.UserID); err == nil {
		t.Error("identity record survived employee deletion")
	}

	// the allocated code is never reused
	next, err := svc.Create(ctx, createEmployeeRequest("bob.ng@example.com"), "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if want := fmt.Sprintf("EMP-%d-0002", time.Now().Year()); next.Code != want {
		t.Errorf("Code = %q, want %q after deletion", next.Code, want)
	}
}

func TestAvailabilityForDate(t *testing.T) {
	svc, _ := setupTestEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createEmployeeRequest("alice.lee@example.com"), "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	monday, err := svc.AvailabilityForDate(ctx, created.ID, "2026-01-05")
	if err != nil {
		t.Fatalf("AvailabilityForDate failed: %v", err)
	}
	if !monday.Available || monday.Start != "09:00" || monday.End != "17:00" || monday.Weekday != "monday" {
		t.Errorf("unexpected monday availability: %+v", monday)
	}

	// tuesday is absent from the availability map
	tuesday, err := svc.AvailabilityForDate(ctx, created.ID, "2026-01-06")
	if err != nil {
		t.Fatalf("AvailabilityForDate failed: %v", err)
	}
	if tuesday.Available {
		t.Errorf("expected unavailable tuesday, got %+v", tuesday)
	}

	if _, err := svc.AvailabilityForDate(ctx, created.ID, "not-a-date"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
	if _, err := svc.AvailabilityForDate(ctx, "missing", "2026-01-05"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestSearchBySkills(t *testing.T) {
	svc, _ := setupTestEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createEmployeeRequest("alice.lee@example.com"), "admin-1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	noMatch := createEmployeeRequest("bob.ng@example.com")
	noMatch.Skills = []string{"forklift"}
	if _, err := svc.Create(ctx, noMatch, "admin-1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	inactive := createEmployeeRequest("ivan.petrov@example.com")
	created, err := svc.Create(ctx, inactive, "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, &dto.UpdateEmployeeRequest{
		Status: strPtr("inactive"),
	}, "admin-1"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// any-skill match over the active pool
	results, err := svc.SearchBySkills(ctx, &dto.SkillSearchRequest{
		Skills: []string{"pos-system", "barista"},
	})
	if err != nil {
		t.Fatalf("SearchBySkills failed: %v", err)
	}
	if len(results) != 1 || results[0].Email != "alice.lee@example.com" {
		t.Errorf("unexpected search results: %+v", results)
	}
}
