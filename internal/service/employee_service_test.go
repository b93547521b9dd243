package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
)

func setupTestEmployeeService() (EmployeeService, *mockEmployeeRepo) {
	employeeRepo := newMockEmployeeRepo()
	repo := &repository.Repository{
		Identity: newMockIdentityRepo(),
		Employee: employeeRepo,
		Lead:     newMockLeadRepo(),
	}
	svc := NewEmployeeService(repo, zap.NewNop())
	return svc, employeeRepo
}

func TestEmployeeService_ResolveOrCreate_FirstLogin(t *testing.T) {
	svc, _ := setupTestEmployeeService()

	employee, err := svc.ResolveOrCreate(context.Background(), "user-001", "asha@enlivo.in", "Asha")
	if err != nil {
		t.Fatalf("ResolveOrCreate should succeed: %v", err)
	}
	if employee.Role != model.RoleEmployee {
		t.Errorf("first login defaults to EMPLOYEE, got %s", employee.Role)
	}
	if !employee.IsActive {
		t.Error("first login defaults to active")
	}
	if employee.Name != "Asha" {
		t.Errorf("expected name Asha, got %s", employee.Name)
	}
}

func TestEmployeeService_ResolveOrCreate_Idempotent(t *testing.T) {
	svc, employeeRepo := setupTestEmployeeService()

	first, err := svc.ResolveOrCreate(context.Background(), "user-001", "asha@enlivo.in", "Asha")
	if err != nil {
		t.Fatalf("first resolve should succeed: %v", err)
	}
	second, err := svc.ResolveOrCreate(context.Background(), "user-001", "asha@enlivo.in", "Asha")
	if err != nil {
		t.Fatalf("second resolve should succeed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("resolving twice must return the same record: %s vs %s", first.ID, second.ID)
	}
	if len(employeeRepo.employees) != 1 {
		t.Errorf("expected exactly 1 employee, got %d", len(employeeRepo.employees))
	}
}

func TestEmployeeService_ResolveOrCreate_NameFallback(t *testing.T) {
	svc, _ := setupTestEmployeeService()

	employee, err := svc.ResolveOrCreate(context.Background(), "user-002", "ravi.k@enlivo.in", "")
	if err != nil {
		t.Fatalf("ResolveOrCreate should succeed: %v", err)
	}
	if employee.Name != "ravi.k" {
		t.Errorf("empty name should fall back to the email local part, got %q", employee.Name)
	}
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestEmployeeService()

	_, err := svc.GetByID(context.Background(), "missing")
	if err != ErrEmployeeNotFound {
		t.Errorf("expected ErrEmployeeNotFound, got: %v", err)
	}
}
