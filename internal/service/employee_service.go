package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
)

// ErrEmployeeNotFound is returned when the referenced Employee does not exist.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeService resolves authenticated identities to Employee records.
type EmployeeService interface {
	// ResolveOrCreate returns the Employee for an identity, creating one
	// on first login. Idempotent: concurrent first logins still end with
	// a single record.
	ResolveOrCreate(ctx context.Context, userID, email, name string) (*model.Employee, error)
	GetByUserID(ctx context.Context, userID string) (*model.Employee, error)
	GetByID(ctx context.Context, id string) (*model.Employee, error)
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService creates the EmployeeService.
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) ResolveOrCreate(ctx context.Context, userID, email, name string) (*model.Employee, error) {
	employee, err := s.repo.Employee.GetByUserID(ctx, userID)
	if err == nil {
		return employee, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup employee failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	employee = &model.Employee{
		UserID:   userID,
		Email:    email,
		Name:     displayName(name, email),
		Role:     model.RoleEmployee,
		IsActive: true,
	}

	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		s.logger.Error("create employee failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// Re-read: on a concurrent first login the insert may have been a
	// no-op against the earlier row.
	created, err := s.repo.Employee.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *employeeService) GetByUserID(ctx context.Context, userID string) (*model.Employee, error) {
	employee, err := s.repo.Employee.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// displayName picks the employee's display name: the identity name when
// present, otherwise the local part of the email.
func displayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "Employee"
}
