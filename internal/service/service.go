package service

import (
	"go.uber.org/zap"

	"github.com/enlivotechnologies/leads-tracker/config"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
	"github.com/enlivotechnologies/leads-tracker/pkg/jwt"
	"github.com/enlivotechnologies/leads-tracker/pkg/redis"
)

// Service aggregates all business services behind one injection point.
type Service struct {
	Auth     AuthService
	Employee EmployeeService
	Lead     LeadService
	Report   ReportService
	Export   ExportService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	employee := NewEmployeeService(repo, logger)
	report := NewReportService(cfg, repo, rdb, logger)

	return &Service{
		Auth:     NewAuthService(cfg, repo, employee, jwtMgr, rdb, logger),
		Employee: employee,
		Lead:     NewLeadService(cfg, repo, logger),
		Report:   report,
		Export:   NewExportService(repo, report, logger),
	}
}
