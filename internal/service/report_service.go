package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/enlivotechnologies/leads-tracker/config"
	"github.com/enlivotechnologies/leads-tracker/internal/dto"
	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
	"github.com/enlivotechnologies/leads-tracker/pkg/redis"
)

// ReportService is the aggregation engine: per-day and per-employee KPI
// rollups over the lead store. All reads; zero-row inputs yield zero-valued
// KPIs, and store failures propagate unmodified (reporting queries are not
// retried).
//
// The three follow-up figures deliberately use different predicates:
// DailyKPIs counts the standing pending backlog, EmployeePerformance the
// day-scoped pending leads, and DateWiseReport every CALL_LATER lead in
// range. Each mirrors what its view historically showed.
type ReportService interface {
	DailyKPIs(ctx context.Context, date model.Date) (*dto.DailyKPIs, error)
	EmployeePerformance(ctx context.Context, date model.Date) ([]dto.PerformanceRow, error)
	EmployeesSummary(ctx context.Context) ([]dto.EmployeeSummary, error)
	EmployeeDetail(ctx context.Context, employeeID string, date model.Date) (*dto.EmployeeDetailResponse, error)
	PendingFollowUps(ctx context.Context) ([]model.Lead, error)
	UpcomingSlots(ctx context.Context, today model.Date) ([]model.Lead, error)
	FilteredLeads(ctx context.Context, req *dto.LeadFiltersRequest) ([]model.Lead, error)
	DateWiseReport(ctx context.Context, from, to model.Date) (dto.DateWiseReport, error)
}

type reportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewReportService creates the ReportService.
func NewReportService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ReportService {
	return &reportService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── DailyKPIs ──────────────────────

func (s *reportService) DailyKPIs(ctx context.Context, date model.Date) (*dto.DailyKPIs, error) {
	cacheKey := "kpis:" + date.String()

	// The dashboard polls every few seconds; a short cache bounds store
	// load. Cache failures degrade to a direct read.
	if s.rdb != nil {
		if raw, err := s.rdb.GetCached(ctx, cacheKey); err == nil && raw != "" {
			var cached dto.DailyKPIs
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	totalCalls, err := s.repo.Lead.CountByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	slotsBooked, err := s.repo.Lead.CountSlotBookedByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	// Standing backlog: not scoped to the target date.
	followUpsPending, err := s.repo.Lead.CountPendingFollowUps(ctx)
	if err != nil {
		return nil, err
	}
	totalDeals, err := s.repo.Lead.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.repo.Employee.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	kpis := &dto.DailyKPIs{
		TotalCalls:       totalCalls,
		SlotsBooked:      slotsBooked,
		FollowUpsPending: followUpsPending,
		TotalDeals:       totalDeals,
		TotalUsers:       totalUsers,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(kpis); err == nil {
			if err := s.rdb.SetCached(ctx, cacheKey, string(raw), s.cfg.Report.KPICacheTTL); err != nil {
				s.logger.Warn("cache kpis failed", zap.Error(err))
			}
		}
	}

	return kpis, nil
}

// ────────────────────── EmployeePerformance ──────────────────────

func (s *reportService) EmployeePerformance(ctx context.Context, date model.Date) ([]dto.PerformanceRow, error) {
	employees, err := s.repo.Employee.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	leads, err := s.repo.Lead.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]model.Lead, len(employees))
	for _, lead := range leads {
		byEmployee[lead.EmployeeID] = append(byEmployee[lead.EmployeeID], lead)
	}

	rows := make([]dto.PerformanceRow, 0, len(employees))
	for _, emp := range employees {
		stats := tallyDay(byEmployee[emp.ID])
		rows = append(rows, dto.PerformanceRow{
			ID:             emp.ID,
			Name:           emp.Name,
			Email:          emp.Email,
			Calls:          stats.Calls,
			Slots:          stats.Slots,
			Interested:     stats.Interested,
			FollowUps:      stats.FollowUps,
			InterestedRate: rate(stats.Interested, stats.Calls),
		})
	}

	return rows, nil
}

// ────────────────────── EmployeesSummary ──────────────────────

func (s *reportService) EmployeesSummary(ctx context.Context) ([]dto.EmployeeSummary, error) {
	employees, err := s.repo.Employee.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.Lead.CountGroupByEmployee(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, dto.EmployeeSummary{
			ID:         emp.ID,
			Name:       emp.Name,
			Email:      emp.Email,
			TotalLeads: counts[emp.ID],
			IsActive:   emp.IsActive,
		})
	}

	return rows, nil
}

// ────────────────────── EmployeeDetail ──────────────────────

func (s *reportService) EmployeeDetail(ctx context.Context, employeeID string, date model.Date) (*dto.EmployeeDetailResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	// Stats cover the target day and the previous one, but never a day
	// before the employee existed.
	days := []model.Date{date}
	prev := date.AddDays(-1)
	createdOn := model.DateOf(employee.CreatedAt)
	if !prev.Before(createdOn) {
		days = append(days, prev)
	}

	resp := &dto.EmployeeDetailResponse{
		Employee: dto.NewEmployeeResponse(employee),
		Days:     make([]dto.DayStats, 0, len(days)),
	}

	for _, day := range days {
		leads, err := s.repo.Lead.ListByEmployeeAndDate(ctx, employeeID, day)
		if err != nil {
			return nil, err
		}
		stats := tallyDay(leads)
		resp.Days = append(resp.Days, dto.DayStats{
			Date:       day,
			Calls:      stats.Calls,
			Slots:      stats.Slots,
			Interested: stats.Interested,
			FollowUps:  stats.FollowUps,
		})
		resp.Totals.Calls += stats.Calls
		resp.Totals.Slots += stats.Slots
		resp.Totals.Interested += stats.Interested
		resp.Totals.FollowUps += stats.FollowUps
	}

	// ConversionRate stays 0 in this view. That matches what the product
	// has always shown here; computing slots/calls is an open product
	// question, not an implementation gap.
	resp.Totals.ConversionRate = 0

	leads, err := s.repo.Lead.ListByEmployee(ctx, employeeID, s.cfg.Report.HistoryCap)
	if err != nil {
		return nil, err
	}
	resp.Leads = leads

	return resp, nil
}

// ────────────────────── lead listings ──────────────────────

func (s *reportService) PendingFollowUps(ctx context.Context) ([]model.Lead, error) {
	return s.repo.Lead.ListPendingFollowUps(ctx, "")
}

func (s *reportService) UpcomingSlots(ctx context.Context, today model.Date) ([]model.Lead, error) {
	return s.repo.Lead.ListUpcomingSlots(ctx, today)
}

func (s *reportService) FilteredLeads(ctx context.Context, req *dto.LeadFiltersRequest) ([]model.Lead, error) {
	filters := &repository.LeadFilters{
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		SlotBooked: req.SlotBooked,
		Flagged:    req.Flagged,
	}
	if req.DateFrom != "" {
		from, err := model.ParseDate(req.DateFrom)
		if err != nil {
			return nil, err
		}
		filters.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := model.ParseDate(req.DateTo)
		if err != nil {
			return nil, err
		}
		filters.DateTo = &to
	}

	return s.repo.Lead.ListWithFilters(ctx, filters, s.cfg.Report.FilteredLeadsCap)
}

// ────────────────────── DateWiseReport ──────────────────────

func (s *reportService) DateWiseReport(ctx context.Context, from, to model.Date) (dto.DateWiseReport, error) {
	leads, err := s.repo.Lead.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := make(dto.DateWiseReport)
	for i := range leads {
		lead := &leads[i]

		dateStr := lead.Date.String()
		empName := lead.EmployeeID
		if lead.Employee != nil {
			empName = lead.Employee.Name
		}

		if report[dateStr] == nil {
			report[dateStr] = make(map[string]*dto.ReportCell)
		}
		cell := report[dateStr][empName]
		if cell == nil {
			cell = &dto.ReportCell{}
			report[dateStr][empName] = cell
		}

		cell.Calls++
		if lead.SlotBooked() {
			cell.Slots++
		}
		// Historical report: every CALL_LATER in range counts, done or not.
		if lead.ResponseStatus == model.StatusCallLater {
			cell.FollowUps++
		}
	}

	return report, nil
}

// ── helpers ──

type dayTally struct {
	Calls      int
	Slots      int
	Interested int
	FollowUps  int
}

// tallyDay reduces one day's leads to its stat counters. FollowUps here is
// the day-scoped pending predicate.
func tallyDay(leads []model.Lead) dayTally {
	var t dayTally
	t.Calls = len(leads)
	for i := range leads {
		lead := &leads[i]
		if lead.SlotBooked() {
			t.Slots++
		}
		if lead.ResponseStatus == model.StatusInterested {
			t.Interested++
		}
		if lead.PendingFollowUp() {
			t.FollowUps++
		}
	}
	return t
}

// rate computes a percentage rounded half-up; 0 when the denominator is 0
// (2 interested out of 3 calls reports 67).
func rate(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
