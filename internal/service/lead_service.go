package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/enlivotechnologies/leads-tracker/config"
	"github.com/enlivotechnologies/leads-tracker/internal/dto"
	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
)

// ── lead module business errors ──

var (
	// ErrDuplicateOwnership rejects a lead for a college actively owned
	// by a different employee.
	ErrDuplicateOwnership = errors.New("college already contacted by another employee")
	// ErrMissingSlotDate rejects slot_requested without a slot date.
	ErrMissingSlotDate = errors.New("slot date is required when a slot is requested")
	// ErrCollegeNameRequired rejects an empty college name after trimming.
	ErrCollegeNameRequired = errors.New("college name is required")
	// ErrLeadNotFound covers both a missing lead and one owned by someone else.
	ErrLeadNotFound = errors.New("lead not found")
)

// LeadService is the lead lifecycle engine: field validation on
// create/update, the one-way follow-up-done transition, the admin metadata
// overlay, and the employee-facing query surface.
type LeadService interface {
	Create(ctx context.Context, employeeID string, req *dto.CreateLeadRequest) (*model.Lead, error)
	Update(ctx context.Context, leadID, employeeID string, req *dto.UpdateLeadRequest) (*model.Lead, error)
	// MarkFollowUpDone is idempotent; employeeID "" skips the ownership
	// check (admin path).
	MarkFollowUpDone(ctx context.Context, leadID, employeeID string) (*model.Lead, error)
	// AdminOverlay writes each present overlay field independently; a
	// failure in one never corrupts another.
	AdminOverlay(ctx context.Context, leadID string, req *dto.AdminOverlayRequest) (*model.Lead, error)

	ListByDate(ctx context.Context, employeeID string, date model.Date) ([]model.Lead, error)
	FollowUps(ctx context.Context, employeeID string) ([]model.Lead, error)
	Completed(ctx context.Context, employeeID string) ([]model.Lead, error)
	History(ctx context.Context, employeeID string) ([]model.Lead, error)
	CollegeSummary(ctx context.Context, employeeID string) ([]dto.CollegeSummaryRow, error)
	// CheckAvailability is the optimistic pre-check; the authoritative
	// check runs inside the create transaction.
	CheckAvailability(ctx context.Context, employeeID, collegeName string) (bool, error)
}

type leadService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeadService creates the LeadService.
func NewLeadService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) LeadService {
	return &leadService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *leadService) Create(ctx context.Context, employeeID string, req *dto.CreateLeadRequest) (*model.Lead, error) {
	collegeName := strings.TrimSpace(req.CollegeName)
	if collegeName == "" {
		return nil, ErrCollegeNameRequired
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if req.SlotRequested && req.SlotDate == "" {
		return nil, ErrMissingSlotDate
	}

	lead := &model.Lead{
		EmployeeID:     employeeID,
		Date:           date,
		CollegeName:    collegeName,
		Location:       strings.TrimSpace(req.Location),
		ContactPerson:  strings.TrimSpace(req.ContactPerson),
		Designation:    req.Designation,
		Phone:          strings.TrimSpace(req.Phone),
		CallType:       req.CallType,
		ResponseStatus: req.ResponseStatus,
		SlotRequested:  req.SlotRequested,
		Remarks:        req.Remarks,
	}

	// A slot date only exists alongside a requested slot.
	if req.SlotRequested {
		slotDate, err := model.ParseDate(req.SlotDate)
		if err != nil {
			return nil, err
		}
		lead.SlotDate = &slotDate
	}

	if req.FollowUpDate != "" {
		followUp, err := model.ParseDate(req.FollowUpDate)
		if err != nil {
			return nil, err
		}
		lead.FollowUpDate = &followUp
	}

	if err := s.repo.Lead.Create(ctx, lead); err != nil {
		if errors.Is(err, repository.ErrDuplicateOwnership) {
			return nil, ErrDuplicateOwnership
		}
		s.logger.Error("create lead failed",
			zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	return lead, nil
}

// ────────────────────── Update ──────────────────────

func (s *leadService) Update(ctx context.Context, leadID, employeeID string, req *dto.UpdateLeadRequest) (*model.Lead, error) {
	// Ownership check and fetch in one: a lead owned by someone else is
	// indistinguishable from a missing one.
	lead, err := s.repo.Lead.GetOwned(ctx, leadID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		s.logger.Error("lookup lead failed", zap.String("id", leadID), zap.Error(err))
		return nil, err
	}

	if req.CollegeName != nil {
		name := strings.TrimSpace(*req.CollegeName)
		if name == "" {
			return nil, ErrCollegeNameRequired
		}
		lead.CollegeName = name
	}
	if req.Location != nil {
		lead.Location = strings.TrimSpace(*req.Location)
	}
	if req.ContactPerson != nil {
		lead.ContactPerson = strings.TrimSpace(*req.ContactPerson)
	}
	if req.Designation != nil {
		lead.Designation = *req.Designation
	}
	if req.Phone != nil {
		lead.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CallType != nil {
		lead.CallType = *req.CallType
	}
	if req.ResponseStatus != nil {
		lead.ResponseStatus = *req.ResponseStatus
	}
	if req.Remarks != nil {
		lead.Remarks = *req.Remarks
	}
	if req.SlotRequested != nil {
		lead.SlotRequested = *req.SlotRequested
	}
	if req.SlotDate != nil {
		if *req.SlotDate == "" {
			lead.SlotDate = nil
		} else {
			slotDate, err := model.ParseDate(*req.SlotDate)
			if err != nil {
				return nil, err
			}
			lead.SlotDate = &slotDate
		}
	}
	if req.FollowUpDate != nil {
		if *req.FollowUpDate == "" {
			lead.FollowUpDate = nil
		} else {
			followUp, err := model.ParseDate(*req.FollowUpDate)
			if err != nil {
				return nil, err
			}
			lead.FollowUpDate = &followUp
		}
	}

	// Invariant after any successful write: slot_requested implies a slot
	// date, and withdrawing the request clears the date.
	if lead.SlotRequested && lead.SlotDate == nil {
		return nil, ErrMissingSlotDate
	}
	if !lead.SlotRequested {
		lead.SlotDate = nil
	}

	if err := s.repo.Lead.Update(ctx, lead); err != nil {
		s.logger.Error("update lead failed", zap.String("id", leadID), zap.Error(err))
		return nil, err
	}

	return lead, nil
}

// ────────────────────── MarkFollowUpDone ──────────────────────

func (s *leadService) MarkFollowUpDone(ctx context.Context, leadID, employeeID string) (*model.Lead, error) {
	if employeeID != "" {
		if _, err := s.repo.Lead.GetOwned(ctx, leadID, employeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLeadNotFound
			}
			return nil, err
		}
	}

	// One-way transition; marking an already-done lead is a no-op that
	// still succeeds.
	err := s.repo.Lead.UpdateFields(ctx, leadID, map[string]interface{}{"follow_up_done": true})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		s.logger.Error("mark follow-up done failed", zap.String("id", leadID), zap.Error(err))
		return nil, err
	}

	return s.repo.Lead.GetByID(ctx, leadID)
}

// ────────────────────── AdminOverlay ──────────────────────

func (s *leadService) AdminOverlay(ctx context.Context, leadID string, req *dto.AdminOverlayRequest) (*model.Lead, error) {
	// The overlay is metadata on top of employee-owned content: no
	// ownership or duplicate re-validation, and each field is its own
	// atomic write.
	writes := make([]map[string]interface{}, 0, 3)
	if req.IsFlagged != nil {
		writes = append(writes, map[string]interface{}{"is_flagged": *req.IsFlagged})
	}
	if req.AdminRemarks != nil {
		writes = append(writes, map[string]interface{}{"admin_remarks": *req.AdminRemarks})
	}
	if req.FollowUpDone != nil {
		writes = append(writes, map[string]interface{}{"follow_up_done": *req.FollowUpDone})
	}

	for _, fields := range writes {
		if err := s.repo.Lead.UpdateFields(ctx, leadID, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLeadNotFound
			}
			s.logger.Error("admin overlay write failed", zap.String("id", leadID), zap.Error(err))
			return nil, err
		}
	}

	lead, err := s.repo.Lead.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

// ────────────────────── employee query surface ──────────────────────

func (s *leadService) ListByDate(ctx context.Context, employeeID string, date model.Date) ([]model.Lead, error) {
	return s.repo.Lead.ListByEmployeeAndDate(ctx, employeeID, date)
}

func (s *leadService) FollowUps(ctx context.Context, employeeID string) ([]model.Lead, error) {
	return s.repo.Lead.ListPendingFollowUps(ctx, employeeID)
}

func (s *leadService) Completed(ctx context.Context, employeeID string) ([]model.Lead, error) {
	return s.repo.Lead.ListCompleted(ctx, employeeID, s.cfg.Report.CompletedCap)
}

func (s *leadService) History(ctx context.Context, employeeID string) ([]model.Lead, error) {
	return s.repo.Lead.ListByEmployee(ctx, employeeID, s.cfg.Report.HistoryCap)
}

func (s *leadService) CollegeSummary(ctx context.Context, employeeID string) ([]dto.CollegeSummaryRow, error) {
	rows, err := s.repo.Lead.CollegeSummary(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CollegeSummaryRow, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.CollegeSummaryRow{
			CollegeName: r.CollegeName,
			Location:    r.Location,
			Count:       r.Count,
		})
	}
	return result, nil
}

func (s *leadService) CheckAvailability(ctx context.Context, employeeID, collegeName string) (bool, error) {
	key := model.CollegeKey(collegeName)
	if key == "" {
		return false, ErrCollegeNameRequired
	}
	owner, err := s.repo.Lead.OwnerOf(ctx, key)
	if err != nil {
		return false, err
	}
	return owner == "" || owner == employeeID, nil
}
