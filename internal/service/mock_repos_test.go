package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
)

// ── Mock IdentityRepository ──

type mockIdentityRepo struct {
	identities map[string]*model.Identity // keyed by user_id
	nextID     int
}

func newMockIdentityRepo() *mockIdentityRepo {
	return &mockIdentityRepo{identities: make(map[string]*model.Identity)}
}

func (m *mockIdentityRepo) Create(_ context.Context, identity *model.Identity) error {
	if identity.UserID == "" {
		m.nextID++
		identity.UserID = fmt.Sprintf("user-%03d", m.nextID)
	}
	m.identities[identity.UserID] = identity
	return nil
}

func (m *mockIdentityRepo) GetByEmail(_ context.Context, email string) (*model.Identity, error) {
	for _, id := range m.identities {
		if id.Email == email {
			return id, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIdentityRepo) GetByID(_ context.Context, userID string) (*model.Identity, error) {
	if id, ok := m.identities[userID]; ok {
		return id, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee // keyed by id
	nextID    int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	// Mirrors the ON CONFLICT (user_id) DO NOTHING insert.
	for _, e := range m.employees {
		if e.UserID == employee.UserID {
			return nil
		}
	}
	if employee.ID == "" {
		m.nextID++
		employee.ID = fmt.Sprintf("emp-%03d", m.nextID)
	}
	m.employees[employee.ID] = employee
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByUserID(_ context.Context, userID string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) ListActive(_ context.Context) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if e.Role == model.RoleEmployee && e.IsActive {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	m.employees[employee.ID] = employee
	return nil
}

func (m *mockEmployeeRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.employees)), nil
}

// ── Mock LeadRepository ──

type mockLeadRepo struct {
	leads  map[string]*model.Lead
	claims map[string]string // college key → owning employee id
	nextID int
}

func newMockLeadRepo() *mockLeadRepo {
	return &mockLeadRepo{
		leads:  make(map[string]*model.Lead),
		claims: make(map[string]string),
	}
}

func (m *mockLeadRepo) Create(_ context.Context, lead *model.Lead) error {
	key := model.CollegeKey(lead.CollegeName)
	if owner, claimed := m.claims[key]; claimed && owner != lead.EmployeeID {
		return repository.ErrDuplicateOwnership
	}
	m.claims[key] = lead.EmployeeID

	if lead.ID == "" {
		m.nextID++
		lead.ID = fmt.Sprintf("lead-%03d", m.nextID)
	}
	m.leads[lead.ID] = lead
	return nil
}

func (m *mockLeadRepo) GetByID(_ context.Context, id string) (*model.Lead, error) {
	if l, ok := m.leads[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeadRepo) GetOwned(_ context.Context, id, employeeID string) (*model.Lead, error) {
	if l, ok := m.leads[id]; ok && l.EmployeeID == employeeID {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeadRepo) Update(_ context.Context, lead *model.Lead) error {
	m.leads[lead.ID] = lead
	return nil
}

func (m *mockLeadRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	lead, ok := m.leads[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, val := range fields {
		switch col {
		case "follow_up_done":
			lead.FollowUpDone = val.(bool)
		case "is_flagged":
			lead.IsFlagged = val.(bool)
		case "admin_remarks":
			lead.AdminRemarks = val.(string)
		default:
			return fmt.Errorf("mockLeadRepo: unexpected column %q", col)
		}
	}
	return nil
}

func (m *mockLeadRepo) OwnerOf(_ context.Context, collegeKey string) (string, error) {
	return m.claims[collegeKey], nil
}

func (m *mockLeadRepo) ListByEmployeeAndDate(_ context.Context, employeeID string, date model.Date) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		if l.EmployeeID == employeeID && l.LoggedOn(date) {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeadRepo) ListByEmployee(_ context.Context, employeeID string, limit int) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		if l.EmployeeID == employeeID {
			result = append(result, *l)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockLeadRepo) ListCompleted(_ context.Context, employeeID string, limit int) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		if l.EmployeeID == employeeID && l.Completed() {
			result = append(result, *l)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockLeadRepo) ListPendingFollowUps(_ context.Context, employeeID string) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		if !l.PendingFollowUp() {
			continue
		}
		if employeeID != "" && l.EmployeeID != employeeID {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLeadRepo) ListUpcomingSlots(_ context.Context, today model.Date) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		if l.UpcomingSlot(today) {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeadRepo) ListByDate(_ context.Context, date model.Date) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		if l.LoggedOn(date) {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeadRepo) ListByDateRange(_ context.Context, from, to model.Date) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		if !l.Date.Before(from) && !l.Date.After(to) {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeadRepo) ListWithFilters(_ context.Context, filters *repository.LeadFilters, limit int) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		if filters.DateFrom != nil && l.Date.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && l.Date.After(*filters.DateTo) {
			continue
		}
		if filters.EmployeeID != "" && l.EmployeeID != filters.EmployeeID {
			continue
		}
		if filters.Status != "" && l.ResponseStatus != filters.Status {
			continue
		}
		switch filters.SlotBooked {
		case "yes":
			if !l.SlotBooked() {
				continue
			}
		case "no":
			if l.SlotRequested && l.SlotDate != nil {
				continue
			}
		}
		if filters.Flagged && !l.IsFlagged {
			continue
		}
		result = append(result, *l)
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockLeadRepo) CountByDate(_ context.Context, date model.Date) (int64, error) {
	var n int64
	for _, l := range m.leads {
		if l.LoggedOn(date) {
			n++
		}
	}
	return n, nil
}

func (m *mockLeadRepo) CountSlotBookedByDate(_ context.Context, date model.Date) (int64, error) {
	var n int64
	for _, l := range m.leads {
		if l.LoggedOn(date) && l.SlotBooked() {
			n++
		}
	}
	return n, nil
}

func (m *mockLeadRepo) CountPendingFollowUps(_ context.Context) (int64, error) {
	var n int64
	for _, l := range m.leads {
		if l.PendingFollowUp() {
			n++
		}
	}
	return n, nil
}

func (m *mockLeadRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.leads)), nil
}

func (m *mockLeadRepo) CountGroupByEmployee(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, l := range m.leads {
		counts[l.EmployeeID]++
	}
	return counts, nil
}

func (m *mockLeadRepo) CollegeSummary(_ context.Context, employeeID string) ([]repository.CollegeSummaryRow, error) {
	grouped := make(map[string]*repository.CollegeSummaryRow)
	for _, l := range m.leads {
		if l.EmployeeID != employeeID {
			continue
		}
		key := l.CollegeName + "|" + l.Location
		if grouped[key] == nil {
			grouped[key] = &repository.CollegeSummaryRow{
				CollegeName: l.CollegeName,
				Location:    l.Location,
			}
		}
		grouped[key].Count++
	}
	rows := make([]repository.CollegeSummaryRow, 0, len(grouped))
	for _, r := range grouped {
		rows = append(rows, *r)
	}
	return rows, nil
}
