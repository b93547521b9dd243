package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/enlivotechnologies/leads-tracker/internal/model"
)

// ErrDuplicateOwnership is returned when a lead creation collides with
// another employee's active claim on the same college. It is raised inside
// the create transaction, so the check-then-insert is atomic.
var ErrDuplicateOwnership = errors.New("college already owned by another employee")

// pendingFollowUpExpr is the SQL form of Lead.PendingFollowUp.
const pendingFollowUpExpr = "follow_up_done = FALSE" +
	" AND (follow_up_date IS NOT NULL OR response_status = 'CALL_LATER')" +
	" AND NOT (slot_requested = TRUE AND slot_date IS NOT NULL)"

// LeadFilters narrows the admin lead listing. Zero values mean "no filter".
type LeadFilters struct {
	DateFrom   *model.Date
	DateTo     *model.Date
	EmployeeID string
	Status     string
	SlotBooked string // "yes" | "no" | ""
	Flagged    bool
}

// LeadRepository is the Lead store.
type LeadRepository interface {
	// Create inserts the lead and its college claim in one transaction.
	// Returns ErrDuplicateOwnership when the college is actively owned by
	// a different employee.
	Create(ctx context.Context, lead *model.Lead) error
	GetByID(ctx context.Context, id string) (*model.Lead, error)
	GetOwned(ctx context.Context, id, employeeID string) (*model.Lead, error)
	Update(ctx context.Context, lead *model.Lead) error
	// UpdateFields applies a single atomic partial write. Returns
	// gorm.ErrRecordNotFound when no row matched.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	// OwnerOf reports the employee holding the claim on a college key, or
	// "" when unclaimed.
	OwnerOf(ctx context.Context, collegeKey string) (string, error)

	ListByEmployeeAndDate(ctx context.Context, employeeID string, date model.Date) ([]model.Lead, error)
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]model.Lead, error)
	ListCompleted(ctx context.Context, employeeID string, limit int) ([]model.Lead, error)
	// ListPendingFollowUps returns the follow-up backlog, org-wide when
	// employeeID is "".
	ListPendingFollowUps(ctx context.Context, employeeID string) ([]model.Lead, error)
	ListUpcomingSlots(ctx context.Context, today model.Date) ([]model.Lead, error)
	ListByDate(ctx context.Context, date model.Date) ([]model.Lead, error)
	ListByDateRange(ctx context.Context, from, to model.Date) ([]model.Lead, error)
	ListWithFilters(ctx context.Context, filters *LeadFilters, limit int) ([]model.Lead, error)

	CountByDate(ctx context.Context, date model.Date) (int64, error)
	CountSlotBookedByDate(ctx context.Context, date model.Date) (int64, error)
	CountPendingFollowUps(ctx context.Context) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountGroupByEmployee(ctx context.Context) (map[string]int64, error)
	CollegeSummary(ctx context.Context, employeeID string) ([]CollegeSummaryRow, error)
}

// CollegeSummaryRow is one grouped row of an employee's per-college calls.
type CollegeSummaryRow struct {
	CollegeName string
	Location    string
	Count       int64
}

type leadRepo struct {
	db *gorm.DB
}

// NewLeadRepo creates the GORM-backed LeadRepository.
func NewLeadRepo(db *gorm.DB) LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(ctx context.Context, lead *model.Lead) error {
	key := model.CollegeKey(lead.CollegeName)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := model.CollegeClaim{CollegeKey: key, EmployeeID: lead.EmployeeID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "college_key"}},
			DoNothing: true,
		}).Create(&claim).Error; err != nil {
			return err
		}

		// Re-read: either our insert or the earlier claimant's row.
		var owner model.CollegeClaim
		if err := tx.Where("college_key = ?", key).First(&owner).Error; err != nil {
			return err
		}
		if owner.EmployeeID != lead.EmployeeID {
			return ErrDuplicateOwnership
		}

		return tx.Create(lead).Error
	})
}

func (r *leadRepo) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	var lead model.Lead
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepo) GetOwned(ctx context.Context, id, employeeID string) (*model.Lead, error) {
	var lead model.Lead
	err := r.db.WithContext(ctx).
		Where("id = ? AND employee_id = ?", id, employeeID).
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepo) Update(ctx context.Context, lead *model.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *leadRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&model.Lead{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *leadRepo) OwnerOf(ctx context.Context, collegeKey string) (string, error) {
	var claim model.CollegeClaim
	err := r.db.WithContext(ctx).
		Where("college_key = ?", collegeKey).
		First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return claim.EmployeeID, nil
}

// ── employee-scoped listings ──

func (r *leadRepo) ListByEmployeeAndDate(ctx context.Context, employeeID string, date model.Date) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}

func (r *leadRepo) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Limit(limit).
		Find(&leads).Error
	return leads, err
}

func (r *leadRepo) ListCompleted(ctx context.Context, employeeID string, limit int) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND response_status IN ?",
			employeeID, []string{model.StatusInterested, model.StatusNotInterested}).
		Order("date DESC").
		Limit(limit).
		Find(&leads).Error
	return leads, err
}

func (r *leadRepo) ListPendingFollowUps(ctx context.Context, employeeID string) ([]model.Lead, error) {
	var leads []model.Lead
	q := r.db.WithContext(ctx).Where(pendingFollowUpExpr)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID).Order("created_at DESC")
	} else {
		q = q.Preload("Employee").Order("date DESC")
	}
	err := q.Find(&leads).Error
	return leads, err
}

// ── admin listings ──

func (r *leadRepo) ListUpcomingSlots(ctx context.Context, today model.Date) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("slot_requested = TRUE AND slot_date >= ?", today).
		Order("slot_date ASC").
		Find(&leads).Error
	return leads, err
}

func (r *leadRepo) ListByDate(ctx context.Context, date model.Date) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Find(&leads).Error
	return leads, err
}

func (r *leadRepo) ListByDateRange(ctx context.Context, from, to model.Date) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("date >= ? AND date <= ?", from, to).
		Order("date DESC").
		Find(&leads).Error
	return leads, err
}

func (r *leadRepo) ListWithFilters(ctx context.Context, filters *LeadFilters, limit int) ([]model.Lead, error) {
	q := r.db.WithContext(ctx).Model(&model.Lead{}).Preload("Employee")

	if filters.DateFrom != nil {
		q = q.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("date <= ?", *filters.DateTo)
	}
	if filters.EmployeeID != "" {
		q = q.Where("employee_id = ?", filters.EmployeeID)
	}
	if filters.Status != "" {
		q = q.Where("response_status = ?", filters.Status)
	}
	switch filters.SlotBooked {
	case "yes":
		q = q.Where("slot_requested = TRUE AND slot_date IS NOT NULL")
	case "no":
		q = q.Where("slot_requested = FALSE OR slot_date IS NULL")
	}
	if filters.Flagged {
		q = q.Where("is_flagged = TRUE")
	}

	var leads []model.Lead
	err := q.Order("created_at DESC").Limit(limit).Find(&leads).Error
	return leads, err
}

// ── counts ──

func (r *leadRepo) CountByDate(ctx context.Context, date model.Date) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Lead{}).
		Where("date = ?", date).
		Count(&n).Error
	return n, err
}

func (r *leadRepo) CountSlotBookedByDate(ctx context.Context, date model.Date) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Lead{}).
		Where("date = ? AND slot_requested = TRUE AND slot_date IS NOT NULL", date).
		Count(&n).Error
	return n, err
}

func (r *leadRepo) CountPendingFollowUps(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Lead{}).
		Where(pendingFollowUpExpr).
		Count(&n).Error
	return n, err
}

func (r *leadRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Lead{}).Count(&n).Error
	return n, err
}

func (r *leadRepo) CountGroupByEmployee(ctx context.Context) (map[string]int64, error) {
	type row struct {
		EmployeeID string
		N          int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Lead{}).
		Select("employee_id, COUNT(*) AS n").
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rr := range rows {
		counts[rr.EmployeeID] = rr.N
	}
	return counts, nil
}

func (r *leadRepo) CollegeSummary(ctx context.Context, employeeID string) ([]CollegeSummaryRow, error) {
	var rows []CollegeSummaryRow
	err := r.db.WithContext(ctx).
		Model(&model.Lead{}).
		Select("college_name, location, COUNT(*) AS count").
		Where("employee_id = ?", employeeID).
		Group("college_name, location").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}
