package dto

import "github.com/enlivotechnologies/leads-tracker/internal/model"

// ── admin reporting DTOs ──

// DailyKPIs is the organization-wide dashboard card set for one date.
// followUpsPending and the two totals are all-time figures, independent of
// the target date.
type DailyKPIs struct {
	TotalCalls        int64 `json:"total_calls"`
	SlotsBooked       int64 `json:"slots_booked"`
	FollowUpsPending  int64 `json:"follow_ups_pending"`
	TotalDeals        int64 `json:"total_deals"` // legacy name: all-time lead count
	TotalUsers        int64 `json:"total_users"`
}

// PerformanceRow is one employee's day-scoped performance figures.
type PerformanceRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Calls          int    `json:"calls"`
	Slots          int    `json:"slots"`
	Interested     int    `json:"interested"`
	FollowUps      int    `json:"follow_ups"`
	InterestedRate int    `json:"interested_rate"`
}

// EmployeeSummary is one row of the admin employee overview.
type EmployeeSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	TotalLeads int64  `json:"total_leads"`
	IsActive   bool   `json:"is_active"`
}

// DayStats is the per-day slice of the employee drill-down.
type DayStats struct {
	Date       model.Date `json:"date"`
	Calls      int        `json:"calls"`
	Slots      int        `json:"slots"`
	Interested int        `json:"interested"`
	FollowUps  int        `json:"follow_ups"`
}

// DetailTotals sums DayStats across the included days. ConversionRate is
// reported as 0 in this view; see ReportService.EmployeeDetail.
type DetailTotals struct {
	Calls          int `json:"calls"`
	Slots          int `json:"slots"`
	Interested     int `json:"interested"`
	FollowUps      int `json:"follow_ups"`
	ConversionRate int `json:"conversion_rate"`
}

// EmployeeDetailResponse is the multi-day employee drill-down.
type EmployeeDetailResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Days     []DayStats       `json:"days"`
	Totals   DetailTotals     `json:"totals"`
	Leads    []model.Lead     `json:"leads"`
}

// LeadFiltersRequest is the admin filtered-leads query.
type LeadFiltersRequest struct {
	DateFrom   string `form:"date_from"   binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to"     binding:"omitempty,datetime=2006-01-02"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status"      binding:"omitempty,oneof=INTERESTED NOT_INTERESTED CALL_LATER NOT_REACHABLE WRONG_NUMBER"`
	SlotBooked string `form:"slot_booked" binding:"omitempty,oneof=yes no"`
	Flagged    bool   `form:"flagged"`
}

// AdminOverlayRequest updates the admin-only metadata overlay on a lead.
// Each field is written independently; none requires re-validating the
// employee-owned content.
type AdminOverlayRequest struct {
	IsFlagged    *bool   `json:"is_flagged"`
	AdminRemarks *string `json:"admin_remarks"`
	FollowUpDone *bool   `json:"follow_up_done"`
}

// ReportCell is one date×employee cell of the grouped activity report.
// FollowUps counts all CALL_LATER leads in range: a historical-report
// simplification, deliberately distinct from the live pending backlog.
type ReportCell struct {
	Calls     int `json:"calls"`
	Slots     int `json:"slots"`
	FollowUps int `json:"follow_ups"`
}

// DateWiseReport maps date → employee name → activity counts.
type DateWiseReport map[string]map[string]*ReportCell
