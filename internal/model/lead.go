package model

import "strings"

// Call types.
const (
	CallTypeFirstCall = "FIRST_CALL"
	CallTypeFollowUp  = "FOLLOW_UP"
)

// Response statuses.
const (
	StatusInterested    = "INTERESTED"
	StatusNotInterested = "NOT_INTERESTED"
	StatusCallLater     = "CALL_LATER"
	StatusNotReachable  = "NOT_REACHABLE"
	StatusWrongNumber   = "WRONG_NUMBER"
)

// Contact designations.
const (
	DesignationPrincipal        = "PRINCIPAL"
	DesignationVicePrincipal    = "VICE_PRINCIPAL"
	DesignationPlacementOfficer = "PLACEMENT_OFFICER"
	DesignationCSRCoordinator   = "CSR_COORDINATOR"
	DesignationOther            = "OTHER"
)

// Lead is one logged outreach call to a college, owned by exactly one
// employee. Date fields are calendar dates; see Date.
type Lead struct {
	ID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeID     string `gorm:"type:uuid;not null;index:idx_leads_employee_date" json:"employee_id"`
	Date           Date   `gorm:"type:date;not null;index:idx_leads_employee_date" json:"date"`
	CollegeName    string `gorm:"type:varchar(255);not null" json:"college_name"`
	Location       string `gorm:"type:varchar(255)"          json:"location"`
	ContactPerson  string `gorm:"type:varchar(100)"          json:"contact_person"`
	Designation    string `gorm:"type:varchar(30)"           json:"designation"`
	Phone          string `gorm:"type:varchar(30)"           json:"phone"`
	CallType       string `gorm:"type:varchar(20);not null"  json:"call_type"`
	ResponseStatus string `gorm:"type:varchar(20);not null"  json:"response_status"`
	SlotRequested  bool   `gorm:"not null;default:false"     json:"slot_requested"`
	SlotDate       *Date  `gorm:"type:date"                  json:"slot_date"`
	FollowUpDate   *Date  `gorm:"type:date"                  json:"follow_up_date"`
	FollowUpDone   bool   `gorm:"not null;default:false"     json:"follow_up_done"`
	Remarks        string `gorm:"type:text"                  json:"remarks"`
	AdminRemarks   string `gorm:"type:text"                  json:"admin_remarks"`
	IsFlagged      bool   `gorm:"not null;default:false"     json:"is_flagged"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
}

// TableName maps the model to its table.
func (Lead) TableName() string { return "leads" }

// CollegeKey normalizes a college name for the active-ownership check:
// trimmed and case-insensitive.
func CollegeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ── bucket predicates ──
//
// A lead may satisfy several buckets at once. Predicates that depend on
// "today" take it as a parameter; the caller resolves today once per
// operation.

// SlotBooked reports whether the lead has secured a meeting slot.
func (l *Lead) SlotBooked() bool {
	return l.SlotRequested && l.SlotDate != nil
}

// PendingFollowUp reports whether the lead still needs a callback.
// A lead that already secured a slot is won, so it is excluded from the
// backlog even if a stale follow-up date or CALL_LATER status remains.
func (l *Lead) PendingFollowUp() bool {
	if l.SlotBooked() {
		return false
	}
	if l.FollowUpDone {
		return false
	}
	return l.FollowUpDate != nil || l.ResponseStatus == StatusCallLater
}

// Completed reports whether the lead reached a terminal response.
func (l *Lead) Completed() bool {
	return l.ResponseStatus == StatusInterested || l.ResponseStatus == StatusNotInterested
}

// UpcomingSlot reports whether the lead has a slot booked for today or
// later. Past slot dates are excluded.
func (l *Lead) UpcomingSlot(today Date) bool {
	return l.SlotBooked() && !l.SlotDate.Before(today)
}

// LoggedOn reports whether the lead was logged on the given day.
func (l *Lead) LoggedOn(day Date) bool {
	return l.Date.Equal(day)
}
