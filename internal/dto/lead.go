package dto

// ── employee lead DTOs ──

// CreateLeadRequest logs a new call. Dates are "YYYY-MM-DD" strings and
// are parsed as local calendar dates in the service layer.
type CreateLeadRequest struct {
	Date           string `json:"date"            binding:"required,datetime=2006-01-02"`
	CollegeName    string `json:"college_name"    binding:"required"`
	Location       string `json:"location"        binding:"omitempty,max=255"`
	ContactPerson  string `json:"contact_person"  binding:"omitempty,max=100"`
	Designation    string `json:"designation"     binding:"omitempty,oneof=PRINCIPAL VICE_PRINCIPAL PLACEMENT_OFFICER CSR_COORDINATOR OTHER"`
	Phone          string `json:"phone"           binding:"omitempty,max=30"`
	CallType       string `json:"call_type"       binding:"required,oneof=FIRST_CALL FOLLOW_UP"`
	ResponseStatus string `json:"response_status" binding:"required,oneof=INTERESTED NOT_INTERESTED CALL_LATER NOT_REACHABLE WRONG_NUMBER"`
	SlotRequested  bool   `json:"slot_requested"`
	SlotDate       string `json:"slot_date"       binding:"omitempty,datetime=2006-01-02"`
	FollowUpDate   string `json:"follow_up_date"  binding:"omitempty,datetime=2006-01-02"`
	Remarks        string `json:"remarks"`
}

// UpdateLeadRequest edits an owned lead. Only non-nil fields are applied.
type UpdateLeadRequest struct {
	CollegeName    *string `json:"college_name"    binding:"omitempty,min=1"`
	Location       *string `json:"location"        binding:"omitempty,max=255"`
	ContactPerson  *string `json:"contact_person"  binding:"omitempty,max=100"`
	Designation    *string `json:"designation"     binding:"omitempty,oneof=PRINCIPAL VICE_PRINCIPAL PLACEMENT_OFFICER CSR_COORDINATOR OTHER"`
	Phone          *string `json:"phone"           binding:"omitempty,max=30"`
	CallType       *string `json:"call_type"       binding:"omitempty,oneof=FIRST_CALL FOLLOW_UP"`
	ResponseStatus *string `json:"response_status" binding:"omitempty,oneof=INTERESTED NOT_INTERESTED CALL_LATER NOT_REACHABLE WRONG_NUMBER"`
	SlotRequested  *bool   `json:"slot_requested"`
	SlotDate       *string `json:"slot_date"       binding:"omitempty,datetime=2006-01-02"`
	FollowUpDate   *string `json:"follow_up_date"  binding:"omitempty,datetime=2006-01-02"`
	Remarks        *string `json:"remarks"`
}

// AvailabilityResponse answers the college ownership pre-check. It is an
// optimistic UX hint only; the authoritative check runs inside the create
// transaction.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// CollegeSummaryRow is one row of the per-college call count summary.
type CollegeSummaryRow struct {
	CollegeName string `json:"college_name"`
	Location    string `json:"location"`
	Count       int64  `json:"count"`
}
