package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/enlivotechnologies/leads-tracker/internal/dto"
	"github.com/enlivotechnologies/leads-tracker/internal/service"
	"github.com/enlivotechnologies/leads-tracker/pkg/response"
)

// LeadHandler serves the employee-facing lead endpoints.
type LeadHandler struct {
	leadSvc service.LeadService
}

// NewLeadHandler creates the LeadHandler.
func NewLeadHandler(leadSvc service.LeadService) *LeadHandler {
	return &LeadHandler{leadSvc: leadSvc}
}

// writeLeadError maps lead lifecycle errors onto the response envelope.
// Validation errors surface verbatim for inline display.
func writeLeadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateOwnership):
		response.Conflict(c, 30001, err.Error())
	case errors.Is(err, service.ErrMissingSlotDate):
		response.BadRequest(c, 30002, err.Error())
	case errors.Is(err, service.ErrCollegeNameRequired):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrLeadNotFound):
		response.NotFound(c, 30003, "lead not found")
	default:
		response.InternalError(c)
	}
}

// CreateLead logs a new call.
// POST /api/v1/leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	lead, err := h.leadSvc.Create(c.Request.Context(), employeeID, &req)
	if err != nil {
		writeLeadError(c, err)
		return
	}

	response.Created(c, lead)
}

// UpdateLead edits an owned lead.
// PUT /api/v1/leads/:id
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	lead, err := h.leadSvc.Update(c.Request.Context(), c.Param("id"), employeeID, &req)
	if err != nil {
		writeLeadError(c, err)
		return
	}

	response.OK(c, lead)
}

// MarkFollowUpDone completes a follow-up on an owned lead.
// POST /api/v1/leads/:id/follow-up-done
func (h *LeadHandler) MarkFollowUpDone(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	lead, err := h.leadSvc.MarkFollowUpDone(c.Request.Context(), c.Param("id"), employeeID)
	if err != nil {
		writeLeadError(c, err)
		return
	}

	response.OK(c, lead)
}

// ListByDate returns the caller's leads for one day.
// GET /api/v1/leads?date=YYYY-MM-DD
func (h *LeadHandler) ListByDate(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	leads, err := h.leadSvc.ListByDate(c.Request.Context(), employeeID, date)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leads)
}

// FollowUps returns the caller's pending follow-up backlog.
// GET /api/v1/leads/follow-ups
func (h *LeadHandler) FollowUps(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	leads, err := h.leadSvc.FollowUps(c.Request.Context(), employeeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leads)
}

// Completed returns the caller's completed leads.
// GET /api/v1/leads/completed
func (h *LeadHandler) Completed(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	leads, err := h.leadSvc.Completed(c.Request.Context(), employeeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leads)
}

// History returns the caller's recent leads across all days.
// GET /api/v1/leads/history
func (h *LeadHandler) History(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	leads, err := h.leadSvc.History(c.Request.Context(), employeeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leads)
}

// CollegeSummary returns the caller's per-college call counts.
// GET /api/v1/leads/college-summary
func (h *LeadHandler) CollegeSummary(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	rows, err := h.leadSvc.CollegeSummary(c.Request.Context(), employeeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, rows)
}

// CheckAvailability answers the college ownership pre-check.
// GET /api/v1/colleges/availability?name=
func (h *LeadHandler) CheckAvailability(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	name := c.Query("name")
	available, err := h.leadSvc.CheckAvailability(c.Request.Context(), employeeID, name)
	if err != nil {
		if errors.Is(err, service.ErrCollegeNameRequired) {
			response.BadRequest(c, 10001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dto.AvailabilityResponse{Available: available})
}
