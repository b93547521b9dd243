package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/enlivotechnologies/leads-tracker/internal/dto"
	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/service"
	"github.com/enlivotechnologies/leads-tracker/pkg/response"
)

// AdminHandler serves the admin dashboard endpoints.
type AdminHandler struct {
	leadSvc   service.LeadService
	reportSvc service.ReportService
}

// NewAdminHandler creates the AdminHandler.
func NewAdminHandler(leadSvc service.LeadService, reportSvc service.ReportService) *AdminHandler {
	return &AdminHandler{leadSvc: leadSvc, reportSvc: reportSvc}
}

// DailyKPIs returns the organization-wide KPI cards for a date.
// GET /api/v1/admin/kpis?date=
func (h *AdminHandler) DailyKPIs(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	kpis, err := h.reportSvc.DailyKPIs(c.Request.Context(), date)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, kpis)
}

// EmployeePerformance returns per-employee day figures.
// GET /api/v1/admin/performance?date=
func (h *AdminHandler) EmployeePerformance(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	rows, err := h.reportSvc.EmployeePerformance(c.Request.Context(), date)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, rows)
}

// EmployeesSummary returns the employee overview with total lead counts.
// GET /api/v1/admin/employees
func (h *AdminHandler) EmployeesSummary(c *gin.Context) {
	rows, err := h.reportSvc.EmployeesSummary(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, rows)
}

// EmployeeDetail returns the multi-day drill-down for one employee.
// GET /api/v1/admin/employees/:id?date=
func (h *AdminHandler) EmployeeDetail(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	detail, err := h.reportSvc.EmployeeDetail(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 20001, "employee not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, detail)
}

// FilteredLeads returns the capped, filtered lead listing.
// GET /api/v1/admin/leads
func (h *AdminHandler) FilteredLeads(c *gin.Context) {
	var req dto.LeadFiltersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid filter parameters")
		return
	}

	leads, err := h.reportSvc.FilteredLeads(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leads)
}

// PendingFollowUps returns the organization-wide follow-up backlog.
// GET /api/v1/admin/follow-ups
func (h *AdminHandler) PendingFollowUps(c *gin.Context) {
	leads, err := h.reportSvc.PendingFollowUps(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leads)
}

// UpcomingSlots returns slots booked for today or later.
// GET /api/v1/admin/slots
func (h *AdminHandler) UpcomingSlots(c *gin.Context) {
	leads, err := h.reportSvc.UpcomingSlots(c.Request.Context(), model.Today())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leads)
}

// UpdateOverlay writes the admin-only metadata overlay on a lead.
// PATCH /api/v1/admin/leads/:id
func (h *AdminHandler) UpdateOverlay(c *gin.Context) {
	var req dto.AdminOverlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	lead, err := h.leadSvc.AdminOverlay(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			response.NotFound(c, 30003, "lead not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, lead)
}

// DateWiseReport returns the grouped date×employee activity report.
// GET /api/v1/admin/report?from=&to=
func (h *AdminHandler) DateWiseReport(c *gin.Context) {
	from, ok := requiredQueryDate(c, "from")
	if !ok {
		return
	}
	to, ok := requiredQueryDate(c, "to")
	if !ok {
		return
	}
	if to.Before(from) {
		response.BadRequest(c, 10001, "to must not be before from")
		return
	}

	report, err := h.reportSvc.DateWiseReport(c.Request.Context(), from, to)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}
