package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/service"
	"github.com/enlivotechnologies/leads-tracker/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams downloadable report files.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ReportXLSX downloads the date-wise activity report as .xlsx.
// GET /api/v1/export/report?from=&to=
func (h *ExportHandler) ReportXLSX(c *gin.Context) {
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

	buf, filename, err := h.exportSvc.ReportXLSX(c.Request.Context(), from, to)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// SlotsICS downloads the upcoming-slot schedule as an iCalendar feed.
// GET /api/v1/export/slots.ics
func (h *ExportHandler) SlotsICS(c *gin.Context) {
	data, filename, err := h.exportSvc.SlotsICS(c.Request.Context(), model.Today())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
