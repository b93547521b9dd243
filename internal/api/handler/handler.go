package handler

import "github.com/enlivotechnologies/leads-tracker/internal/service"

// Handler aggregates all HTTP handlers behind one injection point.
type Handler struct {
	Auth   *AuthHandler
	Lead   *LeadHandler
	Admin  *AdminHandler
	Export *ExportHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.Auth),
		Lead:   NewLeadHandler(svc.Lead),
		Admin:  NewAdminHandler(svc.Lead, svc.Report),
		Export: NewExportHandler(svc.Export),
	}
}
