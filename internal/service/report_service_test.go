package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/enlivotechnologies/leads-tracker/internal/dto"
	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
)

// ── test helpers ──

func setupTestReportService() (ReportService, *mockLeadRepo, *mockEmployeeRepo) {
	leadRepo := newMockLeadRepo()
	employeeRepo := newMockEmployeeRepo()
	repo := &repository.Repository{
		Identity: newMockIdentityRepo(),
		Employee: employeeRepo,
		Lead:     leadRepo,
	}
	svc := NewReportService(testConfig(), repo, nil, zap.NewNop())
	return svc, leadRepo, employeeRepo
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return d
}

func seedEmployee(repo *mockEmployeeRepo, id, name string) {
	repo.employees[id] = &model.Employee{
		ID:       id,
		UserID:   "user-" + id,
		Email:    name + "@enlivo.in",
		Name:     name,
		Role:     model.RoleEmployee,
		IsActive: true,
	}
}

func seedLead(repo *mockLeadRepo, lead *model.Lead) {
	if lead.ID == "" {
		lead.ID = lead.EmployeeID + "-lead-" + lead.Date.String() + "-" + lead.CollegeName
	}
	repo.leads[lead.ID] = lead
	repo.claims[model.CollegeKey(lead.CollegeName)] = lead.EmployeeID
}

// ── EmployeePerformance ──

func TestReportService_EmployeePerformance(t *testing.T) {
	svc, leadRepo, employeeRepo := setupTestReportService()
	seedEmployee(employeeRepo, "emp-001", "Asha")
	day := mustDate(t, "2024-01-10")

	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College A",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusInterested,
	})
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College B",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusCallLater,
	})
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College C",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusNotReachable,
	})

	rows, err := svc.EmployeePerformance(context.Background(), day)
	if err != nil {
		t.Fatalf("EmployeePerformance should succeed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.Calls != 3 {
		t.Errorf("expected calls=3, got %d", row.Calls)
	}
	if row.Slots != 0 {
		t.Errorf("expected slots=0, got %d", row.Slots)
	}
	if row.Interested != 1 {
		t.Errorf("expected interested=1, got %d", row.Interested)
	}
	if row.FollowUps != 1 {
		t.Errorf("expected followUps=1, got %d", row.FollowUps)
	}
	if row.InterestedRate != 33 {
		t.Errorf("expected interestedRate=33, got %d", row.InterestedRate)
	}
}

func TestReportService_EmployeePerformance_NoCalls(t *testing.T) {
	svc, _, employeeRepo := setupTestReportService()
	seedEmployee(employeeRepo, "emp-001", "Asha")

	rows, err := svc.EmployeePerformance(context.Background(), mustDate(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("EmployeePerformance should succeed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("an employee with no calls still gets a row, got %d rows", len(rows))
	}
	if rows[0].Calls != 0 || rows[0].InterestedRate != 0 {
		t.Errorf("expected all-zero row, got calls=%d rate=%d", rows[0].Calls, rows[0].InterestedRate)
	}
}

func TestRate_RoundsHalfUp(t *testing.T) {
	if got := rate(2, 3); got != 67 {
		t.Errorf("rate(2,3) = %d, want 67", got)
	}
	if got := rate(1, 3); got != 33 {
		t.Errorf("rate(1,3) = %d, want 33", got)
	}
	if got := rate(1, 2); got != 50 {
		t.Errorf("rate(1,2) = %d, want 50", got)
	}
	if got := rate(0, 0); got != 0 {
		t.Errorf("rate(0,0) = %d, want 0", got)
	}
}

// ── pending follow-up backlog ──

func TestReportService_PendingFollowUps_SlotBookingRemovesLead(t *testing.T) {
	svc, leadRepo, _ := setupTestReportService()
	day := mustDate(t, "2024-01-10")
	followUp := mustDate(t, "2024-01-15")

	lead := &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College A",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusCallLater,
		FollowUpDate: &followUp,
	}
	seedLead(leadRepo, lead)

	pending, err := svc.PendingFollowUps(context.Background())
	if err != nil {
		t.Fatalf("PendingFollowUps should succeed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending lead, got %d", len(pending))
	}

	// Booking a slot wins the lead; the stale follow-up date no longer
	// keeps it in the backlog.
	slot := mustDate(t, "2024-01-20")
	lead.SlotRequested = true
	lead.SlotDate = &slot

	pending, err = svc.PendingFollowUps(context.Background())
	if err != nil {
		t.Fatalf("PendingFollowUps should succeed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("slot-booked lead should leave the backlog, got %d leads", len(pending))
	}
}

// ── DailyKPIs ──

func TestReportService_DailyKPIs(t *testing.T) {
	svc, leadRepo, employeeRepo := setupTestReportService()
	seedEmployee(employeeRepo, "emp-001", "Asha")
	day := mustDate(t, "2024-01-10")
	slot := mustDate(t, "2024-01-12")

	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College A",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusInterested,
		SlotRequested: true, SlotDate: &slot,
	})
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College B",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusCallLater,
	})

	kpis, err := svc.DailyKPIs(context.Background(), day)
	if err != nil {
		t.Fatalf("DailyKPIs should succeed: %v", err)
	}
	if kpis.TotalCalls != 2 {
		t.Errorf("expected totalCalls=2, got %d", kpis.TotalCalls)
	}
	if kpis.SlotsBooked != 1 {
		t.Errorf("expected slotsBooked=1, got %d", kpis.SlotsBooked)
	}
	if kpis.FollowUpsPending != 1 {
		t.Errorf("expected followUpsPending=1, got %d", kpis.FollowUpsPending)
	}
	if kpis.TotalDeals != 2 {
		t.Errorf("expected totalDeals=2, got %d", kpis.TotalDeals)
	}
	if kpis.TotalUsers != 1 {
		t.Errorf("expected totalUsers=1, got %d", kpis.TotalUsers)
	}
}

func TestReportService_DailyKPIs_EmptyDate(t *testing.T) {
	svc, leadRepo, employeeRepo := setupTestReportService()
	seedEmployee(employeeRepo, "emp-001", "Asha")

	// All activity on another day: day-scoped counters read zero while the
	// all-time figures still count.
	other := mustDate(t, "2024-01-09")
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: other, CollegeName: "College A",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusCallLater,
	})

	kpis, err := svc.DailyKPIs(context.Background(), mustDate(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("DailyKPIs should succeed: %v", err)
	}
	if kpis.TotalCalls != 0 || kpis.SlotsBooked != 0 {
		t.Errorf("expected zero day-scoped counters, got calls=%d slots=%d", kpis.TotalCalls, kpis.SlotsBooked)
	}
	if kpis.FollowUpsPending != 1 || kpis.TotalDeals != 1 || kpis.TotalUsers != 1 {
		t.Errorf("all-time figures should survive the empty day: pending=%d deals=%d users=%d",
			kpis.FollowUpsPending, kpis.TotalDeals, kpis.TotalUsers)
	}
}

// ── EmployeeDetail ──

func TestReportService_EmployeeDetail_IncludesPreviousDay(t *testing.T) {
	svc, leadRepo, employeeRepo := setupTestReportService()
	seedEmployee(employeeRepo, "emp-001", "Asha")
	employeeRepo.employees["emp-001"].CreatedAt = time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)

	target := mustDate(t, "2024-01-10")
	prev := mustDate(t, "2024-01-09")
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: target, CollegeName: "College A",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusInterested,
	})
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: prev, CollegeName: "College B",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusCallLater,
	})

	detail, err := svc.EmployeeDetail(context.Background(), "emp-001", target)
	if err != nil {
		t.Fatalf("EmployeeDetail should succeed: %v", err)
	}
	if len(detail.Days) != 2 {
		t.Fatalf("expected 2 day slices, got %d", len(detail.Days))
	}
	if detail.Totals.Calls != 2 {
		t.Errorf("expected totals.calls=2, got %d", detail.Totals.Calls)
	}
	if detail.Totals.Interested != 1 {
		t.Errorf("expected totals.interested=1, got %d", detail.Totals.Interested)
	}
	if detail.Totals.ConversionRate != 0 {
		t.Errorf("conversionRate is fixed at 0 in this view, got %d", detail.Totals.ConversionRate)
	}
}

func TestReportService_EmployeeDetail_SkipsDayBeforeCreation(t *testing.T) {
	svc, _, employeeRepo := setupTestReportService()
	seedEmployee(employeeRepo, "emp-001", "Asha")
	employeeRepo.employees["emp-001"].CreatedAt = time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)

	detail, err := svc.EmployeeDetail(context.Background(), "emp-001", mustDate(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("EmployeeDetail should succeed: %v", err)
	}
	if len(detail.Days) != 1 {
		t.Errorf("the day before the employee existed must be excluded, got %d day slices", len(detail.Days))
	}
}

func TestReportService_EmployeeDetail_NotFound(t *testing.T) {
	svc, _, _ := setupTestReportService()

	_, err := svc.EmployeeDetail(context.Background(), "missing", mustDate(t, "2024-01-10"))
	if err != ErrEmployeeNotFound {
		t.Errorf("expected ErrEmployeeNotFound, got: %v", err)
	}
}

// ── FilteredLeads ──

func TestReportService_FilteredLeads_SlotBookedNo(t *testing.T) {
	svc, leadRepo, _ := setupTestReportService()
	day := mustDate(t, "2024-01-10")
	slot := mustDate(t, "2024-01-12")

	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College A",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusInterested,
		SlotRequested: true, SlotDate: &slot,
	})
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College B",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusCallLater,
	})

	leads, err := svc.FilteredLeads(context.Background(), &dto.LeadFiltersRequest{SlotBooked: "no"})
	if err != nil {
		t.Fatalf("FilteredLeads should succeed: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead without a booked slot, got %d", len(leads))
	}
	if leads[0].CollegeName != "College B" {
		t.Errorf("expected College B, got %s", leads[0].CollegeName)
	}
}

// ── DateWiseReport ──

func TestReportService_DateWiseReport_CountsAllCallLater(t *testing.T) {
	svc, leadRepo, _ := setupTestReportService()
	day := mustDate(t, "2024-01-10")

	// Done or not, a CALL_LATER lead counts in the historical report.
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College A",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusCallLater,
		FollowUpDone: true,
	})
	seedLead(leadRepo, &model.Lead{
		EmployeeID: "emp-001", Date: day, CollegeName: "College B",
		CallType: model.CallTypeFirstCall, ResponseStatus: model.StatusCallLater,
	})

	report, err := svc.DateWiseReport(context.Background(), day, day)
	if err != nil {
		t.Fatalf("DateWiseReport should succeed: %v", err)
	}
	cell := report["2024-01-10"]["emp-001"]
	if cell == nil {
		t.Fatal("expected a cell for 2024-01-10/emp-001")
	}
	if cell.Calls != 2 {
		t.Errorf("expected calls=2, got %d", cell.Calls)
	}
	if cell.FollowUps != 2 {
		t.Errorf("expected followUps=2 (done leads still count here), got %d", cell.FollowUps)
	}
}
