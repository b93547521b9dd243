package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
)

// ExportService renders admin reports as downloadable files: the date-wise
// activity report as .xlsx and the upcoming-slot schedule as an iCalendar
// feed. Buffers are returned for the handler to stream with the right
// headers.
type ExportService interface {
	ReportXLSX(ctx context.Context, from, to model.Date) (*bytes.Buffer, string, error)
	SlotsICS(ctx context.Context, today model.Date) ([]byte, string, error)
}

type exportService struct {
	repo      *repository.Repository
	reportSvc ReportService
	logger    *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, reportSvc ReportService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, reportSvc: reportSvc, logger: logger}
}

// ────────────────────── ReportXLSX ──────────────────────
//
// One sheet, one row per date×employee, sorted by date then employee name.

func (s *exportService) ReportXLSX(ctx context.Context, from, to model.Date) (*bytes.Buffer, string, error) {
	report, err := s.reportSvc.DateWiseReport(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Activity Report"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Date", "Employee", "Calls", "Slots", "Follow-ups"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	dates := make([]string, 0, len(report))
	for d := range report {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rowIdx := 2
	for _, d := range dates {
		names := make([]string, 0, len(report[d]))
		for name := range report[d] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			cell := report[d][name]
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), d)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), name)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", rowIdx), cell.Calls)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", rowIdx), cell.Slots)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", rowIdx), cell.FollowUps)
			rowIdx++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("activity-report_%s_%s.xlsx", from, to)
	return buf, filename, nil
}

// ────────────────────── SlotsICS ──────────────────────
//
// One all-day event per upcoming booked slot.

func (s *exportService) SlotsICS(ctx context.Context, today model.Date) ([]byte, string, error) {
	leads, err := s.repo.Lead.ListUpcomingSlots(ctx, today)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//leads-tracker//slot schedule//EN")

	now := time.Now()
	for i := range leads {
		lead := &leads[i]
		if lead.SlotDate == nil {
			continue
		}

		summary := lead.CollegeName
		if lead.Employee != nil {
			summary += " - " + lead.Employee.Name
		}

		event := cal.AddEvent(lead.ID + "@leads-tracker")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(lead.SlotDate.Time())
		event.SetAllDayEndAt(lead.SlotDate.AddDays(1).Time())
		event.SetSummary(summary)
		if lead.Location != "" {
			event.SetLocation(lead.Location)
		}
		if lead.ContactPerson != "" {
			event.SetDescription("Contact: " + lead.ContactPerson)
		}
	}

	return []byte(cal.Serialize()), "upcoming-slots.ics", nil
}
