package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/middleware"
)

// ReportService coordinates repo + exporter and audit-logs every export.
type ReportService interface {
	ExportAssignments(ctx context.Context, eventID uint, format string, accessContext middleware.AccessContext, ip string) ([]byte, string, string, error)
	ExportRegistrations(ctx context.Context, eventID uint, format string, accessContext middleware.AccessContext, ip string) ([]byte, string, string, error)
	ExportActivityLogs(ctx context.Context, start, end time.Time, format string, accessContext middleware.AccessContext, ip string) ([]byte, string, string, error)
}

type reportService struct {
	repo     ReportRepository
	exporter ReportExporter
	auditSvc auditlog.Service
}

func NewReportService(repo ReportRepository, exporter ReportExporter, auditSvc auditlog.Service) ReportService {
	return &reportService{
		repo:     repo,
		exporter: exporter,
		auditSvc: auditSvc,
	}
}

func validateFormat(format string) error {
	if format != FormatCSV && format != FormatExcel && format != FormatPDF {
		return fmt.Errorf("invalid export format: %s", format)
	}
	return nil
}

func (s *reportService) ExportAssignments(ctx context.Context, eventID uint, format string, accessContext middleware.AccessContext, ip string) ([]byte, string, string, error) {
	if !accessContext.IsAdmin() {
		return nil, "", "", errors.New("admin access required")
	}
	if err := validateFormat(format); err != nil {
		return nil, "", "", err
	}

	rows, err := s.repo.GetAssignmentRows(eventID)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, mime, err := s.exporter.Export(ReportTypeAssignments, format, ReportData{Assignments: rows})
	status := "success"
	if err != nil {
		status = "failure"
	}
	s.auditSvc.LogAction(ctx, &accessContext.UserID, &eventID, "REPORT_EXPORTED",
		map[string]interface{}{"report": ReportTypeAssignments, "format": format, "rows": len(rows)}, ip, status)
	return data, filename, mime, err
}

func (s *reportService) ExportRegistrations(ctx context.Context, eventID uint, format string, accessContext middleware.AccessContext, ip string) ([]byte, string, string, error) {
	if !accessContext.IsAdmin() {
		return nil, "", "", errors.New("admin access required")
	}
	if err := validateFormat(format); err != nil {
		return nil, "", "", err
	}

	rows, err := s.repo.GetRegistrationRows(eventID)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, mime, err := s.exporter.Export(ReportTypeRegistrations, format, ReportData{Registrations: rows})
	status := "success"
	if err != nil {
		status = "failure"
	}
	s.auditSvc.LogAction(ctx, &accessContext.UserID, &eventID, "REPORT_EXPORTED",
		map[string]interface{}{"report": ReportTypeRegistrations, "format": format, "rows": len(rows)}, ip, status)
	return data, filename, mime, err
}

func (s *reportService) ExportActivityLogs(ctx context.Context, start, end time.Time, format string, accessContext middleware.AccessContext, ip string) ([]byte, string, string, error) {
	if accessContext.RoleName != middleware.RoleSuperAdmin {
		return nil, "", "", errors.New("superadmin access required")
	}
	if err := validateFormat(format); err != nil {
		return nil, "", "", err
	}

	rows, err := s.repo.GetActivityLogRows(start, end, 10000)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, mime, err := s.exporter.Export(ReportTypeActivityLogs, format, ReportData{ActivityLogs: rows})
	status := "success"
	if err != nil {
		status = "failure"
	}
	s.auditSvc.LogAction(ctx, &accessContext.UserID, nil, "REPORT_EXPORTED",
		map[string]interface{}{"report": ReportTypeActivityLogs, "format": format, "rows": len(rows)}, ip, status)
	return data, filename, mime, err
}
