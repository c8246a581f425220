package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func boolPtr(b bool) *bool { return &b }

func TestApprovalLabel(t *testing.T) {
	tests := []struct {
		name     string
		approved *bool
		expected string
	}{
		{"no decision yet", nil, "pending"},
		{"approved", boolPtr(true), "approved"},
		{"rejected", boolPtr(false), "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := approvalLabel(tt.approved); got != tt.expected {
				t.Errorf("approvalLabel = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatMaybeTime(t *testing.T) {
	if got := formatMaybeTime(nil); got != "" {
		t.Errorf("formatMaybeTime(nil) = %q, want empty", got)
	}

	ts := time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC)
	if got := formatMaybeTime(&ts); got != "2025-12-20 18:30:00" {
		t.Errorf("formatMaybeTime = %q", got)
	}
}

func TestExportAssignmentsCSV(t *testing.T) {
	sentAt := time.Date(2025, 12, 21, 10, 0, 0, 0, time.UTC)
	data := ReportData{
		Assignments: []AssignmentReportRow{
			{
				ID:            1,
				SantaName:     "frosty",
				RecipientName: "rudolph",
				SentAt:        &sentAt,
				SendInfo:      "tracking RA123456789",
				Thanks:        "best gift ever",
				Locked:        true,
				CreatedAt:     time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:            2,
				SantaName:     "rudolph",
				RecipientName: "frosty",
				CreatedAt:     time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	out, filename, mime, err := NewReportExporter().Export(ReportTypeAssignments, FormatCSV, data)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if mime != "text/csv" {
		t.Errorf("mime = %q, want text/csv", mime)
	}
	if !strings.HasPrefix(filename, "assignments_report_") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("unexpected filename %q", filename)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("reading produced CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][1] != "Santa" || records[0][2] != "Recipient" {
		t.Errorf("unexpected header row %v", records[0])
	}
	if records[1][1] != "frosty" || records[1][3] != "2025-12-21 10:00:00" || records[1][7] != "true" {
		t.Errorf("unexpected first row %v", records[1])
	}
	// Unsent and unreceived stay blank instead of a zero time
	if records[2][3] != "" || records[2][5] != "" {
		t.Errorf("unexpected second row %v", records[2])
	}
}

func TestExportRegistrationsCSV(t *testing.T) {
	approvedAt := time.Date(2025, 12, 14, 9, 0, 0, 0, time.UTC)
	data := ReportData{
		Registrations: []RegistrationReportRow{
			{
				UserID:       7,
				UserName:     "frosty",
				FullName:     "Frosty Snowman",
				Address:      "North Pole 1",
				Approved:     boolPtr(true),
				RegisteredAt: time.Date(2025, 12, 11, 12, 0, 0, 0, time.UTC),
				ApprovedAt:   &approvedAt,
			},
			{
				UserID:       8,
				UserName:     "grinch",
				RegisteredAt: time.Date(2025, 12, 12, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	out, _, _, err := NewReportExporter().Export(ReportTypeRegistrations, FormatCSV, data)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("reading produced CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[1][4] != "approved" || records[1][6] != "2025-12-14 09:00:00" {
		t.Errorf("unexpected approved row %v", records[1])
	}
	if records[2][4] != "pending" || records[2][6] != "" {
		t.Errorf("unexpected pending row %v", records[2])
	}
}

func TestExportRejectsUnknown(t *testing.T) {
	exporter := NewReportExporter()

	if _, _, _, err := exporter.Export("inventory", FormatCSV, ReportData{}); err == nil {
		t.Errorf("expected error for unknown report type")
	}
	if _, _, _, err := exporter.Export(ReportTypeAssignments, "xml", ReportData{}); err == nil {
		t.Errorf("expected error for unknown format")
	}
}
