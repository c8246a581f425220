package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter renders report rows in the requested format
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeAssignments:
		return e.exportAssignmentsByFormat(format, timestamp, data.Assignments)
	case ReportTypeRegistrations:
		return e.exportRegistrationsByFormat(format, timestamp, data.Registrations)
	case ReportTypeActivityLogs:
		return e.exportActivityLogsByFormat(format, timestamp, data.ActivityLogs)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

func formatMaybeTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

//// ============================
/// ASSIGNMENT EXPORTS
//// ============================

func (e *reportExporter) exportAssignmentsByFormat(format, timestamp string, rows []AssignmentReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportAssignmentsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("assignments_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportAssignmentsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("assignments_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportAssignmentsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("assignments_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for assignments: %s", format)
	}
}

func (e *reportExporter) exportAssignmentsCSV(rows []AssignmentReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Santa", "Recipient", "Sent At", "Send Info", "Received At", "Thanks", "Locked", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.SantaName,
			r.RecipientName,
			formatMaybeTime(r.SentAt),
			r.SendInfo,
			formatMaybeTime(r.ReceivedAt),
			r.Thanks,
			strconv.FormatBool(r.Locked),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAssignmentsExcel(rows []AssignmentReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Assignments"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Santa", "Recipient", "Sent At", "Send Info", "Received At", "Thanks", "Locked", "Created At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.SantaName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.RecipientName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), formatMaybeTime(r.SentAt))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.SendInfo)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), formatMaybeTime(r.ReceivedAt))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.Thanks)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.Locked)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportAssignmentsPDF(rows []AssignmentReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Assignments Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{15, 40, 40, 35, 45, 35, 45, 20}
	headers := []string{"ID", "Santa", "Recipient", "Sent At", "Send Info", "Received At", "Thanks", "Locked"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		thanks := r.Thanks
		if len(thanks) > 40 {
			thanks = thanks[:37] + "..."
		}
		sendInfo := r.SendInfo
		if len(sendInfo) > 40 {
			sendInfo = sendInfo[:37] + "..."
		}

		values := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.SantaName,
			r.RecipientName,
			formatMaybeTime(r.SentAt),
			sendInfo,
			formatMaybeTime(r.ReceivedAt),
			thanks,
			strconv.FormatBool(r.Locked),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// REGISTRATION EXPORTS
//// ============================

func (e *reportExporter) exportRegistrationsByFormat(format, timestamp string, rows []RegistrationReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportRegistrationsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("registrations_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportRegistrationsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("registrations_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportRegistrationsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("registrations_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for registrations: %s", format)
	}
}

func approvalLabel(approved *bool) string {
	switch {
	case approved == nil:
		return "pending"
	case *approved:
		return "approved"
	default:
		return "rejected"
	}
}

func (e *reportExporter) exportRegistrationsCSV(rows []RegistrationReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"User ID", "Username", "Full Name", "Address", "Approval", "Registered At", "Approved At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.UserID), 10),
			r.UserName,
			r.FullName,
			r.Address,
			approvalLabel(r.Approved),
			r.RegisteredAt.Format("2006-01-02 15:04:05"),
			formatMaybeTime(r.ApprovedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportRegistrationsExcel(rows []RegistrationReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Registrations"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"User ID", "Username", "Full Name", "Address", "Approval", "Registered At", "Approved At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.UserID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.UserName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Address)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), approvalLabel(r.Approved))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.RegisteredAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), formatMaybeTime(r.ApprovedAt))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportRegistrationsPDF(rows []RegistrationReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Registrations Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{20, 40, 45, 80, 25, 35, 35}
	headers := []string{"User ID", "Username", "Full Name", "Address", "Approval", "Registered At", "Approved At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		address := r.Address
		if len(address) > 45 {
			address = address[:42] + "..."
		}

		values := []string{
			strconv.FormatUint(uint64(r.UserID), 10),
			r.UserName,
			r.FullName,
			address,
			approvalLabel(r.Approved),
			r.RegisteredAt.Format("2006-01-02 15:04"),
			formatMaybeTime(r.ApprovedAt),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// ACTIVITY LOG EXPORTS
//// ============================

func (e *reportExporter) exportActivityLogsByFormat(format, timestamp string, rows []ActivityLogReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportActivityLogsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("activity_logs_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportActivityLogsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("activity_logs_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportActivityLogsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("activity_logs_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for activity logs: %s", format)
	}
}

func (e *reportExporter) exportActivityLogsCSV(rows []ActivityLogReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "User ID", "User Name", "Event", "Action", "Status", "IP Address", "Timestamp"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		userID := ""
		if r.UserID != nil {
			userID = strconv.FormatUint(uint64(*r.UserID), 10)
		}

		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			userID,
			r.UserName,
			r.EventName,
			r.Action,
			r.Status,
			r.IPAddress,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportActivityLogsExcel(rows []ActivityLogReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Activity Logs"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "User ID", "User Name", "Event", "Action", "Status", "IP Address", "Timestamp"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		userID := ""
		if r.UserID != nil {
			userID = strconv.FormatUint(uint64(*r.UserID), 10)
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), userID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.UserName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.EventName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Action)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.IPAddress)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportActivityLogsPDF(rows []ActivityLogReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Activity Logs Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{15, 20, 40, 45, 50, 20, 35, 40}
	headers := []string{"ID", "User ID", "User Name", "Event", "Action", "Status", "IP Address", "Timestamp"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		userID := ""
		if r.UserID != nil {
			userID = strconv.FormatUint(uint64(*r.UserID), 10)
		}

		values := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			userID,
			r.UserName,
			r.EventName,
			r.Action,
			r.Status,
			r.IPAddress,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
