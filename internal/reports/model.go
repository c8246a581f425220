package reports

import "time"

// Report types
const (
	ReportTypeAssignments   = "assignments"
	ReportTypeRegistrations = "registrations"
	ReportTypeActivityLogs  = "activity_logs"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// AssignmentReportRow is one pairing with its gift-status tracks
type AssignmentReportRow struct {
	ID            uint       `json:"id"`
	SantaName     string     `json:"santa_name"`
	RecipientName string     `json:"recipient_name"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	SendInfo      string     `json:"send_info,omitempty"`
	ReceivedAt    *time.Time `json:"received_at,omitempty"`
	Thanks        string     `json:"thanks,omitempty"`
	Locked        bool       `json:"locked"`
	CreatedAt     time.Time  `json:"created_at"`
}

// RegistrationReportRow is one participant registration with approval state
type RegistrationReportRow struct {
	UserID       uint       `json:"user_id"`
	UserName     string     `json:"user_name"`
	FullName     string     `json:"full_name"`
	Address      string     `json:"address"`
	Approved     *bool      `json:"approved,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
}

// ActivityLogReportRow is one audit entry flattened for export
type ActivityLogReportRow struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id,omitempty"`
	UserName  string    `json:"user_name"`
	EventName string    `json:"event_name"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportData is the union handed to the exporter
type ReportData struct {
	Assignments   []AssignmentReportRow
	Registrations []RegistrationReportRow
	ActivityLogs  []ActivityLogReportRow
}
