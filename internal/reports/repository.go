package reports

import (
	"time"

	"gorm.io/gorm"
)

// ReportRepository pulls flattened rows for the exporters
type ReportRepository interface {
	GetAssignmentRows(eventID uint) ([]AssignmentReportRow, error)
	GetRegistrationRows(eventID uint) ([]RegistrationReportRow, error)
	GetActivityLogRows(start, end time.Time, limit int) ([]ActivityLogReportRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetAssignmentRows(eventID uint) ([]AssignmentReportRow, error) {
	var rows []AssignmentReportRow
	err := r.db.Table("event_assignments a").
		Select(`a.id,
			santa.username AS santa_name,
			rec.username AS recipient_name,
			a.santa_sent_at AS sent_at,
			a.santa_send_info AS send_info,
			a.recipient_received_at AS received_at,
			a.recipient_thanks_message AS thanks,
			a.locked,
			a.created_at`).
		Joins("JOIN users santa ON santa.id = a.santa_user_id").
		Joins("JOIN users rec ON rec.id = a.recipient_user_id").
		Where("a.event_id = ?", eventID).
		Order("a.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) GetRegistrationRows(eventID uint) ([]RegistrationReportRow, error) {
	var rows []RegistrationReportRow
	err := r.db.Table("event_registrations reg").
		Select(`reg.user_id,
			u.username AS user_name,
			COALESCE(d.snapshot->>'full_name', '') AS full_name,
			COALESCE(d.snapshot->>'address', '') AS address,
			ap.approved,
			reg.registered_at,
			ap.approved_at`).
		Joins("JOIN users u ON u.id = reg.user_id").
		Joins("LEFT JOIN event_registration_details d ON d.event_id = reg.event_id AND d.user_id = reg.user_id").
		Joins("LEFT JOIN event_participant_approvals ap ON ap.event_id = reg.event_id AND ap.user_id = reg.user_id").
		Where("reg.event_id = ?", eventID).
		Order("reg.registered_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) GetActivityLogRows(start, end time.Time, limit int) ([]ActivityLogReportRow, error) {
	var rows []ActivityLogReportRow
	q := r.db.Table("activity_logs l").
		Select(`l.id,
			l.user_id,
			COALESCE(u.username, 'System') AS user_name,
			COALESCE(e.name, '') AS event_name,
			l.action,
			l.status,
			l.ip_address,
			l.created_at`).
		Joins("LEFT JOIN users u ON u.id = l.user_id").
		Joins("LEFT JOIN events e ON e.id = l.event_id").
		Order("l.created_at DESC")

	if !start.IsZero() {
		q = q.Where("l.created_at >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("l.created_at <= ?", end)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	err := q.Scan(&rows).Error
	return rows, err
}
