package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, log *ActivityLog) error
	GetByFilter(ctx context.Context, filter ActivityLogFilter) ([]ActivityLogResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*ActivityLogResponse, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new activity log entry
func (r *repository) Create(ctx context.Context, log *ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// GetByFilter retrieves activity logs with filtering and pagination
func (r *repository) GetByFilter(ctx context.Context, filter ActivityLogFilter) ([]ActivityLogResponse, int64, error) {
	var logs []ActivityLogResponse
	var total int64

	query := r.db.WithContext(ctx).
		Table("activity_logs al").
		Select(`
			al.id, al.user_id, al.event_id, al.action,
			al.details, al.ip_address, al.status, al.created_at,
			u.username as user_name,
			e.name as event_name
		`).
		Joins("LEFT JOIN users u ON al.user_id = u.id").
		Joins("LEFT JOIN events e ON al.event_id = e.id")

	if filter.UserID != nil {
		query = query.Where("al.user_id = ?", *filter.UserID)
	}
	if filter.EventID != nil {
		query = query.Where("al.event_id = ?", *filter.EventID)
	}
	if filter.Action != "" {
		query = query.Where("al.action ILIKE ?", "%"+filter.Action+"%")
	}
	if filter.Status != "" {
		query = query.Where("al.status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("al.created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("al.created_at <= ?", *filter.ToDate)
	}

	countQuery := query
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	offset := (filter.Page - 1) * filter.Limit
	query = query.Order("al.created_at DESC").
		Limit(filter.Limit).
		Offset(offset)

	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// GetByID retrieves a specific activity log by ID
func (r *repository) GetByID(ctx context.Context, id uint) (*ActivityLogResponse, error) {
	var log ActivityLogResponse

	err := r.db.WithContext(ctx).
		Table("activity_logs al").
		Select(`
			al.id, al.user_id, al.event_id, al.action,
			al.details, al.ip_address, al.status, al.created_at,
			u.username as user_name,
			e.name as event_name
		`).
		Joins("LEFT JOIN users u ON al.user_id = u.id").
		Joins("LEFT JOIN events e ON al.event_id = e.id").
		Where("al.id = ?", id).
		First(&log).Error

	if err != nil {
		return nil, err
	}

	return &log, nil
}

// DeleteOlderThan removes log rows past the retention window
func (r *repository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec(`DELETE FROM activity_logs WHERE created_at < NOW() - (? || ' days')::interval`, days)
	return result.RowsAffected, result.Error
}
