package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error
	GetActivityLogs(ctx context.Context, filter ActivityLogFilter) (*PaginatedActivityLogs, error)
	GetActivityLogByID(ctx context.Context, id uint) (*ActivityLogResponse, error)
	PruneOldLogs(ctx context.Context, days int) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction creates a new activity log entry
func (s *service) LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	log := &ActivityLog{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Details:   detailsJSON,
		IPAddress: ip,
		Status:    status,
	}

	return s.repo.Create(ctx, log)
}

// GetActivityLogs retrieves paginated activity logs with filters
func (s *service) GetActivityLogs(ctx context.Context, filter ActivityLogFilter) (*PaginatedActivityLogs, error) {
	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	if filter.Limit == 0 {
		totalPages = 0
	}

	return &PaginatedActivityLogs{
		Data:       logs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetActivityLogByID retrieves a specific activity log by ID
func (s *service) GetActivityLogByID(ctx context.Context, id uint) (*ActivityLogResponse, error) {
	log, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("activity log not found: %w", err)
	}
	return log, nil
}

// PruneOldLogs removes entries older than the retention window
func (s *service) PruneOldLogs(ctx context.Context, days int) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, days)
}
