package letter

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Append a message to a thread
func (r *Repository) Create(msg *LetterMessage) error {
	return r.DB.Create(msg).Error
}

// 🔍 Full thread for an assignment, oldest first
func (r *Repository) ListByAssignment(assignmentID uint) ([]LetterMessage, error) {
	var msgs []LetterMessage
	err := r.DB.Where("assignment_id = ?", assignmentID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

// 🔍 Number of messages in a thread
func (r *Repository) CountByAssignment(assignmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&LetterMessage{}).
		Where("assignment_id = ?", assignmentID).
		Count(&count).Error
	return count, err
}
