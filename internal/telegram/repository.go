package telegram

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create or replace the link for a user
func (r *Repository) Upsert(link *TelegramLink) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"chat_id", "telegram_username", "notifications_enabled", "linked_at", "updated_at",
		}),
	}).Create(link).Error
}

// 🔍 Link for a user
func (r *Repository) GetByUserID(userID uint) (*TelegramLink, error) {
	var link TelegramLink
	err := r.DB.Where("user_id = ?", userID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// 🔍 Link by chat
func (r *Repository) GetByChatID(chatID int64) (*TelegramLink, error) {
	var link TelegramLink
	err := r.DB.Where("chat_id = ?", chatID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// 🔍 Chats with notifications on, for a set of users
func (r *Repository) NotifiableChats(userIDs []uint) ([]TelegramLink, error) {
	var links []TelegramLink
	q := r.DB.Where("notifications_enabled = ?", true)
	if len(userIDs) > 0 {
		q = q.Where("user_id IN ?", userIDs)
	}
	err := q.Find(&links).Error
	return links, err
}

// 🎯 Flip the notification flag
func (r *Repository) SetNotifications(userID uint, enabled bool) error {
	return r.DB.Model(&TelegramLink{}).
		Where("user_id = ?", userID).
		Update("notifications_enabled", enabled).Error
}

// 🗑️ Remove the link
func (r *Repository) Delete(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&TelegramLink{}).Error
}
