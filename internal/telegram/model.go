package telegram

import "time"

// ============================
// 🟢 Telegram link between a site account and a Telegram chat
type TelegramLink struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"not null;uniqueIndex:idx_telegram_user" json:"user_id"`
	ChatID               int64     `gorm:"not null;index" json:"chat_id"`
	TelegramUsername     string    `gorm:"type:varchar(100)" json:"telegram_username"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	LinkedAt             time.Time `json:"linked_at"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (TelegramLink) TableName() string {
	return "telegram_links"
}

// ============================
// 🟡 Requests
type VerifyLinkRequest struct {
	Code             string `json:"code" binding:"required,len=6"`
	ChatID           int64  `json:"chat_id" binding:"required"`
	TelegramUsername string `json:"telegram_username"`
}

type NotificationsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
