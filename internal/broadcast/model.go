package broadcast

import (
	"time"

	"gorm.io/datatypes"
)

// 1. Broadcast - an admin announcement queued for fan-out
type Broadcast struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventID   *uint          `gorm:"index" json:"event_id,omitempty"` // nil means every participant
	CreatedBy uint           `gorm:"not null;index" json:"created_by"`
	Title     string         `gorm:"size:150;not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Channels  datatypes.JSON `gorm:"type:jsonb;not null" json:"channels"` // ["email","telegram","inbox"]
	Status    string         `gorm:"size:20;default:'queued'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Broadcast) TableName() string {
	return "broadcasts"
}

// 2. BroadcastDelivery - one row per recipient per channel
type BroadcastDelivery struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BroadcastID uint      `gorm:"not null;index" json:"broadcast_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Channel     string    `gorm:"size:20;not null" json:"channel"`
	Status      string    `gorm:"size:20;default:'pending'" json:"status"`
	Error       *string   `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (BroadcastDelivery) TableName() string {
	return "broadcast_deliveries"
}

// 3. InboxMessage - per-user, in-app bell notifications
type InboxMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	BroadcastID uint      `gorm:"not null;index" json:"broadcast_id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (InboxMessage) TableName() string {
	return "inbox_messages"
}

// Broadcast states
const (
	StatusQueued    = "queued"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// Delivery channels
const (
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
	ChannelInbox    = "inbox"
)

// ============================
// 🟡 Requests
type CreateBroadcastRequest struct {
	EventID  *uint    `json:"event_id,omitempty"`
	Title    string   `json:"title" binding:"required,max=150"`
	Message  string   `json:"message" binding:"required"`
	Channels []string `json:"channels" binding:"required,min=1"`
}

// envelope published to kafka
type queuedBroadcast struct {
	BroadcastID uint `json:"broadcast_id"`
}
