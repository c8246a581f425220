package assignment

import (
	"time"
)

// ============================
// 🔷 GORM Assignment Model
//
// One santa→recipient pairing for an event. `Locked` freezes the status
// tracks (after event close); `AssignmentLocked` freezes the pairing
// identity itself. The two flags gate independently.
type Assignment struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EventID         uint `gorm:"not null;index;uniqueIndex:idx_event_santa,priority:1;uniqueIndex:idx_event_recipient,priority:1" json:"event_id"`
	SantaUserID     uint `gorm:"not null;uniqueIndex:idx_event_santa,priority:2" json:"santa_user_id"`
	RecipientUserID uint `gorm:"not null;uniqueIndex:idx_event_recipient,priority:2" json:"recipient_user_id"`
	AssignedBy      uint `gorm:"not null" json:"assigned_by"`

	Locked           bool `gorm:"not null;default:false" json:"locked"`
	AssignmentLocked bool `gorm:"not null;default:false" json:"assignment_locked"`

	// Santa track: pending → sent
	SantaSentAt   *time.Time `json:"santa_sent_at,omitempty"`
	SantaSendInfo string     `gorm:"type:text" json:"santa_send_info,omitempty"`

	// Recipient track: pending → received, then thanks/receipt
	RecipientReceivedAt    *time.Time `json:"recipient_received_at,omitempty"`
	RecipientThanksMessage string     `gorm:"type:text" json:"recipient_thanks_message,omitempty"`
	RecipientReceiptImage  string     `gorm:"type:varchar(512)" json:"recipient_receipt_image,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Assignment) TableName() string {
	return "event_assignments"
}

// ============================
// 🟡 Requests
type MarkSentRequest struct {
	SendInfo string `json:"send_info" binding:"required"`
}

type ThanksRequest struct {
	Message string `json:"message" binding:"required"`
}

type LockRequest struct {
	Locked           *bool `json:"locked,omitempty"`
	AssignmentLocked *bool `json:"assignment_locked,omitempty"`
}

// ============================
// 🟢 Assignment view for a participant: their own santa-side pairing,
// recipient identity resolved to a display name.
type SantaView struct {
	Assignment
	RecipientName string `gorm:"-" json:"recipient_name"`
}
