package registration

import (
	"time"

	"gorm.io/datatypes"
)

// ============================
// 🔷 GORM Registration Model
//
// One row per (event, user). The contact snapshot is captured at
// registration time so later profile edits do not change where a gift
// already in flight is headed.
type Registration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      uint      `gorm:"not null;uniqueIndex:idx_event_user_reg,priority:1" json:"event_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_event_user_reg,priority:2" json:"user_id"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`

	Details *RegistrationDetails `gorm:"foreignKey:EventID,UserID;references:EventID,UserID" json:"details,omitempty"`
}

func (Registration) TableName() string {
	return "event_registrations"
}

// RegistrationDetails holds the delivery snapshot for one registration
type RegistrationDetails struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	EventID  uint           `gorm:"not null;uniqueIndex:idx_event_user_det,priority:1" json:"event_id"`
	UserID   uint           `gorm:"not null;uniqueIndex:idx_event_user_det,priority:2" json:"user_id"`
	Snapshot datatypes.JSON `json:"snapshot"` // address/contact fields as submitted

	CreatedAt time.Time `json:"created_at"`
}

func (RegistrationDetails) TableName() string {
	return "event_registration_details"
}

// ============================
// 🔷 GORM Approval Model
//
// Optional admin gate per registration, only meaningful when the event
// configures an approval stage.
type Approval struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EventID    uint       `gorm:"not null;uniqueIndex:idx_event_user_appr,priority:1" json:"event_id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_event_user_appr,priority:2" json:"user_id"`
	Approved   bool       `gorm:"default:false" json:"approved"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ApprovedBy *uint      `json:"approved_by,omitempty"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Approval) TableName() string {
	return "event_participant_approvals"
}

// ============================
// 🟡 Register Request
type RegisterRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Country    string `json:"country"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Address    string `json:"address" binding:"required"`
	Phone      string `json:"phone"`
	Comment    string `json:"comment"`
}

// ============================
// 🟡 Approval Request
type ApproveRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Approved *bool  `json:"approved" binding:"required"`
	Notes    string `json:"notes"`
}
