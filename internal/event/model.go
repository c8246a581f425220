package event

import (
	"time"

	"gorm.io/gorm"
)

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	AwardID     *uint  `gorm:"index" json:"award_id,omitempty"`

	// Hour delta applied to server time when computing the "event now"
	// used against stage windows
	ClockOffsetHours int `gorm:"not null;default:0" json:"clock_offset_hours"`

	CreatedBy uint           `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Stages []Stage `gorm:"foreignKey:EventID" json:"stages,omitempty"`

	RegistrationCount int `gorm:"-" json:"registration_count"`
}

// Known stage types. One of each per event at most.
const (
	StageRegistration = "registration"
	StageApproval     = "approval"
	StageAssignment   = "assignment"
	StageGiftExchange = "gift_exchange"
	StageClosing      = "closing"
)

// ============================
// 🔷 GORM Stage Model
//
// Start/end are stored as naive timestamp strings; legacy rows carry a
// handful of formats, so parsing happens at read time and may fail soft.
type Stage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	EventID       uint   `gorm:"not null;uniqueIndex:idx_event_stage_type,priority:1" json:"event_id"`
	StageType     string `gorm:"type:varchar(50);not null;uniqueIndex:idx_event_stage_type,priority:2" json:"stage_type"`
	StageOrder    int    `gorm:"not null" json:"stage_order"`
	StartDatetime string `gorm:"type:varchar(40)" json:"start_datetime"`
	EndDatetime   string `gorm:"type:varchar(40)" json:"end_datetime"`
	IsRequired    bool   `gorm:"default:false" json:"is_required"`
	IsOptional    bool   `gorm:"default:false" json:"is_optional"`
}

func (Stage) TableName() string {
	return "event_stages"
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Name             string               `json:"name" binding:"required"`
	Description      string               `json:"description"`
	AwardID          *uint                `json:"award_id,omitempty"`
	ClockOffsetHours *int                 `json:"clock_offset_hours,omitempty"`
	Stages           []CreateStageRequest `json:"stages"`
}

type CreateStageRequest struct {
	StageType     string `json:"stage_type" binding:"required"`
	StageOrder    int    `json:"stage_order"`
	StartDatetime string `json:"start_datetime"` // 🛠 string format: "2006-01-02 15:04:05"
	EndDatetime   string `json:"end_datetime"`
	IsRequired    *bool  `json:"is_required,omitempty"`
	IsOptional    *bool  `json:"is_optional,omitempty"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	AwardID          *uint  `json:"award_id,omitempty"`
	ClockOffsetHours *int   `json:"clock_offset_hours,omitempty"`
}

// ============================
// 🟢 Event Status Response
type EventStatusResponse struct {
	EventID      uint   `json:"event_id"`
	Position     string `json:"position"`
	CurrentStage *Stage `json:"current_stage,omitempty"`
	EventNow     string `json:"event_now"`
	CanRegister  bool   `json:"can_register"`
}
