package admin

import "time"

// ============================
// 🔷 Award - an event-linked trophy granted on completion
type Award struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Icon        string    `gorm:"type:varchar(255)" json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Award) TableName() string {
	return "awards"
}

// AwardGrant records one award handed to one user
type AwardGrant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AwardID   uint      `gorm:"not null;uniqueIndex:idx_award_user_event,priority:1" json:"award_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_award_user_event,priority:2" json:"user_id"`
	EventID   *uint     `gorm:"uniqueIndex:idx_award_user_event,priority:3" json:"event_id,omitempty"`
	GrantedBy uint      `gorm:"not null" json:"granted_by"`
	CreatedAt time.Time `json:"created_at"`

	Award *Award `gorm:"foreignKey:AwardID" json:"award,omitempty"`
}

func (AwardGrant) TableName() string {
	return "award_grants"
}

// ============================
// 🔷 Title - a display title assignable to users
type Title struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Title) TableName() string {
	return "titles"
}

// ============================
// 🔷 FAQ entry
type FAQEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FAQEntry) TableName() string {
	return "faq_entries"
}

// ============================
// 🔷 Setting - site-wide key/value configuration
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedBy uint      `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "site_settings"
}

// ============================
// 🟡 Requests
type AwardRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type GrantAwardRequest struct {
	UserID  uint  `json:"user_id" binding:"required"`
	EventID *uint `json:"event_id,omitempty"`
}

type TitleRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type AssignTitleRequest struct {
	UserID  uint  `json:"user_id" binding:"required"`
	TitleID *uint `json:"title_id"` // nil clears the title
}

type FAQRequest struct {
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

type SettingRequest struct {
	Value string `json:"value" binding:"required"`
}
