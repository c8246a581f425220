package auth

import (
	"time"

	"gorm.io/gorm"
)

// ============================
// 🔷 GORM User Model
//
// Users arrive through the GWars cross-server login; profile fields
// (level, syndicate, passport/mobile flags) are whatever the game last
// reported for them.
type User struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	GameUserID  int64    `gorm:"uniqueIndex;not null" json:"game_user_id"`
	Username    string   `gorm:"size:255;not null" json:"username"`
	Level       int      `json:"level"`
	Syndicate   int      `json:"syndicate"`
	HasPassport bool     `json:"has_passport"`
	HasMobile   bool     `json:"has_mobile"`
	OldPassport bool     `json:"old_passport"`
	UserSex     string   `gorm:"size:10" json:"user_sex"`
	Email       string   `gorm:"size:255;index" json:"email,omitempty"`
	RoleID      uint     `gorm:"not null" json:"role_id"`
	Role        UserRole `gorm:"foreignKey:RoleID;references:ID" json:"role"`

	// Only the seeded superadmin carries a local password
	PasswordHash string `gorm:"size:255" json:"-"`

	TitleID   *uint          `gorm:"index" json:"title_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type UserRole struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"size:50;uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"size:255" json:"description"`
}

// ============================
// 🟡 GWars login parameters as they arrive on the callback URL
type GWarsLoginParams struct {
	Sign        string
	UserID      int64
	Name        string // decoded display name
	NameEncoded string // raw value from the query string, before decoding
	Level       int
	Synd        float64
	Sign2       string
	HasPassport int
	HasMobile   int
	OldPassport int
	Sign3       string
	UserSex     string
	Sign4       string
}

// ============================
// 🟡 Local login (seeded superadmin only)
type LocalLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
