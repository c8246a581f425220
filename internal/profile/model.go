package profile

import (
	"time"

	"github.com/gwsanta/secret-santa-backend/internal/admin"
)

// ProfileResponse is the composed self-view: game identity, role,
// title, awards and the telegram link state.
type ProfileResponse struct {
	ID         uint       `json:"id"`
	GameUserID int64      `json:"game_user_id"`
	Username   string     `json:"username"`
	Level      int        `json:"level"`
	Syndicate  int        `json:"syndicate"`
	Email      string     `json:"email,omitempty"`
	Role       string     `json:"role"`
	Title      string     `json:"title,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`

	Awards         []admin.AwardGrant `json:"awards"`
	TelegramLinked bool               `json:"telegram_linked"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}
