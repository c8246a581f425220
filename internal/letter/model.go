package letter

import "time"

// ============================
// 🟢 Letter message between a santa and their grandchild. The thread
// hangs off an assignment; messages are append-only.
type LetterMessage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AssignmentID   uint      `gorm:"not null;index:idx_letter_assignment" json:"assignment_id"`
	SenderRole     string    `gorm:"type:varchar(20);not null" json:"sender_role"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	AttachmentPath string    `gorm:"type:varchar(255)" json:"attachment_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (LetterMessage) TableName() string {
	return "letter_messages"
}

// Sender roles within a letter thread
const (
	SenderSanta      = "santa"
	SenderGrandchild = "grandchild"
)

// ============================
// 🟡 Requests
type PostLetterRequest struct {
	Body string `json:"body" binding:"required"`
}
