package letter

import (
	"errors"
	"testing"
	"time"
)

func TestValidateLetter(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		body       string
		attachment string
		wantErr    error
	}{
		{"santa with body", SenderSanta, "ho ho ho", "", nil},
		{"grandchild with body", SenderGrandchild, "dear santa", "", nil},
		{"attachment only", SenderSanta, "", "uploads/letters/card.png", nil},
		{"body and attachment", SenderGrandchild, "look!", "uploads/letters/drawing.png", nil},
		{"empty letter", SenderSanta, "", "", ErrEmptyLetter},
		{"unknown role", "elf", "hello", "", ErrBadSenderRole},
		{"empty role", "", "hello", "", ErrBadSenderRole},
		{"role checked before emptiness", "elf", "", "", ErrBadSenderRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateLetter(tt.role, tt.body, tt.attachment); !errors.Is(err, tt.wantErr) {
				t.Errorf("validateLetter() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrderThread(t *testing.T) {
	base := time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)

	// Repository order scrambled on purpose; the thread must come back
	// oldest-first with every sender role intact.
	msgs := []LetterMessage{
		{ID: 3, SenderRole: SenderSanta, Body: "it is on its way", CreatedAt: base.Add(2 * time.Hour)},
		{ID: 1, SenderRole: SenderSanta, Body: "what do you wish for?", CreatedAt: base},
		{ID: 2, SenderRole: SenderGrandchild, Body: "a wooden train", CreatedAt: base.Add(time.Hour)},
	}

	got := orderThread(msgs)

	wantIDs := []uint{1, 2, 3}
	wantRoles := []string{SenderSanta, SenderGrandchild, SenderSanta}
	for i := range got {
		if got[i].ID != wantIDs[i] {
			t.Errorf("position %d: got message %d, want %d", i, got[i].ID, wantIDs[i])
		}
		if got[i].SenderRole != wantRoles[i] {
			t.Errorf("position %d: got role %q, want %q", i, got[i].SenderRole, wantRoles[i])
		}
	}
}

func TestOrderThreadSameTimestamp(t *testing.T) {
	at := time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)
	msgs := []LetterMessage{
		{ID: 8, SenderRole: SenderGrandchild, CreatedAt: at},
		{ID: 7, SenderRole: SenderSanta, CreatedAt: at},
	}

	got := orderThread(msgs)
	if got[0].ID != 7 || got[1].ID != 8 {
		t.Errorf("same-second letters out of order: got [%d, %d], want [7, 8]", got[0].ID, got[1].ID)
	}
}
