package assignment

import (
	"errors"
	"testing"
	"time"
)

func ts(t time.Time) *time.Time { return &t }

func TestGuardMarkSent(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		a       Assignment
		wantErr error
	}{
		{"fresh assignment", Assignment{}, nil},
		{"already sent", Assignment{SantaSentAt: ts(now)}, ErrAlreadySent},
		{"locked", Assignment{Locked: true}, ErrStatusLocked},
		{"locked wins over already sent", Assignment{Locked: true, SantaSentAt: ts(now)}, ErrStatusLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := guardMarkSent(&tt.a); !errors.Is(err, tt.wantErr) {
				t.Errorf("guardMarkSent() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGuardMarkReceived(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		a       Assignment
		wantErr error
	}{
		{"fresh assignment", Assignment{}, nil},
		{"received is independent of sent", Assignment{SantaSentAt: ts(now)}, nil},
		{"already received", Assignment{RecipientReceivedAt: ts(now)}, ErrAlreadyReceived},
		{"locked", Assignment{Locked: true}, ErrStatusLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := guardMarkReceived(&tt.a); !errors.Is(err, tt.wantErr) {
				t.Errorf("guardMarkReceived() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGuardAfterReceived(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		a       Assignment
		wantErr error
	}{
		{"not yet received", Assignment{}, ErrNotReceived},
		{"sent but not received", Assignment{SantaSentAt: ts(now)}, ErrNotReceived},
		{"received", Assignment{RecipientReceivedAt: ts(now)}, nil},
		{"locked after received", Assignment{Locked: true, RecipientReceivedAt: ts(now)}, ErrStatusLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := guardAfterReceived(&tt.a); !errors.Is(err, tt.wantErr) {
				t.Errorf("guardAfterReceived() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGuardResetSent(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		a       Assignment
		wantErr error
	}{
		{"sent assignment can be reset", Assignment{SantaSentAt: ts(now)}, nil},
		{"unsent assignment resets to a no-op", Assignment{}, nil},
		{"locked blocks the reset", Assignment{Locked: true, SantaSentAt: ts(now)}, ErrStatusLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := guardResetSent(&tt.a); !errors.Is(err, tt.wantErr) {
				t.Errorf("guardResetSent() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// Pairing-lock and status-lock are independent: a pairing frozen for swaps
// still lets the santa and recipient advance their own tracks.
func TestStatusGatesIgnorePairingLock(t *testing.T) {
	a := Assignment{AssignmentLocked: true}
	if err := guardMarkSent(&a); err != nil {
		t.Errorf("guardMarkSent() with pairing lock = %v, want nil", err)
	}
	if err := guardMarkReceived(&a); err != nil {
		t.Errorf("guardMarkReceived() with pairing lock = %v, want nil", err)
	}
}
