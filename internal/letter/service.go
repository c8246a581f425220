package letter

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/gwsanta/secret-santa-backend/internal/assignment"
	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/event"
	"github.com/gwsanta/secret-santa-backend/internal/metrics"
	"github.com/gwsanta/secret-santa-backend/middleware"
)

var (
	ErrNoThread      = errors.New("no letter thread for this event")
	ErrEmptyLetter   = errors.New("letter needs a body or an attachment")
	ErrEventClosed   = errors.New("event is closed, letters can no longer be posted")
	ErrBadSenderRole = errors.New("unknown sender role")
)

// validateLetter rejects a letter before it reaches the repository. The
// sender role is always one of the two thread sides.
func validateLetter(role, body, attachmentPath string) error {
	if role != SenderSanta && role != SenderGrandchild {
		return ErrBadSenderRole
	}
	if body == "" && attachmentPath == "" {
		return ErrEmptyLetter
	}
	return nil
}

// orderThread sorts a thread oldest-first; ties on CreatedAt fall back to
// insertion order so two letters in the same second keep their sequence.
func orderThread(msgs []LetterMessage) []LetterMessage {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs
}

// Service routes letters through the assignment pairing so that a santa
// and their grandchild can write to each other without either side
// learning the santa's identity.
type Service struct {
	Repo           *Repository
	AssignmentRepo *assignment.Repository
	EventSvc       *event.Service
	AuditSvc       auditlog.Service
}

func NewService(r *Repository, assignmentRepo *assignment.Repository, eventSvc *event.Service, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AssignmentRepo: assignmentRepo, EventSvc: eventSvc, AuditSvc: auditSvc}
}

// eventOpen reports whether the event still accepts letters. Events
// with unknown stage boundaries stay open.
func (s *Service) eventOpen(eventID uint) (bool, error) {
	ev, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return false, err
	}
	_, pos := event.CurrentStage(ev, event.EventNow(ev, time.Now()))
	return pos != event.PositionClosed, nil
}

// ===========================
// ✉️ Post a letter to own grandchild (caller writes as santa)
func (s *Service) PostToGrandchild(eventID uint, body, attachmentPath string, accessContext middleware.AccessContext, ip string) (*LetterMessage, error) {
	a, err := s.AssignmentRepo.GetBySanta(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNoThread
	}
	if open, err := s.eventOpen(eventID); err != nil {
		return nil, err
	} else if !open {
		return nil, ErrEventClosed
	}
	return s.post(a.ID, SenderSanta, body, attachmentPath, accessContext, ip)
}

// ✉️ Post a letter to own santa (caller writes as grandchild)
func (s *Service) PostToSanta(eventID uint, body, attachmentPath string, accessContext middleware.AccessContext, ip string) (*LetterMessage, error) {
	a, err := s.AssignmentRepo.GetByRecipient(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNoThread
	}
	if open, err := s.eventOpen(eventID); err != nil {
		return nil, err
	} else if !open {
		return nil, ErrEventClosed
	}
	return s.post(a.ID, SenderGrandchild, body, attachmentPath, accessContext, ip)
}

func (s *Service) post(assignmentID uint, role, body, attachmentPath string, accessContext middleware.AccessContext, ip string) (*LetterMessage, error) {
	if err := validateLetter(role, body, attachmentPath); err != nil {
		return nil, err
	}

	msg := &LetterMessage{
		AssignmentID:   assignmentID,
		SenderRole:     role,
		Body:           body,
		AttachmentPath: attachmentPath,
	}
	if err := s.Repo.Create(msg); err != nil {
		return nil, err
	}

	metrics.LettersPosted.Inc()
	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "LETTER_POSTED",
		map[string]interface{}{"assignment_id": assignmentID, "sender_role": role, "message_id": msg.ID}, ip, "success")
	return msg, nil
}

// ===========================
// 📄 Thread with own grandchild (caller is the santa)
func (s *Service) ThreadWithGrandchild(eventID uint, accessContext middleware.AccessContext) ([]LetterMessage, error) {
	a, err := s.AssignmentRepo.GetBySanta(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNoThread
	}
	msgs, err := s.Repo.ListByAssignment(a.ID)
	if err != nil {
		return nil, err
	}
	return orderThread(msgs), nil
}

// 📄 Thread with own santa (caller is the grandchild)
func (s *Service) ThreadWithSanta(eventID uint, accessContext middleware.AccessContext) ([]LetterMessage, error) {
	a, err := s.AssignmentRepo.GetByRecipient(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNoThread
	}
	msgs, err := s.Repo.ListByAssignment(a.ID)
	if err != nil {
		return nil, err
	}
	return orderThread(msgs), nil
}
