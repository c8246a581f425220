package registration

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/event"
	"github.com/gwsanta/secret-santa-backend/middleware"
)

var (
	ErrRegistrationClosed = errors.New("registration is not open for this event")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrNotRegistered      = errors.New("not registered for this event")
)

// Service wraps registration and approval logic
type Service struct {
	Repo     *Repository
	EventSvc *event.Service
	AuditSvc auditlog.Service
}

func NewService(r *Repository, eventSvc *event.Service, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, EventSvc: eventSvc, AuditSvc: auditSvc}
}

// ===========================
// 🎯 Register for an event (participants, during the registration stage)
func (s *Service) Register(eventID uint, req *RegisterRequest, accessContext middleware.AccessContext, ip string) (*Registration, error) {
	ev, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	eventNow := event.EventNow(ev, time.Now())
	if !event.CanRegister(ev, eventNow) {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "EVENT_REGISTERED",
			map[string]interface{}{"event_id": eventID, "error": "registration closed"}, ip, "failure")
		return nil, ErrRegistrationClosed
	}

	if _, err := s.Repo.GetRegistration(eventID, accessContext.UserID); err == nil {
		return nil, ErrAlreadyRegistered
	}

	snapshot, err := json.Marshal(map[string]string{
		"full_name":   req.FullName,
		"country":     req.Country,
		"city":        req.City,
		"postal_code": req.PostalCode,
		"address":     req.Address,
		"phone":       req.Phone,
		"comment":     req.Comment,
	})
	if err != nil {
		return nil, err
	}

	reg := &Registration{
		EventID: eventID,
		UserID:  accessContext.UserID,
	}
	details := &RegistrationDetails{Snapshot: snapshot}

	if err := s.Repo.CreateRegistration(reg, details); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, ErrAlreadyRegistered
		}
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "EVENT_REGISTERED",
			map[string]interface{}{"event_id": eventID, "error": err.Error()}, ip, "failure")
		return nil, err
	}
	reg.Details = details

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "EVENT_REGISTERED",
		map[string]interface{}{"event_id": eventID}, ip, "success")
	return reg, nil
}

// ===========================
// 🔍 Own registration
func (s *Service) GetOwn(eventID uint, accessContext middleware.AccessContext) (*Registration, error) {
	reg, err := s.Repo.GetRegistration(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNotRegistered
	}
	return reg, nil
}

// ===========================
// ❌ Withdraw (only while registration is still open)
func (s *Service) Withdraw(eventID uint, accessContext middleware.AccessContext, ip string) error {
	ev, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return err
	}

	eventNow := event.EventNow(ev, time.Now())
	if !event.CanRegister(ev, eventNow) {
		return ErrRegistrationClosed
	}

	if _, err := s.Repo.GetRegistration(eventID, accessContext.UserID); err != nil {
		return ErrNotRegistered
	}

	if err := s.Repo.DeleteRegistration(eventID, accessContext.UserID); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "EVENT_WITHDRAWN",
		map[string]interface{}{"event_id": eventID}, ip, "success")
	return nil
}

// ===========================
// 📄 List registrations (admin)
func (s *Service) ListByEvent(eventID uint, accessContext middleware.AccessContext) ([]Registration, error) {
	if !accessContext.IsAdmin() {
		return nil, errors.New("admin access required")
	}
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🛠 Approve / reject a registration (admin)
func (s *Service) Approve(eventID uint, req *ApproveRequest, accessContext middleware.AccessContext, ip string) (*Approval, error) {
	if !accessContext.IsAdmin() || !accessContext.CanWrite() {
		return nil, errors.New("admin access required")
	}

	if _, err := s.Repo.GetRegistration(eventID, req.UserID); err != nil {
		return nil, ErrNotRegistered
	}

	now := time.Now()
	approval := &Approval{
		EventID:    eventID,
		UserID:     req.UserID,
		Approved:   *req.Approved,
		ApprovedAt: &now,
		ApprovedBy: &accessContext.UserID,
		Notes:      req.Notes,
	}

	if err := s.Repo.SaveApproval(approval); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "PARTICIPANT_APPROVAL",
			map[string]interface{}{"event_id": eventID, "user_id": req.UserID, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "PARTICIPANT_APPROVAL",
		map[string]interface{}{"event_id": eventID, "user_id": req.UserID, "approved": *req.Approved}, ip, "success")
	return approval, nil
}

// ===========================
// 📄 Participant set for pairing: approved users if the event configures
// an approval stage, all registrants otherwise.
func (s *Service) ParticipantIDs(ev *event.Event) ([]uint, error) {
	return s.Repo.ListParticipantIDs(ev.ID, event.HasStage(ev, event.StageApproval))
}
