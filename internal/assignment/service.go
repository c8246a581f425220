package assignment

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/event"
	"github.com/gwsanta/secret-santa-backend/internal/registration"
	"github.com/gwsanta/secret-santa-backend/middleware"
	"github.com/gwsanta/secret-santa-backend/utils"
	"gorm.io/gorm"
)

var (
	ErrPairingNotAllowed = errors.New("pairing cannot run: registration/approval still open or assignments exist")
	ErrStatusLocked      = errors.New("assignment status is locked")
	ErrPairingLocked     = errors.New("assignment pairing is locked")
	ErrAlreadySent       = errors.New("gift already marked as sent")
	ErrAlreadyReceived   = errors.New("gift already marked as received")
	ErrNotReceived       = errors.New("gift not marked as received yet")
	ErrNotYourAssignment = errors.New("assignment does not belong to you")
)

// Service wraps the pairing generator and the gift-status tracker
type Service struct {
	Repo     *Repository
	EventSvc *event.Service
	RegSvc   *registration.Service
	AuditSvc auditlog.Service

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewService(r *Repository, eventSvc *event.Service, regSvc *registration.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		EventSvc: eventSvc,
		RegSvc:   regSvc,
		AuditSvc: auditSvc,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ===========================
// 🎲 Run the pairing generator for an event (admin, once)
func (s *Service) RunAssignment(eventID uint, accessContext middleware.AccessContext, ip string) ([]Assignment, error) {
	if !accessContext.IsAdmin() || !accessContext.CanWrite() {
		return nil, errors.New("admin access required")
	}

	ev, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	count, err := s.Repo.Count(eventID)
	if err != nil {
		return nil, err
	}

	eventNow := event.EventNow(ev, time.Now())
	if !event.CanAssign(ev, eventNow, count > 0) {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "PAIRING_RUN",
			map[string]interface{}{"event_id": eventID, "error": "precondition failed"}, ip, "failure")
		return nil, ErrPairingNotAllowed
	}

	participants, err := s.RegSvc.ParticipantIDs(ev)
	if err != nil {
		return nil, err
	}

	exclude, err := s.Repo.PriorPairings(eventID)
	if err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	pairs, err := GeneratePairing(participants, exclude, s.rng)
	s.rngMu.Unlock()
	if err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "PAIRING_RUN",
			map[string]interface{}{"event_id": eventID, "participants": len(participants), "error": err.Error()}, ip, "failure")
		return nil, err
	}

	rows := make([]Assignment, len(pairs))
	for i, p := range pairs {
		rows[i] = Assignment{
			EventID:         eventID,
			SantaUserID:     p.Santa,
			RecipientUserID: p.Recipient,
			AssignedBy:      accessContext.UserID,
		}
	}

	if err := s.Repo.CreateBatch(eventID, rows); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "PAIRING_RUN",
			map[string]interface{}{"event_id": eventID, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "PAIRING_RUN",
		map[string]interface{}{"event_id": eventID, "assignments": len(rows)}, ip, "success")

	go s.notifyAssignments(ev.Name, rows)

	return rows, nil
}

// notifyAssignments mails every santa their pairing. Best effort, after the
// transaction committed.
func (s *Service) notifyAssignments(eventName string, rows []Assignment) {
	ids := make([]uint, 0, len(rows)*2)
	for _, a := range rows {
		ids = append(ids, a.SantaUserID, a.RecipientUserID)
	}

	names, err := s.Repo.UserNames(ids)
	if err != nil {
		log.Printf("⚠️ Assignment mail skipped, name lookup failed: %v", err)
		return
	}
	emails, err := s.Repo.UserEmails(ids)
	if err != nil {
		log.Printf("⚠️ Assignment mail skipped, email lookup failed: %v", err)
		return
	}

	for _, a := range rows {
		to, ok := emails[a.SantaUserID]
		if !ok {
			continue
		}
		utils.SendAssignmentEmail(to, names[a.SantaUserID], names[a.RecipientUserID], eventName)
	}
}

// ===========================
// 🔍 Own santa-side assignment, recipient name resolved
func (s *Service) GetOwnAsSanta(eventID uint, accessContext middleware.AccessContext) (*SantaView, error) {
	a, err := s.Repo.GetBySanta(eventID, accessContext.UserID)
	if err != nil {
		return nil, errors.New("no assignment for this event")
	}

	view := &SantaView{Assignment: *a}
	if names, err := s.Repo.UserNames([]uint{a.RecipientUserID}); err == nil {
		view.RecipientName = names[a.RecipientUserID]
	}
	return view, nil
}

// 🔍 Own recipient-side assignment. The santa's identity stays hidden.
func (s *Service) GetOwnAsRecipient(eventID uint, accessContext middleware.AccessContext) (*Assignment, error) {
	a, err := s.Repo.GetByRecipient(eventID, accessContext.UserID)
	if err != nil {
		return nil, errors.New("no assignment for this event")
	}

	masked := *a
	masked.SantaUserID = 0
	return &masked, nil
}

// 📄 All assignments for an event (admin)
func (s *Service) ListByEvent(eventID uint, accessContext middleware.AccessContext) ([]Assignment, error) {
	if !accessContext.IsAdmin() {
		return nil, errors.New("admin access required")
	}
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🎁 Santa track: pending → sent
func (s *Service) MarkSent(eventID uint, req *MarkSentRequest, accessContext middleware.AccessContext, ip string) (*Assignment, error) {
	a, err := s.Repo.GetBySanta(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNotYourAssignment
	}
	if err := guardMarkSent(a); err != nil {
		return nil, err
	}

	now := time.Now()
	a.SantaSentAt = &now
	a.SantaSendInfo = req.SendInfo

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "GIFT_SENT",
		map[string]interface{}{"assignment_id": a.ID}, ip, "success")

	go s.notifyGiftSent(eventID, a.RecipientUserID)

	return a, nil
}

func (s *Service) notifyGiftSent(eventID, recipientID uint) {
	ev, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return
	}
	emails, err := s.Repo.UserEmails([]uint{recipientID})
	if err != nil {
		return
	}
	to, ok := emails[recipientID]
	if !ok {
		return
	}
	names, _ := s.Repo.UserNames([]uint{recipientID})
	utils.SendGiftSentEmail(to, names[recipientID], ev.Name)
}

// 🎁 Recipient track: pending → received
func (s *Service) MarkReceived(eventID uint, accessContext middleware.AccessContext, ip string) (*Assignment, error) {
	a, err := s.Repo.GetByRecipient(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNotYourAssignment
	}
	if err := guardMarkReceived(a); err != nil {
		return nil, err
	}

	now := time.Now()
	a.RecipientReceivedAt = &now

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "GIFT_RECEIVED",
		map[string]interface{}{"assignment_id": a.ID}, ip, "success")
	return a, nil
}

// 🙏 Thanks message, only after the gift is received
func (s *Service) SetThanks(eventID uint, req *ThanksRequest, accessContext middleware.AccessContext, ip string) (*Assignment, error) {
	a, err := s.Repo.GetByRecipient(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNotYourAssignment
	}
	if err := guardAfterReceived(a); err != nil {
		return nil, err
	}

	a.RecipientThanksMessage = req.Message
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "GIFT_THANKS",
		map[string]interface{}{"assignment_id": a.ID}, ip, "success")
	return a, nil
}

// 📷 Receipt image, only after the gift is received. The save callback runs
// after the gates pass so a rejected request never leaves a file behind.
func (s *Service) SetReceiptImage(eventID uint, save func() (string, error), accessContext middleware.AccessContext, ip string) (*Assignment, error) {
	a, err := s.Repo.GetByRecipient(eventID, accessContext.UserID)
	if err != nil {
		return nil, ErrNotYourAssignment
	}
	if err := guardAfterReceived(a); err != nil {
		return nil, err
	}

	path, err := save()
	if err != nil {
		return nil, err
	}

	a.RecipientReceiptImage = path
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "GIFT_RECEIPT_UPLOADED",
		map[string]interface{}{"assignment_id": a.ID, "path": path}, ip, "success")
	return a, nil
}

// ===========================
// 🔒 Admin: set the two lock flags independently
func (s *Service) SetLocks(assignmentID uint, req *LockRequest, accessContext middleware.AccessContext, ip string) (*Assignment, error) {
	if !accessContext.IsAdmin() || !accessContext.CanWrite() {
		return nil, errors.New("admin access required")
	}

	a, err := s.Repo.GetByID(assignmentID)
	if err != nil {
		return nil, errors.New("assignment not found")
	}

	if req.Locked != nil {
		a.Locked = *req.Locked
	}
	if req.AssignmentLocked != nil {
		a.AssignmentLocked = *req.AssignmentLocked
	}

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &a.EventID, "ASSIGNMENT_LOCKS_SET",
		map[string]interface{}{"assignment_id": a.ID, "locked": a.Locked, "assignment_locked": a.AssignmentLocked}, ip, "success")
	return a, nil
}

// 🔄 Admin: reset the santa track to pending. Rejected once the status
// track is locked.
func (s *Service) ResetSent(assignmentID uint, accessContext middleware.AccessContext, ip string) (*Assignment, error) {
	if !accessContext.IsAdmin() || !accessContext.CanWrite() {
		return nil, errors.New("admin access required")
	}

	a, err := s.Repo.GetByID(assignmentID)
	if err != nil {
		return nil, errors.New("assignment not found")
	}
	if err := guardResetSent(a); err != nil {
		return nil, err
	}

	a.SantaSentAt = nil
	a.SantaSendInfo = ""

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &a.EventID, "ASSIGNMENT_SENT_RESET",
		map[string]interface{}{"assignment_id": a.ID}, ip, "success")
	return a, nil
}

// 🔄 Admin: swap the recipients of two assignments in the same event.
// Blocked when either pairing identity is locked.
func (s *Service) SwapRecipients(firstID, secondID uint, accessContext middleware.AccessContext, ip string) error {
	if !accessContext.IsAdmin() || !accessContext.CanWrite() {
		return errors.New("admin access required")
	}

	first, err := s.Repo.GetByID(firstID)
	if err != nil {
		return errors.New("assignment not found")
	}
	second, err := s.Repo.GetByID(secondID)
	if err != nil {
		return errors.New("assignment not found")
	}

	if first.EventID != second.EventID {
		return errors.New("assignments belong to different events")
	}
	if first.AssignmentLocked || second.AssignmentLocked {
		return ErrPairingLocked
	}
	if first.RecipientUserID == second.SantaUserID || second.RecipientUserID == first.SantaUserID {
		return errors.New("swap would create a self-pairing")
	}

	firstRecipient, secondRecipient := first.RecipientUserID, second.RecipientUserID

	// The unique (event, recipient) index is checked per statement, so the
	// first row parks on a placeholder before the recipients cross over.
	err = s.Repo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Assignment{}).Where("id = ?", first.ID).
			Update("recipient_user_id", 0).Error; err != nil {
			return err
		}
		if err := tx.Model(&Assignment{}).Where("id = ?", second.ID).
			Update("recipient_user_id", firstRecipient).Error; err != nil {
			return err
		}
		return tx.Model(&Assignment{}).Where("id = ?", first.ID).
			Update("recipient_user_id", secondRecipient).Error
	})
	if err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &first.EventID, "ASSIGNMENT_RECIPIENTS_SWAPPED",
		map[string]interface{}{"first": first.ID, "second": second.ID}, ip, "success")
	return nil
}
