package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/auth"
	"github.com/gwsanta/secret-santa-backend/internal/event"
	"github.com/gwsanta/secret-santa-backend/internal/metrics"
	"github.com/gwsanta/secret-santa-backend/internal/registration"
	"github.com/gwsanta/secret-santa-backend/internal/telegram"
	"github.com/gwsanta/secret-santa-backend/middleware"
	"github.com/gwsanta/secret-santa-backend/utils"
	"gorm.io/datatypes"
)

var ErrUnknownChannel = errors.New("unknown broadcast channel")

// Service queues announcements onto kafka and fans them out to email,
// telegram and the in-app inbox from a consumer loop.
type Service struct {
	Repo         *Repository
	AuthRepo     auth.Repository
	EventSvc     *event.Service
	RegSvc       *registration.Service
	TelegramRepo *telegram.Repository
	AuditSvc     auditlog.Service
}

func NewService(r *Repository, authRepo auth.Repository, eventSvc *event.Service, regSvc *registration.Service, telegramRepo *telegram.Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:         r,
		AuthRepo:     authRepo,
		EventSvc:     eventSvc,
		RegSvc:       regSvc,
		TelegramRepo: telegramRepo,
		AuditSvc:     auditSvc,
	}
}

// ===========================
// 📢 Queue a broadcast (admin). Delivery happens asynchronously in the
// consumer loop.
func (s *Service) CreateBroadcast(req *CreateBroadcastRequest, accessContext middleware.AccessContext, ip string) (*Broadcast, error) {
	if !accessContext.IsAdmin() || !accessContext.CanWrite() {
		return nil, errors.New("admin access required")
	}

	for _, ch := range req.Channels {
		if ch != ChannelEmail && ch != ChannelTelegram && ch != ChannelInbox {
			return nil, ErrUnknownChannel
		}
	}

	if req.EventID != nil {
		if _, err := s.EventSvc.GetEventByID(*req.EventID); err != nil {
			return nil, err
		}
	}

	channelsJSON, err := json.Marshal(req.Channels)
	if err != nil {
		return nil, err
	}

	b := &Broadcast{
		EventID:   req.EventID,
		CreatedBy: accessContext.UserID,
		Title:     req.Title,
		Message:   req.Message,
		Channels:  datatypes.JSON(channelsJSON),
		Status:    StatusQueued,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(queuedBroadcast{BroadcastID: b.ID})
	if err != nil {
		return nil, err
	}
	if err := utils.PublishBroadcast(context.Background(), b.Title, payload); err != nil {
		s.Repo.UpdateStatus(b.ID, StatusFailed)
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, req.EventID, "BROADCAST_QUEUED",
			map[string]interface{}{"broadcast_id": b.ID, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, req.EventID, "BROADCAST_QUEUED",
		map[string]interface{}{"broadcast_id": b.ID, "channels": req.Channels}, ip, "success")
	return b, nil
}

// 📄 List broadcasts (admin)
func (s *Service) ListBroadcasts(limit, offset int, accessContext middleware.AccessContext) ([]Broadcast, error) {
	if !accessContext.IsAdmin() {
		return nil, errors.New("admin access required")
	}
	return s.Repo.List(limit, offset)
}

// 📄 Delivery log (admin)
func (s *Service) ListDeliveries(broadcastID uint, accessContext middleware.AccessContext) ([]BroadcastDelivery, error) {
	if !accessContext.IsAdmin() {
		return nil, errors.New("admin access required")
	}
	return s.Repo.ListDeliveries(broadcastID)
}

// ===========================
// 🔄 Consumer loop. Runs until the context is cancelled.
func (s *Service) StartConsumer(ctx context.Context) {
	reader := utils.NewBroadcastReader()
	if reader == nil {
		log.Println("⚠️ Kafka not configured, broadcast delivery disabled")
		return
	}
	defer reader.Close()

	log.Println("🔄 Broadcast consumer started")
	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("🔄 Broadcast consumer stopped")
				return
			}
			log.Printf("❌ Broadcast consumer read error: %v", err)
			continue
		}

		var q queuedBroadcast
		if err := json.Unmarshal(m.Value, &q); err != nil {
			log.Printf("⚠️ Skipping malformed broadcast message: %v", err)
			continue
		}

		if err := s.deliver(q.BroadcastID); err != nil {
			log.Printf("❌ Broadcast %d delivery failed: %v", q.BroadcastID, err)
		}
	}
}

// deliver fans one queued broadcast out over its channels and records a
// delivery row per recipient per channel.
func (s *Service) deliver(broadcastID uint) error {
	b, err := s.Repo.GetByID(broadcastID)
	if err != nil {
		return err
	}

	var channels []string
	if err := json.Unmarshal(b.Channels, &channels); err != nil {
		s.Repo.UpdateStatus(b.ID, StatusFailed)
		return err
	}

	audience, err := s.audience(b)
	if err != nil {
		s.Repo.UpdateStatus(b.ID, StatusFailed)
		return err
	}
	if len(audience) == 0 {
		log.Printf("⚠️ Broadcast %d has no recipients", b.ID)
		return s.Repo.UpdateStatus(b.ID, StatusDelivered)
	}

	for _, ch := range channels {
		switch ch {
		case ChannelInbox:
			s.deliverInbox(b, audience)
		case ChannelEmail:
			s.deliverEmail(b, audience)
		case ChannelTelegram:
			s.deliverTelegram(b, audience)
		}
	}

	return s.Repo.UpdateStatus(b.ID, StatusDelivered)
}

// audience resolves who a broadcast goes to: an event's participants,
// or every participant-role user when no event is set.
func (s *Service) audience(b *Broadcast) ([]uint, error) {
	if b.EventID == nil {
		return s.AuthRepo.GetUserIDsByRole(middleware.RoleParticipant)
	}

	ev, err := s.EventSvc.GetEventByID(*b.EventID)
	if err != nil {
		return nil, err
	}
	return s.RegSvc.ParticipantIDs(ev)
}

func (s *Service) deliverInbox(b *Broadcast, audience []uint) {
	msgs := make([]InboxMessage, len(audience))
	for i, userID := range audience {
		msgs[i] = InboxMessage{
			UserID:      userID,
			BroadcastID: b.ID,
			Title:       b.Title,
			Message:     b.Message,
		}
	}
	if err := s.Repo.CreateInboxBatch(msgs); err != nil {
		log.Printf("❌ Inbox fan-out for broadcast %d failed: %v", b.ID, err)
		return
	}
	for _, userID := range audience {
		s.recordDelivery(b.ID, userID, ChannelInbox, nil)
	}
}

func (s *Service) deliverEmail(b *Broadcast, audience []uint) {
	emails, err := s.AuthRepo.GetEmailsByIDs(audience)
	if err != nil {
		log.Printf("❌ Email lookup for broadcast %d failed: %v", b.ID, err)
		return
	}

	for _, userID := range audience {
		addr, ok := emails[userID]
		if !ok {
			continue // game accounts without a mail address
		}
		err := utils.SendEmail(addr, b.Title, b.Message)
		s.recordDelivery(b.ID, userID, ChannelEmail, err)
	}
}

func (s *Service) deliverTelegram(b *Broadcast, audience []uint) {
	links, err := s.TelegramRepo.NotifiableChats(audience)
	if err != nil {
		log.Printf("❌ Telegram lookup for broadcast %d failed: %v", b.ID, err)
		return
	}

	text := "📢 " + b.Title + "\n\n" + b.Message
	for _, link := range links {
		err := utils.SendTelegramMessage(link.ChatID, text)
		s.recordDelivery(b.ID, link.UserID, ChannelTelegram, err)
	}
}

func (s *Service) recordDelivery(broadcastID, userID uint, channel string, deliveryErr error) {
	d := &BroadcastDelivery{
		BroadcastID: broadcastID,
		UserID:      userID,
		Channel:     channel,
		Status:      "sent",
	}
	if deliveryErr != nil {
		msg := deliveryErr.Error()
		d.Status = "failed"
		d.Error = &msg
	} else {
		metrics.BroadcastsDelivered.Inc()
	}

	if err := s.Repo.CreateDelivery(d); err != nil {
		log.Printf("⚠️ Failed to record delivery for broadcast %d user %d: %v", broadcastID, userID, err)
	}
}

// ===========================
// 📬 Inbox for the current user
func (s *Service) GetInbox(unreadOnly bool, limit, offset int, accessContext middleware.AccessContext) ([]InboxMessage, int64, error) {
	msgs, err := s.Repo.ListInbox(accessContext.UserID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.Repo.CountUnread(accessContext.UserID)
	if err != nil {
		return nil, 0, err
	}
	return msgs, unread, nil
}

// 🎯 Mark one inbox message read
func (s *Service) MarkRead(messageID uint, accessContext middleware.AccessContext) error {
	return s.Repo.MarkRead(accessContext.UserID, messageID)
}

// 🎯 Mark the whole inbox read
func (s *Service) MarkAllRead(accessContext middleware.AccessContext) error {
	return s.Repo.MarkAllRead(accessContext.UserID)
}
