package telegram

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"time"

	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/middleware"
	"github.com/gwsanta/secret-santa-backend/utils"
)

const linkCodeTTL = 10 * time.Minute

var (
	ErrCodeExpired = errors.New("verification code is invalid or expired")
	ErrNotLinked   = errors.New("no telegram link for this account")
)

type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

func linkCodeKey(code string) string {
	return "telegram:link:" + code
}

// ===========================
// 🔢 Issue a short-lived 6-digit code the user relays to the bot
func (s *Service) RequestLinkCode(accessContext middleware.AccessContext, ip string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	ctx := context.Background()
	if err := utils.SetWithTTL(ctx, linkCodeKey(code), strconv.FormatUint(uint64(accessContext.UserID), 10), linkCodeTTL); err != nil {
		return "", err
	}

	s.AuditSvc.LogAction(ctx, &accessContext.UserID, nil, "TELEGRAM_CODE_ISSUED",
		map[string]interface{}{"ttl_minutes": 10}, ip, "success")
	return code, nil
}

// ===========================
// ✅ Verify a code coming back from the bot and bind the chat
func (s *Service) VerifyLinkCode(req *VerifyLinkRequest, ip string) (*TelegramLink, error) {
	ctx := context.Background()

	value, found, err := utils.GetAndDelete(ctx, linkCodeKey(req.Code))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCodeExpired
	}

	userID64, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, ErrCodeExpired
	}
	userID := uint(userID64)

	link := &TelegramLink{
		UserID:               userID,
		ChatID:               req.ChatID,
		TelegramUsername:     req.TelegramUsername,
		NotificationsEnabled: true,
		LinkedAt:             time.Now(),
	}
	if err := s.Repo.Upsert(link); err != nil {
		return nil, err
	}

	if err := utils.SendTelegramMessage(req.ChatID, "✅ Your account is now linked. You will receive event notifications here."); err != nil {
		log.Printf("⚠️ Failed to send telegram confirmation to chat %d: %v", req.ChatID, err)
	}

	s.AuditSvc.LogAction(ctx, &userID, nil, "TELEGRAM_LINKED",
		map[string]interface{}{"chat_id": req.ChatID}, ip, "success")

	stored, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return link, nil
	}
	return stored, nil
}

// 🔍 Own link
func (s *Service) GetOwnLink(accessContext middleware.AccessContext) (*TelegramLink, error) {
	link, err := s.Repo.GetByUserID(accessContext.UserID)
	if err != nil {
		return nil, ErrNotLinked
	}
	return link, nil
}

// 🎯 Toggle notifications
func (s *Service) SetNotifications(enabled bool, accessContext middleware.AccessContext, ip string) error {
	if _, err := s.Repo.GetByUserID(accessContext.UserID); err != nil {
		return ErrNotLinked
	}
	if err := s.Repo.SetNotifications(accessContext.UserID, enabled); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "TELEGRAM_NOTIFICATIONS_SET",
		map[string]interface{}{"enabled": enabled}, ip, "success")
	return nil
}

// 🗑️ Unlink the chat
func (s *Service) Unlink(accessContext middleware.AccessContext, ip string) error {
	if _, err := s.Repo.GetByUserID(accessContext.UserID); err != nil {
		return ErrNotLinked
	}
	if err := s.Repo.Delete(accessContext.UserID); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "TELEGRAM_UNLINKED",
		map[string]interface{}{}, ip, "success")
	return nil
}

// ===========================
// 📢 Push a message to every linked chat with notifications on
func (s *Service) NotifyUsers(userIDs []uint, text string) int {
	links, err := s.Repo.NotifiableChats(userIDs)
	if err != nil {
		log.Printf("❌ Failed to load telegram links: %v", err)
		return 0
	}

	delivered := 0
	for _, link := range links {
		if err := utils.SendTelegramMessage(link.ChatID, text); err != nil {
			log.Printf("⚠️ Telegram delivery to chat %d failed: %v", link.ChatID, err)
			continue
		}
		delivered++
	}
	return delivered
}
