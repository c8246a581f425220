package profile

import (
	"context"
	"errors"

	"github.com/gwsanta/secret-santa-backend/internal/admin"
	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/auth"
	"github.com/gwsanta/secret-santa-backend/internal/telegram"
	"github.com/gwsanta/secret-santa-backend/middleware"
)

type Service struct {
	AuthRepo     auth.Repository
	AdminRepo    *admin.Repository
	TelegramRepo *telegram.Repository
	AuditSvc     auditlog.Service
}

func NewService(authRepo auth.Repository, adminRepo *admin.Repository, telegramRepo *telegram.Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		AuthRepo:     authRepo,
		AdminRepo:    adminRepo,
		TelegramRepo: telegramRepo,
		AuditSvc:     auditSvc,
	}
}

// ===========================
// 🔍 Composed self-view
func (s *Service) GetProfile(accessContext middleware.AccessContext) (*ProfileResponse, error) {
	u, err := s.AuthRepo.FindByID(accessContext.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	resp := &ProfileResponse{
		ID:         u.ID,
		GameUserID: u.GameUserID,
		Username:   u.Username,
		Level:      u.Level,
		Syndicate:  u.Syndicate,
		Email:      u.Email,
		Role:       u.Role.RoleName,
		LastLogin:  u.LastLogin,
		Awards:     []admin.AwardGrant{},
	}

	if u.TitleID != nil {
		if t, err := s.AdminRepo.GetTitleByID(*u.TitleID); err == nil {
			resp.Title = t.Name
		}
	}

	if grants, err := s.AdminRepo.ListGrantsByUser(u.ID); err == nil {
		resp.Awards = grants
	}

	if _, err := s.TelegramRepo.GetByUserID(u.ID); err == nil {
		resp.TelegramLinked = true
	}

	return resp, nil
}

// 🎯 Set the contact email used for event mail
func (s *Service) UpdateEmail(req *UpdateEmailRequest, accessContext middleware.AccessContext, ip string) error {
	if err := s.AuthRepo.UpdateEmail(accessContext.UserID, req.Email); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "EMAIL_UPDATED",
		map[string]interface{}{}, ip, "success")
	return nil
}
