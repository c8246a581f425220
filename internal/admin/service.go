package admin

import (
	"context"
	"errors"

	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/auth"
	"github.com/gwsanta/secret-santa-backend/middleware"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAdminRequired = errors.New("admin access required")
)

type Service struct {
	Repo     *Repository
	AuthRepo auth.Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, authRepo auth.Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuthRepo: authRepo, AuditSvc: auditSvc}
}

func (s *Service) requireAdmin(accessContext middleware.AccessContext) error {
	if !accessContext.IsAdmin() || !accessContext.CanWrite() {
		return ErrAdminRequired
	}
	return nil
}

// ===========================
// 🏆 Awards

func (s *Service) CreateAward(req *AwardRequest, accessContext middleware.AccessContext, ip string) (*Award, error) {
	if err := s.requireAdmin(accessContext); err != nil {
		return nil, err
	}

	a := &Award{Name: req.Name, Description: req.Description, Icon: req.Icon}
	if err := s.Repo.CreateAward(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "AWARD_CREATED",
		map[string]interface{}{"award_id": a.ID, "name": a.Name}, ip, "success")
	return a, nil
}

func (s *Service) ListAwards() ([]Award, error) {
	return s.Repo.ListAwards()
}

func (s *Service) UpdateAward(id uint, req *AwardRequest, accessContext middleware.AccessContext, ip string) (*Award, error) {
	if err := s.requireAdmin(accessContext); err != nil {
		return nil, err
	}

	a, err := s.Repo.GetAwardByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	a.Name = req.Name
	a.Description = req.Description
	a.Icon = req.Icon
	if err := s.Repo.UpdateAward(a); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "AWARD_UPDATED",
		map[string]interface{}{"award_id": a.ID}, ip, "success")
	return a, nil
}

func (s *Service) DeleteAward(id uint, accessContext middleware.AccessContext, ip string) error {
	if err := s.requireAdmin(accessContext); err != nil {
		return err
	}
	if _, err := s.Repo.GetAwardByID(id); err != nil {
		return ErrNotFound
	}
	if err := s.Repo.DeleteAward(id); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "AWARD_DELETED",
		map[string]interface{}{"award_id": id}, ip, "success")
	return nil
}

func (s *Service) GrantAward(awardID uint, req *GrantAwardRequest, accessContext middleware.AccessContext, ip string) (*AwardGrant, error) {
	if err := s.requireAdmin(accessContext); err != nil {
		return nil, err
	}
	if _, err := s.Repo.GetAwardByID(awardID); err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.AuthRepo.FindByID(req.UserID); err != nil {
		return nil, ErrNotFound
	}

	g := &AwardGrant{
		AwardID:   awardID,
		UserID:    req.UserID,
		EventID:   req.EventID,
		GrantedBy: accessContext.UserID,
	}
	if err := s.Repo.CreateGrant(g); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, req.EventID, "AWARD_GRANTED",
		map[string]interface{}{"award_id": awardID, "user_id": req.UserID}, ip, "success")
	return g, nil
}

func (s *Service) ListUserAwards(userID uint) ([]AwardGrant, error) {
	return s.Repo.ListGrantsByUser(userID)
}

// ===========================
// 🎖️ Titles

func (s *Service) CreateTitle(req *TitleRequest, accessContext middleware.AccessContext, ip string) (*Title, error) {
	if err := s.requireAdmin(accessContext); err != nil {
		return nil, err
	}

	t := &Title{Name: req.Name}
	if err := s.Repo.CreateTitle(t); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "TITLE_CREATED",
		map[string]interface{}{"title_id": t.ID, "name": t.Name}, ip, "success")
	return t, nil
}

func (s *Service) ListTitles() ([]Title, error) {
	return s.Repo.ListTitles()
}

func (s *Service) DeleteTitle(id uint, accessContext middleware.AccessContext, ip string) error {
	if err := s.requireAdmin(accessContext); err != nil {
		return err
	}
	if _, err := s.Repo.GetTitleByID(id); err != nil {
		return ErrNotFound
	}
	if err := s.Repo.DeleteTitle(id); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "TITLE_DELETED",
		map[string]interface{}{"title_id": id}, ip, "success")
	return nil
}

func (s *Service) AssignTitle(req *AssignTitleRequest, accessContext middleware.AccessContext, ip string) error {
	if err := s.requireAdmin(accessContext); err != nil {
		return err
	}
	if _, err := s.AuthRepo.FindByID(req.UserID); err != nil {
		return ErrNotFound
	}
	if req.TitleID != nil {
		if _, err := s.Repo.GetTitleByID(*req.TitleID); err != nil {
			return ErrNotFound
		}
	}

	if err := s.AuthRepo.UpdateTitle(req.UserID, req.TitleID); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "TITLE_ASSIGNED",
		map[string]interface{}{"user_id": req.UserID, "title_id": req.TitleID}, ip, "success")
	return nil
}

// ===========================
// ❓ FAQ

func (s *Service) CreateFAQ(req *FAQRequest, accessContext middleware.AccessContext, ip string) (*FAQEntry, error) {
	if err := s.requireAdmin(accessContext); err != nil {
		return nil, err
	}

	f := &FAQEntry{
		Question:  req.Question,
		Answer:    req.Answer,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := s.Repo.CreateFAQ(f); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "FAQ_CREATED",
		map[string]interface{}{"faq_id": f.ID}, ip, "success")
	return f, nil
}

// ListFAQ shows drafts to admins only.
func (s *Service) ListFAQ(accessContext middleware.AccessContext) ([]FAQEntry, error) {
	return s.Repo.ListFAQ(!accessContext.IsAdmin())
}

func (s *Service) UpdateFAQ(id uint, req *FAQRequest, accessContext middleware.AccessContext, ip string) (*FAQEntry, error) {
	if err := s.requireAdmin(accessContext); err != nil {
		return nil, err
	}

	f, err := s.Repo.GetFAQByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	f.Question = req.Question
	f.Answer = req.Answer
	f.SortOrder = req.SortOrder
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := s.Repo.UpdateFAQ(f); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "FAQ_UPDATED",
		map[string]interface{}{"faq_id": f.ID}, ip, "success")
	return f, nil
}

func (s *Service) DeleteFAQ(id uint, accessContext middleware.AccessContext, ip string) error {
	if err := s.requireAdmin(accessContext); err != nil {
		return err
	}
	if _, err := s.Repo.GetFAQByID(id); err != nil {
		return ErrNotFound
	}
	if err := s.Repo.DeleteFAQ(id); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "FAQ_DELETED",
		map[string]interface{}{"faq_id": id}, ip, "success")
	return nil
}

// ===========================
// ⚙️ Settings

func (s *Service) SetSetting(key string, req *SettingRequest, accessContext middleware.AccessContext, ip string) (*Setting, error) {
	if err := s.requireAdmin(accessContext); err != nil {
		return nil, err
	}

	setting := &Setting{Key: key, Value: req.Value, UpdatedBy: accessContext.UserID}
	if err := s.Repo.UpsertSetting(setting); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "SETTING_UPDATED",
		map[string]interface{}{"key": key}, ip, "success")
	return s.Repo.GetSetting(key)
}

func (s *Service) GetSetting(key string) (*Setting, error) {
	setting, err := s.Repo.GetSetting(key)
	if err != nil {
		return nil, ErrNotFound
	}
	return setting, nil
}

func (s *Service) ListSettings(accessContext middleware.AccessContext) ([]Setting, error) {
	if !accessContext.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return s.Repo.ListSettings()
}
