package admin

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🏆 Awards

func (r *Repository) CreateAward(a *Award) error {
	return r.DB.Create(a).Error
}

func (r *Repository) GetAwardByID(id uint) (*Award, error) {
	var a Award
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListAwards() ([]Award, error) {
	var rows []Award
	err := r.DB.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) UpdateAward(a *Award) error {
	return r.DB.Save(a).Error
}

func (r *Repository) DeleteAward(id uint) error {
	return r.DB.Delete(&Award{}, id).Error
}

func (r *Repository) CreateGrant(g *AwardGrant) error {
	return r.DB.Create(g).Error
}

func (r *Repository) ListGrantsByUser(userID uint) ([]AwardGrant, error) {
	var rows []AwardGrant
	err := r.DB.Preload("Award").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ===========================
// 🎖️ Titles

func (r *Repository) CreateTitle(t *Title) error {
	return r.DB.Create(t).Error
}

func (r *Repository) GetTitleByID(id uint) (*Title, error) {
	var t Title
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListTitles() ([]Title, error) {
	var rows []Title
	err := r.DB.Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) DeleteTitle(id uint) error {
	return r.DB.Delete(&Title{}, id).Error
}

// ===========================
// ❓ FAQ

func (r *Repository) CreateFAQ(f *FAQEntry) error {
	return r.DB.Create(f).Error
}

func (r *Repository) GetFAQByID(id uint) (*FAQEntry, error) {
	var f FAQEntry
	if err := r.DB.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFAQ returns entries in display order; activeOnly hides drafts.
func (r *Repository) ListFAQ(activeOnly bool) ([]FAQEntry, error) {
	var rows []FAQEntry
	q := r.DB.Order("sort_order ASC, id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *Repository) UpdateFAQ(f *FAQEntry) error {
	return r.DB.Save(f).Error
}

func (r *Repository) DeleteFAQ(id uint) error {
	return r.DB.Delete(&FAQEntry{}, id).Error
}

// ===========================
// ⚙️ Settings

func (r *Repository) UpsertSetting(s *Setting) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(s).Error
}

func (r *Repository) GetSetting(key string) (*Setting, error) {
	var s Setting
	if err := r.DB.Where("key = ?", key).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) ListSettings() ([]Setting, error) {
	var rows []Setting
	err := r.DB.Order("key ASC").Find(&rows).Error
	return rows, err
}
