package assignment

import (
	"errors"

	"gorm.io/gorm"
)

var ErrAssignmentsExist = errors.New("assignments already exist for this event")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create the full assignment batch atomically.
// The existence check runs inside the same transaction as the inserts, so
// two concurrent pairing triggers cannot both commit a set.
func (r *Repository) CreateBatch(eventID uint, rows []Assignment) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Assignment{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAssignmentsExist
		}

		return tx.Create(&rows).Error
	})
}

// ===========================
// 🔍 Lookups
func (r *Repository) GetByID(id uint) (*Assignment, error) {
	var a Assignment
	err := r.DB.First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetBySanta(eventID, santaUserID uint) (*Assignment, error) {
	var a Assignment
	err := r.DB.Where("event_id = ? AND santa_user_id = ?", eventID, santaUserID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetByRecipient(eventID, recipientUserID uint) (*Assignment, error) {
	var a Assignment
	err := r.DB.Where("event_id = ? AND recipient_user_id = ?", eventID, recipientUserID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListByEvent(eventID uint) ([]Assignment, error) {
	var rows []Assignment
	err := r.DB.Where("event_id = ?", eventID).
		Order("santa_user_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Count(eventID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&Assignment{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// ===========================
// 🛠 Update a single assignment row
func (r *Repository) Update(a *Assignment) error {
	return r.DB.Save(a).Error
}

// ===========================
// 📜 Pairing history across all other events, for repeat-pair avoidance
func (r *Repository) PriorPairings(excludeEventID uint) (ExclusionSet, error) {
	var rows []Assignment
	err := r.DB.Select("santa_user_id", "recipient_user_id").
		Where("event_id <> ?", excludeEventID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	exclude := make(ExclusionSet)
	for _, row := range rows {
		if exclude[row.SantaUserID] == nil {
			exclude[row.SantaUserID] = make(map[uint]bool)
		}
		exclude[row.SantaUserID][row.RecipientUserID] = true
	}
	return exclude, nil
}

// ===========================
// 🧑 Resolve display names for a set of user IDs
func (r *Repository) UserNames(userIDs []uint) (map[uint]string, error) {
	type row struct {
		ID       uint
		Username string
	}
	var rows []row
	err := r.DB.Table("users").
		Select("id", "username").
		Where("id IN ?", userIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(rows))
	for _, u := range rows {
		names[u.ID] = u.Username
	}
	return names, nil
}

// UserEmails maps user ids to verified mail addresses; game accounts
// without one are simply absent from the result.
func (r *Repository) UserEmails(userIDs []uint) (map[uint]string, error) {
	type row struct {
		ID    uint
		Email string
	}
	var rows []row
	err := r.DB.Table("users").
		Select("id", "email").
		Where("id IN ? AND email <> ''", userIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	emails := make(map[uint]string, len(rows))
	for _, u := range rows {
		emails[u.ID] = u.Email
	}
	return emails, nil
}
