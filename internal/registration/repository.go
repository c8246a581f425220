package registration

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Registration with its details snapshot in one transaction
func (r *Repository) CreateRegistration(reg *Registration, details *RegistrationDetails) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		details.EventID = reg.EventID
		details.UserID = reg.UserID
		return tx.Create(details).Error
	})
}

// ===========================
// 🔍 Get Registration for (event, user)
func (r *Repository) GetRegistration(eventID, userID uint) (*Registration, error) {
	var reg Registration
	err := r.DB.Preload("Details").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ===========================
// 📄 List Registrations for an event
func (r *Repository) ListByEvent(eventID uint) ([]Registration, error) {
	var regs []Registration
	err := r.DB.Preload("Details").
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Find(&regs).Error
	return regs, err
}

// ===========================
// ❌ Withdraw Registration
func (r *Repository) DeleteRegistration(eventID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&RegistrationDetails{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&Approval{}).Error; err != nil {
			return err
		}
		return tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&Registration{}).Error
	})
}

// ===========================
// 🛠 Upsert Approval for (event, user)
func (r *Repository) SaveApproval(a *Approval) error {
	var existing Approval
	err := r.DB.Where("event_id = ? AND user_id = ?", a.EventID, a.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(a).Error
	}
	if err != nil {
		return err
	}

	existing.Approved = a.Approved
	existing.ApprovedAt = a.ApprovedAt
	existing.ApprovedBy = a.ApprovedBy
	existing.Notes = a.Notes
	if err := r.DB.Save(&existing).Error; err != nil {
		return err
	}
	*a = existing
	return nil
}

// ===========================
// 📄 List approved participant user IDs for an event.
// When the event has no approval stage every registrant counts.
func (r *Repository) ListParticipantIDs(eventID uint, requireApproval bool) ([]uint, error) {
	var ids []uint

	if !requireApproval {
		err := r.DB.Model(&Registration{}).
			Where("event_id = ?", eventID).
			Order("user_id ASC").
			Pluck("user_id", &ids).Error
		return ids, err
	}

	err := r.DB.Table("event_registrations er").
		Joins("JOIN event_participant_approvals ap ON ap.event_id = er.event_id AND ap.user_id = er.user_id").
		Where("er.event_id = ? AND ap.approved = TRUE", eventID).
		Order("er.user_id ASC").
		Pluck("er.user_id", &ids).Error
	return ids, err
}
