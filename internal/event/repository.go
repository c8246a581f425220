package event

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
// 🎯 Create Event with stages in one transaction
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with stages and registration count
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.Preload("Stages", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC")
	}).First(&e, id).Error
	if err != nil {
		return nil, err
	}

	var count int64
	err = r.DB.Table("event_registrations").
		Where("event_id = ?", id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	e.RegistrationCount = int(count)
	return &e, nil
}

// ===========================
// 📄 List Events With Pagination & Search
func (r *Repository) ListEvents(limit, offset int, search string) ([]Event, error) {
	var events []Event

	query := r.DB.Preload("Stages", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC")
	})

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", ilike, ilike)
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		var count int64
		r.DB.Table("event_registrations").
			Where("event_id = ?", events[i].ID).
			Count(&count)
		events[i].RegistrationCount = int(count)
	}

	return events, nil
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// 🛠 Upsert Stage (unique per event + stage type)
func (r *Repository) SaveStage(s *Stage) error {
	var existing Stage
	err := r.DB.Where("event_id = ? AND stage_type = ?", s.EventID, s.StageType).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(s).Error
	}
	if err != nil {
		return err
	}

	existing.StageOrder = s.StageOrder
	existing.StartDatetime = s.StartDatetime
	existing.EndDatetime = s.EndDatetime
	existing.IsRequired = s.IsRequired
	existing.IsOptional = s.IsOptional
	if err := r.DB.Save(&existing).Error; err != nil {
		return err
	}
	*s = existing
	return nil
}

// ===========================
// ❌ Soft Delete Event
func (r *Repository) DeleteEvent(id uint) error {
	return r.DB.Delete(&Event{}, id).Error
}

// ===========================
// 🔢 Count assignments for an event (pairing guard)
func (r *Repository) CountAssignments(eventID uint) (int64, error) {
	var count int64
	err := r.DB.Table("event_assignments").
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
