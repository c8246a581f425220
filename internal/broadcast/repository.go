package broadcast

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
// 🎯 Queue a broadcast
func (r *Repository) Create(b *Broadcast) error {
	return r.DB.Create(b).Error
}

// 🔍 Broadcast by id
func (r *Repository) GetByID(id uint) (*Broadcast, error) {
	var b Broadcast
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// 📄 Broadcasts, newest first
func (r *Repository) List(limit, offset int) ([]Broadcast, error) {
	var rows []Broadcast
	err := r.DB.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, err
}

// 🎯 Move a broadcast through its states
func (r *Repository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&Broadcast{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ===========================
// 🎯 Record one delivery attempt
func (r *Repository) CreateDelivery(d *BroadcastDelivery) error {
	return r.DB.Create(d).Error
}

// 📄 Delivery log for a broadcast
func (r *Repository) ListDeliveries(broadcastID uint) ([]BroadcastDelivery, error) {
	var rows []BroadcastDelivery
	err := r.DB.Where("broadcast_id = ?", broadcastID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ===========================
// 🎯 Drop inbox copies for a set of users
func (r *Repository) CreateInboxBatch(msgs []InboxMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(msgs, 200).Error
}

// 📄 A user's inbox, newest first
func (r *Repository) ListInbox(userID uint, unreadOnly bool, limit, offset int) ([]InboxMessage, error) {
	var rows []InboxMessage
	q := r.DB.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, err
}

// 🔢 Unread count for the bell badge
func (r *Repository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&InboxMessage{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// 🎯 Mark one inbox message read
func (r *Repository) MarkRead(userID, messageID uint) error {
	result := r.DB.Model(&InboxMessage{}).
		Where("id = ? AND user_id = ?", messageID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// 🎯 Mark the whole inbox read
func (r *Repository) MarkAllRead(userID uint) error {
	return r.DB.Model(&InboxMessage{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
