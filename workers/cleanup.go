package workers

import (
	"context"
	"log"
	"time"

	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/broadcast"
	"gorm.io/gorm"
)

const (
	cleanupInterval    = 6 * time.Hour
	auditRetentionDays = 180
	inboxRetentionDays = 90
)

// StartCleanup runs the periodic housekeeping loop: audit log retention
// and read inbox messages past their keep window. Verification codes
// expire on their own through redis TTLs.
func StartCleanup(ctx context.Context, db *gorm.DB, auditSvc auditlog.Service) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	log.Println("🔄 Cleanup worker started")
	runCleanup(ctx, db, auditSvc)

	for {
		select {
		case <-ctx.Done():
			log.Println("🔄 Cleanup worker stopped")
			return
		case <-ticker.C:
			runCleanup(ctx, db, auditSvc)
		}
	}
}

func runCleanup(ctx context.Context, db *gorm.DB, auditSvc auditlog.Service) {
	if removed, err := auditSvc.PruneOldLogs(ctx, auditRetentionDays); err != nil {
		log.Printf("❌ Audit log pruning failed: %v", err)
	} else if removed > 0 {
		log.Printf("✅ Pruned %d audit log entries", removed)
	}

	cutoff := time.Now().AddDate(0, 0, -inboxRetentionDays)
	result := db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&broadcast.InboxMessage{})
	if result.Error != nil {
		log.Printf("❌ Inbox cleanup failed: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("✅ Removed %d read inbox messages", result.RowsAffected)
	}
}
