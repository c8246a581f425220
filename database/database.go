package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gwsanta/secret-santa-backend/config"
)

// Connect opens the Postgres connection using gorm
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ failed to connect to Postgres: %v", err)
	}

	log.Println("✅ Connected to Postgres")
	return db
}

// columnMigration is one additive schema change applied after AutoMigrate.
// The list is ordered; each entry is checked against information_schema and
// applied only if the column is still missing, so re-running is harmless.
type columnMigration struct {
	Table  string
	Column string
	DDL    string
}

var columnMigrations = []columnMigration{
	{
		Table:  "events",
		Column: "clock_offset_hours",
		DDL:    `ALTER TABLE events ADD COLUMN clock_offset_hours INTEGER DEFAULT 0 NOT NULL`,
	},
	{
		Table:  "events",
		Column: "award_id",
		DDL:    `ALTER TABLE events ADD COLUMN award_id BIGINT`,
	},
	{
		Table:  "event_assignments",
		Column: "assignment_locked",
		DDL:    `ALTER TABLE event_assignments ADD COLUMN assignment_locked BOOLEAN DEFAULT false NOT NULL`,
	},
	{
		Table:  "event_assignments",
		Column: "recipient_receipt_image",
		DDL:    `ALTER TABLE event_assignments ADD COLUMN recipient_receipt_image VARCHAR(512)`,
	},
	{
		Table:  "letter_messages",
		Column: "attachment_path",
		DDL:    `ALTER TABLE letter_messages ADD COLUMN attachment_path VARCHAR(512)`,
	},
	{
		Table:  "telegram_links",
		Column: "notifications_enabled",
		DDL:    `ALTER TABLE telegram_links ADD COLUMN notifications_enabled BOOLEAN DEFAULT true NOT NULL`,
	},
}

// RunColumnMigrations applies the additive column list in order
func RunColumnMigrations(db *gorm.DB) error {
	for _, m := range columnMigrations {
		exists, err := columnExists(db, m.Table, m.Column)
		if err != nil {
			return fmt.Errorf("failed to check for %s.%s: %w", m.Table, m.Column, err)
		}
		if exists {
			continue
		}

		log.Printf("🔄 Adding column %s.%s ...", m.Table, m.Column)
		if err := db.Exec(m.DDL).Error; err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", m.Table, m.Column, err)
		}
		log.Printf("✅ Column %s.%s added", m.Table, m.Column)
	}
	return nil
}

func columnExists(db *gorm.DB, table, column string) (bool, error) {
	var count int64
	err := db.Raw(`
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE table_name = ?
		AND column_name = ?
	`, table, column).Scan(&count).Error
	return count > 0, err
}
