package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the listing indexes AutoMigrate does not derive from struct tags.
// Uses the gorm migrator so the check works on every supported dialect.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Admin list is ordered by creation time
		{"invitations", "idx_invitations_created_at", "created_at"},
		{"invitations", "idx_invitations_confirmed", "confirmed"},

		// Media listing per section, newest first
		{"gallery_media", "idx_gallery_media_section_created", "section_id, created_at"},

		// Public listing filters on visibility
		{"gallery_sections", "idx_gallery_sections_is_active", "is_active"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name), zap.String("table", idx.table), zap.String("columns", idx.columns))
	}

	return nil
}
