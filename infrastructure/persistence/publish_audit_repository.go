package persistence

import (
	"context"

	"linkedin-autoposter/domain/model"

	"gorm.io/gorm"
)

// PublishAuditRepository is the append-only attempt log.
type PublishAuditRepository struct{ db *gorm.DB }

func NewPublishAuditRepository(db *gorm.DB) *PublishAuditRepository {
	return &PublishAuditRepository{db: db}
}

func EnsurePublishAuditSchema(db *gorm.DB) error {
	return db.AutoMigrate(&model.PublishAudit{})
}

func (r *PublishAuditRepository) Append(ctx context.Context, rows []model.PublishAudit) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *PublishAuditRepository) ListByItem(ctx context.Context, itemID string, limit int) ([]model.PublishAudit, error) {
	var rows []model.PublishAudit
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
