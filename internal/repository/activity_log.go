package repository

import (
	"context"
	"fmt"

	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *model.ActivityLog) error
	List(ctx context.Context, limit int) ([]model.ActivityLog, error)
	Count(ctx context.Context) (int64, error)
}

type activityLogRepoImpl struct {
	table[model.ActivityLog]
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepoImpl{
		table: table[model.ActivityLog]{db: db, resource: "activity log"},
	}
}

func (r *activityLogRepoImpl) Create(ctx context.Context, tx *gorm.DB, entry *model.ActivityLog) error {
	return r.create(ctx, tx, entry)
}

// List returns the newest entries first. limit <= 0 means no limit.
func (r *activityLogRepoImpl) List(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	q := r.db.WithContext(ctx).Order("timestamp DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	return entries, nil
}

func (r *activityLogRepoImpl) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}
