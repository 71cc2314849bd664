package repository

import (
	"context"
	"fmt"

	"circles-backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BackupRepository interface {
	Create(ctx context.Context, tx *gorm.DB, backup *model.Backup) error
	Complete(ctx context.Context, tx *gorm.DB, id string, payload datatypes.JSON) error
	Fail(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Backup, error)
	List(ctx context.Context) ([]model.Backup, error)
}

type backupRepoImpl struct {
	table[model.Backup]
}

func NewBackupRepository(db *gorm.DB) BackupRepository {
	return &backupRepoImpl{
		table: table[model.Backup]{db: db, resource: "backup"},
	}
}

func (r *backupRepoImpl) Create(ctx context.Context, tx *gorm.DB, backup *model.Backup) error {
	return r.create(ctx, tx, backup)
}

func (r *backupRepoImpl) Complete(ctx context.Context, tx *gorm.DB, id string, payload datatypes.JSON) error {
	return r.updateColumns(ctx, tx, id, map[string]interface{}{
		"status":  model.BackupCompleted,
		"size":    int64(len(payload)),
		"payload": payload,
	})
}

func (r *backupRepoImpl) Fail(ctx context.Context, id string) error {
	return r.updateColumns(ctx, r.db, id, map[string]interface{}{"status": model.BackupFailed})
}

// FindByID loads the backup including its payload.
func (r *backupRepoImpl) FindByID(ctx context.Context, id string) (*model.Backup, error) {
	return r.find(ctx, r.db, id)
}

// List omits payloads.
func (r *backupRepoImpl) List(ctx context.Context) ([]model.Backup, error) {
	var backups []model.Backup
	err := r.db.WithContext(ctx).
		Omit("payload").
		Order("created_at DESC").
		Find(&backups).Error
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return backups, nil
}
