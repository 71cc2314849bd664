package repository

import (
	"context"
	"errors"
	"fmt"

	"circles-backend/internal/errorx"

	"gorm.io/gorm"
)

// table holds the CRUD shape shared by the admin-managed collections. Writes
// take the caller's transaction so activity logs can commit with them.
type table[T any] struct {
	db       *gorm.DB
	resource string
}

func (t table[T]) list(ctx context.Context, order string) ([]T, error) {
	var rows []T
	if err := t.db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", t.resource, err)
	}
	return rows, nil
}

func (t table[T]) find(ctx context.Context, tx *gorm.DB, id string) (*T, error) {
	var row T
	err := tx.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.NewNotFound(t.resource, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", t.resource, err)
	}
	return &row, nil
}

func (t table[T]) create(ctx context.Context, tx *gorm.DB, row *T) error {
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create %s: %w", t.resource, err)
	}
	return nil
}

// update overwrites every column of the row with the given id except
// created_at.
func (t table[T]) update(ctx context.Context, tx *gorm.DB, id string, row *T) error {
	if _, err := t.find(ctx, tx, id); err != nil {
		return err
	}
	err := tx.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(row).Error
	if err != nil {
		return fmt.Errorf("update %s: %w", t.resource, err)
	}
	return nil
}

func (t table[T]) updateColumns(ctx context.Context, tx *gorm.DB, id string, values map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return fmt.Errorf("update %s: %w", t.resource, result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := t.find(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

func (t table[T]) delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := tx.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("delete %s: %w", t.resource, result.Error)
	}
	if result.RowsAffected == 0 {
		return errorx.NewNotFound(t.resource, id)
	}
	return nil
}

// replaceAll swaps the whole collection for rows.
func (t table[T]) replaceAll(ctx context.Context, tx *gorm.DB, rows []T) error {
	if err := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("clear %s: %w", t.resource, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("restore %s: %w", t.resource, err)
	}
	return nil
}

func (t table[T]) count(ctx context.Context) (int64, error) {
	var n int64
	if err := t.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", t.resource, err)
	}
	return n, nil
}
