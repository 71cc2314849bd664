package repository

import (
	"context"
	"errors"
	"fmt"

	"circles-backend/internal/errorx"
	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type ReceiptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, receipt *model.Receipt) error
	LatestByUser(ctx context.Context, userID string) (*model.Receipt, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Receipt, error)
}

type receiptRepoImpl struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepoImpl{
		db: db,
	}
}

func (r *receiptRepoImpl) Create(ctx context.Context, tx *gorm.DB, receipt *model.Receipt) error {
	if err := tx.WithContext(ctx).Create(receipt).Error; err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	return nil
}

func (r *receiptRepoImpl) LatestByUser(ctx context.Context, userID string) (*model.Receipt, error) {
	var receipt model.Receipt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.NewNotFound("last investment", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("find latest receipt: %w", err)
	}
	return &receipt, nil
}

func (r *receiptRepoImpl) ListByUser(ctx context.Context, userID string, limit int) ([]model.Receipt, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var receipts []model.Receipt
	if err := q.Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return receipts, nil
}
