package repository

import (
	"context"
	"fmt"

	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status model.UserStatus) error
	RecordInvestment(ctx context.Context, tx *gorm.DB, id string, amount int64) error
	ReplaceAll(ctx context.Context, tx *gorm.DB, users []model.User) error
}

type userRepoImpl struct {
	table[model.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		table: table[model.User]{db: db, resource: "user"},
	}
}

func (r *userRepoImpl) List(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, "created_at, id")
}

func (r *userRepoImpl) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.find(ctx, r.db, id)
}

func (r *userRepoImpl) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	return r.create(ctx, tx, user)
}

func (r *userRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status model.UserStatus) error {
	return r.updateColumns(ctx, tx, id, map[string]interface{}{"status": status})
}

// RecordInvestment bumps the user's running totals. Unknown users are
// ignored; anonymous checkouts have no row.
func (r *userRepoImpl) RecordInvestment(ctx context.Context, tx *gorm.DB, id string, amount int64) error {
	err := tx.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"investment_count": gorm.Expr("investment_count + ?", 1),
			"total_invested":   gorm.Expr("total_invested + ?", amount),
		}).Error
	if err != nil {
		return fmt.Errorf("record user investment: %w", err)
	}
	return nil
}

func (r *userRepoImpl) ReplaceAll(ctx context.Context, tx *gorm.DB, users []model.User) error {
	return r.replaceAll(ctx, tx, users)
}
