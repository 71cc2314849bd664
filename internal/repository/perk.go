package repository

import (
	"context"
	"fmt"

	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type PerkRepository interface {
	List(ctx context.Context) ([]model.Perk, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Perk, error)
	FindByID(ctx context.Context, id string) (*model.Perk, error)
	Create(ctx context.Context, tx *gorm.DB, perk *model.Perk) error
	Update(ctx context.Context, tx *gorm.DB, perk *model.Perk) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	ReplaceAll(ctx context.Context, tx *gorm.DB, perks []model.Perk) error
}

type perkRepoImpl struct {
	table[model.Perk]
}

func NewPerkRepository(db *gorm.DB) PerkRepository {
	return &perkRepoImpl{
		table: table[model.Perk]{db: db, resource: "perk"},
	}
}

func (r *perkRepoImpl) List(ctx context.Context) ([]model.Perk, error) {
	return r.list(ctx, "created_at, id")
}

func (r *perkRepoImpl) ListByProject(ctx context.Context, projectID string) ([]model.Perk, error) {
	var perks []model.Perk
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("min_amount, id").
		Find(&perks).Error
	if err != nil {
		return nil, fmt.Errorf("list perks for project: %w", err)
	}
	return perks, nil
}

func (r *perkRepoImpl) FindByID(ctx context.Context, id string) (*model.Perk, error) {
	return r.find(ctx, r.db, id)
}

func (r *perkRepoImpl) Create(ctx context.Context, tx *gorm.DB, perk *model.Perk) error {
	return r.create(ctx, tx, perk)
}

func (r *perkRepoImpl) Update(ctx context.Context, tx *gorm.DB, perk *model.Perk) error {
	return r.update(ctx, tx, perk.ID, perk)
}

func (r *perkRepoImpl) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return r.delete(ctx, tx, id)
}

func (r *perkRepoImpl) ReplaceAll(ctx context.Context, tx *gorm.DB, perks []model.Perk) error {
	return r.replaceAll(ctx, tx, perks)
}
