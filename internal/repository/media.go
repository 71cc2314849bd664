package repository

import (
	"context"

	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type MediaRepository interface {
	List(ctx context.Context) ([]model.MediaAsset, error)
	FindByID(ctx context.Context, id string) (*model.MediaAsset, error)
	Create(ctx context.Context, tx *gorm.DB, asset *model.MediaAsset) error
	Update(ctx context.Context, tx *gorm.DB, asset *model.MediaAsset) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	ReplaceAll(ctx context.Context, tx *gorm.DB, assets []model.MediaAsset) error
}

type mediaRepoImpl struct {
	table[model.MediaAsset]
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepoImpl{
		table: table[model.MediaAsset]{db: db, resource: "media"},
	}
}

func (r *mediaRepoImpl) List(ctx context.Context) ([]model.MediaAsset, error) {
	return r.list(ctx, "created_at, id")
}

func (r *mediaRepoImpl) FindByID(ctx context.Context, id string) (*model.MediaAsset, error) {
	return r.find(ctx, r.db, id)
}

func (r *mediaRepoImpl) Create(ctx context.Context, tx *gorm.DB, asset *model.MediaAsset) error {
	return r.create(ctx, tx, asset)
}

func (r *mediaRepoImpl) Update(ctx context.Context, tx *gorm.DB, asset *model.MediaAsset) error {
	return r.update(ctx, tx, asset.ID, asset)
}

func (r *mediaRepoImpl) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return r.delete(ctx, tx, id)
}

func (r *mediaRepoImpl) ReplaceAll(ctx context.Context, tx *gorm.DB, assets []model.MediaAsset) error {
	return r.replaceAll(ctx, tx, assets)
}
