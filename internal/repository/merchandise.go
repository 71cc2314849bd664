package repository

import (
	"context"

	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type MerchandiseRepository interface {
	List(ctx context.Context) ([]model.MerchandiseItem, error)
	FindByID(ctx context.Context, id string) (*model.MerchandiseItem, error)
	Create(ctx context.Context, tx *gorm.DB, item *model.MerchandiseItem) error
	Update(ctx context.Context, tx *gorm.DB, item *model.MerchandiseItem) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	ReplaceAll(ctx context.Context, tx *gorm.DB, items []model.MerchandiseItem) error
}

type merchandiseRepoImpl struct {
	table[model.MerchandiseItem]
}

func NewMerchandiseRepository(db *gorm.DB) MerchandiseRepository {
	return &merchandiseRepoImpl{
		table: table[model.MerchandiseItem]{db: db, resource: "merchandise"},
	}
}

func (r *merchandiseRepoImpl) List(ctx context.Context) ([]model.MerchandiseItem, error) {
	return r.list(ctx, "created_at, id")
}

func (r *merchandiseRepoImpl) FindByID(ctx context.Context, id string) (*model.MerchandiseItem, error) {
	return r.find(ctx, r.db, id)
}

func (r *merchandiseRepoImpl) Create(ctx context.Context, tx *gorm.DB, item *model.MerchandiseItem) error {
	return r.create(ctx, tx, item)
}

func (r *merchandiseRepoImpl) Update(ctx context.Context, tx *gorm.DB, item *model.MerchandiseItem) error {
	return r.update(ctx, tx, item.ID, item)
}

func (r *merchandiseRepoImpl) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return r.delete(ctx, tx, id)
}

func (r *merchandiseRepoImpl) ReplaceAll(ctx context.Context, tx *gorm.DB, items []model.MerchandiseItem) error {
	return r.replaceAll(ctx, tx, items)
}
