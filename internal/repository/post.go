package repository

import (
	"context"
	"fmt"

	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type PostFilter struct {
	Category     model.PostCategory
	TrendingOnly bool
	Limit        int
}

type PostRepository interface {
	List(ctx context.Context, filter PostFilter) ([]model.CommunityPost, error)
	FindByID(ctx context.Context, id string) (*model.CommunityPost, error)
	Create(ctx context.Context, tx *gorm.DB, post *model.CommunityPost) error
	IncrementLikes(ctx context.Context, tx *gorm.DB, id string) error
	ReplaceAll(ctx context.Context, tx *gorm.DB, posts []model.CommunityPost) error
}

type postRepoImpl struct {
	table[model.CommunityPost]
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepoImpl{
		table: table[model.CommunityPost]{db: db, resource: "post"},
	}
}

func (r *postRepoImpl) List(ctx context.Context, filter PostFilter) ([]model.CommunityPost, error) {
	q := r.db.WithContext(ctx).Order("timestamp DESC, id")
	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.TrendingOnly {
		q = q.Where("trending = ?", true)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var posts []model.CommunityPost
	if err := q.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepoImpl) FindByID(ctx context.Context, id string) (*model.CommunityPost, error) {
	return r.find(ctx, r.db, id)
}

func (r *postRepoImpl) Create(ctx context.Context, tx *gorm.DB, post *model.CommunityPost) error {
	return r.create(ctx, tx, post)
}

func (r *postRepoImpl) IncrementLikes(ctx context.Context, tx *gorm.DB, id string) error {
	return r.updateColumns(ctx, tx, id, map[string]interface{}{
		"likes": gorm.Expr("likes + ?", 1),
	})
}

func (r *postRepoImpl) ReplaceAll(ctx context.Context, tx *gorm.DB, posts []model.CommunityPost) error {
	return r.replaceAll(ctx, tx, posts)
}
