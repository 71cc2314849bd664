package repository

import (
	"context"
	"fmt"
	"time"

	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	ListByStatus(ctx context.Context, statuses ...model.ProjectStatus) ([]model.Project, error)
	FindByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, tx *gorm.DB, project *model.Project) error
	Update(ctx context.Context, tx *gorm.DB, project *model.Project) error
	SetStatus(ctx context.Context, tx *gorm.DB, id string, status model.ProjectStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	ReplaceAll(ctx context.Context, tx *gorm.DB, projects []model.Project) error
	Count(ctx context.Context) (int64, error)
}

type projectRepoImpl struct {
	table[model.Project]
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepoImpl{
		table: table[model.Project]{db: db, resource: "project"},
	}
}

// Newest first, as the admin dashboard lists them. Catalog sorting happens
// above this layer.
const projectOrder = "created_at DESC, id"

func (r *projectRepoImpl) List(ctx context.Context) ([]model.Project, error) {
	return r.list(ctx, projectOrder)
}

func (r *projectRepoImpl) ListByStatus(ctx context.Context, statuses ...model.ProjectStatus) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order(projectOrder).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects by status: %w", err)
	}
	return projects, nil
}

func (r *projectRepoImpl) FindByID(ctx context.Context, id string) (*model.Project, error) {
	return r.find(ctx, r.db, id)
}

func (r *projectRepoImpl) Create(ctx context.Context, tx *gorm.DB, project *model.Project) error {
	return r.create(ctx, tx, project)
}

func (r *projectRepoImpl) Update(ctx context.Context, tx *gorm.DB, project *model.Project) error {
	return r.update(ctx, tx, project.ID, project)
}

func (r *projectRepoImpl) SetStatus(ctx context.Context, tx *gorm.DB, id string, status model.ProjectStatus) error {
	return r.updateColumns(ctx, tx, id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

func (r *projectRepoImpl) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return r.delete(ctx, tx, id)
}

func (r *projectRepoImpl) ReplaceAll(ctx context.Context, tx *gorm.DB, projects []model.Project) error {
	return r.replaceAll(ctx, tx, projects)
}

func (r *projectRepoImpl) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}
