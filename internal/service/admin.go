package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"circles-backend/internal/errorx"
	"circles-backend/internal/logger"
	"circles-backend/internal/model"
	"circles-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminService interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, project *model.Project) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, project *model.Project) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ArchiveProject(ctx context.Context, id string) error
	SetProjectStatus(ctx context.Context, id string, status model.ProjectStatus) error

	ListMerchandise(ctx context.Context) ([]model.MerchandiseItem, error)
	CreateMerchandise(ctx context.Context, item *model.MerchandiseItem) (*model.MerchandiseItem, error)
	UpdateMerchandise(ctx context.Context, id string, item *model.MerchandiseItem) (*model.MerchandiseItem, error)
	DeleteMerchandise(ctx context.Context, id string) error

	ListPerks(ctx context.Context) ([]model.Perk, error)
	CreatePerk(ctx context.Context, perk *model.Perk) (*model.Perk, error)
	UpdatePerk(ctx context.Context, id string, perk *model.Perk) (*model.Perk, error)
	DeletePerk(ctx context.Context, id string) error

	ListMedia(ctx context.Context) ([]model.MediaAsset, error)
	CreateMedia(ctx context.Context, asset *model.MediaAsset) (*model.MediaAsset, error)
	UpdateMedia(ctx context.Context, id string, asset *model.MediaAsset) (*model.MediaAsset, error)
	DeleteMedia(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserStatus(ctx context.Context, id string, status model.UserStatus) error

	ActivityLogs(ctx context.Context, limit int) ([]model.ActivityLog, error)

	CreateBackup(ctx context.Context) (*model.Backup, error)
	RestoreBackup(ctx context.Context, id string) error
	ListBackups(ctx context.Context) ([]model.Backup, error)

	Seed(ctx context.Context, data *model.Snapshot) (bool, error)
}

type adminServiceImpl struct {
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	merchRepo   repository.MerchandiseRepository
	perkRepo    repository.PerkRepository
	mediaRepo   repository.MediaRepository
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	messageRepo repository.ChannelMessageRepository
	logRepo     repository.ActivityLogRepository
	backupRepo  repository.BackupRepository
	now         func() time.Time
}

type AdminRepositories struct {
	Projects    repository.ProjectRepository
	Merchandise repository.MerchandiseRepository
	Perks       repository.PerkRepository
	Media       repository.MediaRepository
	Users       repository.UserRepository
	Posts       repository.PostRepository
	Messages    repository.ChannelMessageRepository
	Logs        repository.ActivityLogRepository
	Backups     repository.BackupRepository
}

func NewAdminService(db *gorm.DB, repos AdminRepositories) AdminService {
	return &adminServiceImpl{
		db:          db,
		projectRepo: repos.Projects,
		merchRepo:   repos.Merchandise,
		perkRepo:    repos.Perks,
		mediaRepo:   repos.Media,
		userRepo:    repos.Users,
		postRepo:    repos.Posts,
		messageRepo: repos.Messages,
		logRepo:     repos.Logs,
		backupRepo:  repos.Backups,
		now:         time.Now,
	}
}

type activity struct {
	action       string
	resourceType model.ResourceType
	resourceID   string
	details      string
}

// mutate runs fn and appends its activity log entry in one transaction, so a
// failed mutation leaves no log behind.
func (s *adminServiceImpl) mutate(ctx context.Context, fn func(tx *gorm.DB) (activity, error)) error {
	actor := ActorFrom(ctx)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := fn(tx)
		if err != nil {
			return err
		}
		return s.logRepo.Create(ctx, tx, &model.ActivityLog{
			ID:           uuid.NewString(),
			Action:       a.action,
			UserID:       actor.ID,
			UserName:     actor.Name,
			ResourceType: a.resourceType,
			ResourceID:   a.resourceID,
			Details:      a.details,
			Timestamp:    s.now(),
		})
	})
}

func titleOr(title, id string) string {
	if title != "" {
		return title
	}
	return id
}

// projects

func validateProject(p *model.Project) error {
	v := errorx.NewValidationError()
	if p.Title == "" {
		v.Add("title", "title is required")
	}
	if !p.Type.Valid() {
		v.Add("type", "type must be film, music or webseries")
	}
	if p.TargetAmount <= 0 {
		v.Add("targetAmount", "target amount must be positive")
	}
	if p.RaisedAmount < 0 {
		v.Add("raisedAmount", "raised amount cannot be negative")
	}
	if p.FundedPercentage < 0 {
		v.Add("fundedPercentage", "funded percentage cannot be negative")
	}
	if p.Status != "" && !p.Status.Valid() {
		v.Add("status", "unknown status %q", p.Status)
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		v.Add("rating", "rating must be between 0 and 5")
	}
	return v.OrNil()
}

func (s *adminServiceImpl) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *adminServiceImpl) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}
	now := s.now()
	p := *project
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = model.ProjectStatusActive
	}
	p.CreatedAt, p.UpdatedAt = now, now

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.projectRepo.Create(ctx, tx, &p); err != nil {
			return activity{}, err
		}
		return activity{"Project Created", model.ResourceProject, p.ID, "Created new project: " + p.Title}, nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *adminServiceImpl) UpdateProject(ctx context.Context, id string, project *model.Project) (*model.Project, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}
	p := *project
	p.ID = id
	p.UpdatedAt = s.now()

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		// an omitted status keeps the stored lifecycle
		if p.Status == "" {
			stored, err := findInTx[model.Project](ctx, tx, "project", id)
			if err != nil {
				return activity{}, err
			}
			p.Status = stored.Status
		}
		if err := s.projectRepo.Update(ctx, tx, &p); err != nil {
			return activity{}, err
		}
		return activity{"Project Updated", model.ResourceProject, id, "Updated project: " + titleOr(p.Title, id)}, nil
	})
	if err != nil {
		return nil, err
	}
	return s.projectRepo.FindByID(ctx, id)
}

func (s *adminServiceImpl) DeleteProject(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		p, err := findInTx[model.Project](ctx, tx, "project", id)
		if err != nil {
			return activity{}, err
		}
		if err := s.projectRepo.Delete(ctx, tx, id); err != nil {
			return activity{}, err
		}
		return activity{"Project Deleted", model.ResourceProject, id, "Deleted project: " + p.Title}, nil
	})
}

func (s *adminServiceImpl) ArchiveProject(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		p, err := findInTx[model.Project](ctx, tx, "project", id)
		if err != nil {
			return activity{}, err
		}
		if err := s.projectRepo.SetStatus(ctx, tx, id, model.ProjectStatusArchived); err != nil {
			return activity{}, err
		}
		return activity{"Project Archived", model.ResourceProject, id, "Archived project: " + p.Title}, nil
	})
}

func (s *adminServiceImpl) SetProjectStatus(ctx context.Context, id string, status model.ProjectStatus) error {
	if !status.Valid() {
		v := errorx.NewValidationError()
		v.Add("status", "unknown status %q", status)
		return v
	}
	if status == model.ProjectStatusArchived {
		return s.ArchiveProject(ctx, id)
	}
	return s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		p, err := findInTx[model.Project](ctx, tx, "project", id)
		if err != nil {
			return activity{}, err
		}
		if err := s.projectRepo.SetStatus(ctx, tx, id, status); err != nil {
			return activity{}, err
		}
		return activity{"Project Updated", model.ResourceProject, id, fmt.Sprintf("Updated project status to %s: %s", status, p.Title)}, nil
	})
}

// merchandise

func validateMerchandise(item *model.MerchandiseItem) error {
	v := errorx.NewValidationError()
	if item.Title == "" {
		v.Add("title", "title is required")
	}
	if item.Price < 0 {
		v.Add("price", "price cannot be negative")
	}
	if item.StockLevel < 0 {
		v.Add("stockLevel", "stock level cannot be negative")
	}
	return v.OrNil()
}

func (s *adminServiceImpl) ListMerchandise(ctx context.Context) ([]model.MerchandiseItem, error) {
	return s.merchRepo.List(ctx)
}

func (s *adminServiceImpl) CreateMerchandise(ctx context.Context, item *model.MerchandiseItem) (*model.MerchandiseItem, error) {
	if err := validateMerchandise(item); err != nil {
		return nil, err
	}
	m := *item
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = s.now()
	if m.ReleaseDate.IsZero() {
		m.ReleaseDate = m.CreatedAt
	}

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.merchRepo.Create(ctx, tx, &m); err != nil {
			return activity{}, err
		}
		return activity{"Merchandise Added", model.ResourceMerchandise, m.ID, "Added new merchandise: " + m.Title}, nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *adminServiceImpl) UpdateMerchandise(ctx context.Context, id string, item *model.MerchandiseItem) (*model.MerchandiseItem, error) {
	if err := validateMerchandise(item); err != nil {
		return nil, err
	}
	m := *item
	m.ID = id

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.merchRepo.Update(ctx, tx, &m); err != nil {
			return activity{}, err
		}
		return activity{"Merchandise Updated", model.ResourceMerchandise, id, "Updated merchandise: " + titleOr(m.Title, id)}, nil
	})
	if err != nil {
		return nil, err
	}
	return s.merchRepo.FindByID(ctx, id)
}

func (s *adminServiceImpl) DeleteMerchandise(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		m, err := findInTx[model.MerchandiseItem](ctx, tx, "merchandise", id)
		if err != nil {
			return activity{}, err
		}
		if err := s.merchRepo.Delete(ctx, tx, id); err != nil {
			return activity{}, err
		}
		return activity{"Merchandise Deleted", model.ResourceMerchandise, id, "Deleted merchandise: " + m.Title}, nil
	})
}

// perks

func validatePerk(p *model.Perk) error {
	v := errorx.NewValidationError()
	if p.Title == "" {
		v.Add("title", "title is required")
	}
	if p.MinAmount < 0 {
		v.Add("minAmount", "minimum amount cannot be negative")
	}
	if p.MaxParticipants < 0 || p.CurrentParticipants < 0 {
		v.Add("participants", "participant counts cannot be negative")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		v.Add("endDate", "end date is before start date")
	}
	return v.OrNil()
}

func (s *adminServiceImpl) ListPerks(ctx context.Context) ([]model.Perk, error) {
	return s.perkRepo.List(ctx)
}

func (s *adminServiceImpl) CreatePerk(ctx context.Context, perk *model.Perk) (*model.Perk, error) {
	if err := validatePerk(perk); err != nil {
		return nil, err
	}
	p := *perk
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = s.now()

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.perkRepo.Create(ctx, tx, &p); err != nil {
			return activity{}, err
		}
		return activity{"Perk Added", model.ResourcePerk, p.ID, "Added new perk: " + p.Title}, nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *adminServiceImpl) UpdatePerk(ctx context.Context, id string, perk *model.Perk) (*model.Perk, error) {
	if err := validatePerk(perk); err != nil {
		return nil, err
	}
	p := *perk
	p.ID = id

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.perkRepo.Update(ctx, tx, &p); err != nil {
			return activity{}, err
		}
		return activity{"Perk Updated", model.ResourcePerk, id, "Updated perk: " + titleOr(p.Title, id)}, nil
	})
	if err != nil {
		return nil, err
	}
	return s.perkRepo.FindByID(ctx, id)
}

func (s *adminServiceImpl) DeletePerk(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		p, err := findInTx[model.Perk](ctx, tx, "perk", id)
		if err != nil {
			return activity{}, err
		}
		if err := s.perkRepo.Delete(ctx, tx, id); err != nil {
			return activity{}, err
		}
		return activity{"Perk Deleted", model.ResourcePerk, id, "Deleted perk: " + p.Title}, nil
	})
}

// media

func validateMedia(a *model.MediaAsset) error {
	v := errorx.NewValidationError()
	if a.Title == "" {
		v.Add("title", "title is required")
	}
	if a.URL == "" {
		v.Add("url", "url is required")
	}
	switch a.Type {
	case "image", "video", "audio", "document":
	default:
		v.Add("type", "type must be image, video, audio or document")
	}
	if a.FileSize < 0 {
		v.Add("fileSize", "file size cannot be negative")
	}
	return v.OrNil()
}

func (s *adminServiceImpl) ListMedia(ctx context.Context) ([]model.MediaAsset, error) {
	return s.mediaRepo.List(ctx)
}

func (s *adminServiceImpl) CreateMedia(ctx context.Context, asset *model.MediaAsset) (*model.MediaAsset, error) {
	if err := validateMedia(asset); err != nil {
		return nil, err
	}
	a := *asset
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = s.now()

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.mediaRepo.Create(ctx, tx, &a); err != nil {
			return activity{}, err
		}
		return activity{"Media Uploaded", model.ResourceMedia, a.ID, "Uploaded new media: " + a.Title}, nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *adminServiceImpl) UpdateMedia(ctx context.Context, id string, asset *model.MediaAsset) (*model.MediaAsset, error) {
	if err := validateMedia(asset); err != nil {
		return nil, err
	}
	a := *asset
	a.ID = id

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.mediaRepo.Update(ctx, tx, &a); err != nil {
			return activity{}, err
		}
		return activity{"Media Updated", model.ResourceMedia, id, "Updated media: " + titleOr(a.Title, id)}, nil
	})
	if err != nil {
		return nil, err
	}
	return s.mediaRepo.FindByID(ctx, id)
}

func (s *adminServiceImpl) DeleteMedia(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		a, err := findInTx[model.MediaAsset](ctx, tx, "media", id)
		if err != nil {
			return activity{}, err
		}
		if err := s.mediaRepo.Delete(ctx, tx, id); err != nil {
			return activity{}, err
		}
		return activity{"Media Deleted", model.ResourceMedia, id, "Deleted media: " + a.Title}, nil
	})
}

// users

func (s *adminServiceImpl) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminServiceImpl) UpdateUserStatus(ctx context.Context, id string, status model.UserStatus) error {
	if !status.Valid() {
		v := errorx.NewValidationError()
		v.Add("status", "unknown status %q", status)
		return v
	}
	return s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		u, err := findInTx[model.User](ctx, tx, "user", id)
		if err != nil {
			return activity{}, err
		}
		if err := s.userRepo.UpdateStatus(ctx, tx, id, status); err != nil {
			return activity{}, err
		}
		return activity{"User Status Updated", model.ResourceUser, id, fmt.Sprintf("Updated user status to %s: %s", status, u.Name)}, nil
	})
}

func (s *adminServiceImpl) ActivityLogs(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	return s.logRepo.List(ctx, limit)
}

// findInTx loads a row through tx; reads through the repositories would need
// a second connection.
func findInTx[T any](ctx context.Context, tx *gorm.DB, resource, id string) (*T, error) {
	var row T
	err := tx.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.NewNotFound(resource, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", resource, err)
	}
	return &row, nil
}

// backups

func (s *adminServiceImpl) snapshot(ctx context.Context) (*model.Snapshot, error) {
	var (
		snap model.Snapshot
		err  error
	)
	if snap.Projects, err = s.projectRepo.List(ctx); err != nil {
		return nil, err
	}
	if snap.Merchandise, err = s.merchRepo.List(ctx); err != nil {
		return nil, err
	}
	if snap.Perks, err = s.perkRepo.List(ctx); err != nil {
		return nil, err
	}
	if snap.Media, err = s.mediaRepo.List(ctx); err != nil {
		return nil, err
	}
	if snap.Users, err = s.userRepo.List(ctx); err != nil {
		return nil, err
	}
	if snap.Posts, err = s.postRepo.List(ctx, repository.PostFilter{}); err != nil {
		return nil, err
	}
	if snap.Messages, err = s.messageRepo.ListAll(ctx); err != nil {
		return nil, err
	}
	return &snap, nil
}

// CreateBackup stores a full snapshot of the managed collections.
func (s *adminServiceImpl) CreateBackup(ctx context.Context) (*model.Backup, error) {
	now := s.now()
	backup := &model.Backup{
		ID:        uuid.NewString(),
		Name:      "Full Backup - " + now.Format("2006-01-02"),
		Status:    model.BackupInProgress,
		CreatedAt: now,
	}

	err := s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.backupRepo.Create(ctx, tx, backup); err != nil {
			return activity{}, err
		}
		return activity{"Backup Started", model.ResourceSystem, backup.ID, "Started new backup: " + backup.Name}, nil
	})
	if err != nil {
		return nil, err
	}

	payload, err := s.encodeSnapshot(ctx)
	if err != nil {
		if ferr := s.backupRepo.Fail(ctx, backup.ID); ferr != nil {
			logger.Error("mark backup %s failed: %v", backup.ID, ferr)
		}
		return nil, fmt.Errorf("create backup: %w", err)
	}

	err = s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.backupRepo.Complete(ctx, tx, backup.ID, payload); err != nil {
			return activity{}, err
		}
		return activity{"Backup Completed", model.ResourceSystem, backup.ID, "Completed backup: " + backup.Name}, nil
	})
	if err != nil {
		return nil, err
	}

	backup.Status = model.BackupCompleted
	backup.Size = int64(len(payload))
	logger.Info("backup %s completed (%d bytes)", backup.ID, backup.Size)
	return backup, nil
}

func (s *adminServiceImpl) encodeSnapshot(ctx context.Context) ([]byte, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

// RestoreBackup replaces every managed collection with the backup's content.
// Activity logs and backups themselves are kept.
func (s *adminServiceImpl) RestoreBackup(ctx context.Context, id string) error {
	backup, err := s.backupRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if backup.Status != model.BackupCompleted {
		return errorx.New(errorx.Conflict, "backup %s is %s", id, backup.Status)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(backup.Payload, &snap); err != nil {
		return fmt.Errorf("decode backup %s: %w", id, err)
	}

	return s.mutate(ctx, func(tx *gorm.DB) (activity, error) {
		if err := s.replaceAll(ctx, tx, &snap); err != nil {
			return activity{}, err
		}
		return activity{"Backup Restore Completed", model.ResourceSystem, id, "Completed restoring backup: " + backup.Name}, nil
	})
}

func (s *adminServiceImpl) replaceAll(ctx context.Context, tx *gorm.DB, snap *model.Snapshot) error {
	if err := s.projectRepo.ReplaceAll(ctx, tx, snap.Projects); err != nil {
		return err
	}
	if err := s.merchRepo.ReplaceAll(ctx, tx, snap.Merchandise); err != nil {
		return err
	}
	if err := s.perkRepo.ReplaceAll(ctx, tx, snap.Perks); err != nil {
		return err
	}
	if err := s.mediaRepo.ReplaceAll(ctx, tx, snap.Media); err != nil {
		return err
	}
	if err := s.userRepo.ReplaceAll(ctx, tx, snap.Users); err != nil {
		return err
	}
	if err := s.postRepo.ReplaceAll(ctx, tx, snap.Posts); err != nil {
		return err
	}
	return s.messageRepo.ReplaceAll(ctx, tx, snap.Messages)
}

func (s *adminServiceImpl) ListBackups(ctx context.Context) ([]model.Backup, error) {
	return s.backupRepo.List(ctx)
}

// Seed loads data into an empty catalog. It reports whether anything was
// written.
func (s *adminServiceImpl) Seed(ctx context.Context, data *model.Snapshot) (bool, error) {
	n, err := s.projectRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.replaceAll(ctx, tx, data)
	})
	if err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}
	logger.Info("seeded %d projects, %d merchandise items, %d perks, %d media assets, %d users, %d posts, %d channel messages",
		len(data.Projects), len(data.Merchandise), len(data.Perks), len(data.Media), len(data.Users), len(data.Posts), len(data.Messages))
	return true, nil
}
