package service

import (
	"context"
	"testing"
	"time"

	"circles-backend/internal/model"
	"circles-backend/internal/repository"
	"circles-backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	repos AdminRepositories
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db: db,
		repos: AdminRepositories{
			Projects:    repository.NewProjectRepository(db),
			Merchandise: repository.NewMerchandiseRepository(db),
			Perks:       repository.NewPerkRepository(db),
			Media:       repository.NewMediaRepository(db),
			Users:       repository.NewUserRepository(db),
			Posts:       repository.NewPostRepository(db),
			Messages:    repository.NewChannelMessageRepository(db),
			Logs:        repository.NewActivityLogRepository(db),
			Backups:     repository.NewBackupRepository(db),
		},
	}
}

func seedData() *model.Snapshot {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return &model.Snapshot{
		Projects: []model.Project{
			{ID: "1", Title: "Pathaan 2", Type: model.ProjectTypeFilm, Category: "Bollywood", Language: "Hindi", Genre: "Action",
				TargetAmount: 50000000, RaisedAmount: 37500000, FundedPercentage: 75, Status: model.ProjectStatusActive, CreatedAt: day(1)},
			{ID: "2", Title: "Symphony of India", Type: model.ProjectTypeMusic, Category: "Classical", Language: "Multilingual", Genre: "Fusion",
				TargetAmount: 20000000, RaisedAmount: 12000000, FundedPercentage: 60, Status: model.ProjectStatusActive, CreatedAt: day(2)},
			{ID: "3", Title: "Hidden Cut", Type: model.ProjectTypeFilm, Category: "Bollywood", Language: "Hindi", Genre: "Drama",
				TargetAmount: 100, FundedPercentage: 10, Status: model.ProjectStatusDisabled, CreatedAt: day(3)},
			{ID: "4", Title: "Old Reel", Type: model.ProjectTypeFilm, Category: "Regional", Language: "Tamil", Genre: "Drama",
				TargetAmount: 100, FundedPercentage: 99, Status: model.ProjectStatusArchived, CreatedAt: day(4)},
		},
		Merchandise: []model.MerchandiseItem{
			{ID: "m1", Title: "Pathaan Hoodie", Category: "apparel", Price: 2499, Popularity: 10, CreatedAt: day(1)},
			{ID: "m2", Title: "Signed Poster", Category: "collectibles", Price: 9999, Popularity: 90, CreatedAt: day(2)},
		},
		Perks: []model.Perk{
			{ID: "k1", Title: "Set visit", ProjectID: "1", MinAmount: 75000, CreatedAt: day(1)},
			{ID: "k2", Title: "Credits", ProjectID: "1", MinAmount: 25000, CreatedAt: day(1)},
		},
		Media: []model.MediaAsset{
			{ID: "a1", Title: "Poster", Type: "image", URL: "https://img.example.com/p.jpg", CreatedAt: day(1)},
		},
		Users: []model.User{
			{ID: "1", Name: "Rahul Krishnan", Email: "rahul@example.com", Role: "user", Status: model.UserStatusActive, CreatedAt: day(1)},
			{ID: "4", Name: "Admin User", Email: "admin@example.com", Role: "admin", Status: model.UserStatusActive, CreatedAt: day(1)},
		},
		Posts: []model.CommunityPost{
			{ID: "c1", UserID: "1", Content: "Can't wait!", Category: model.PostGeneral, Timestamp: day(1)},
		},
		Messages: []model.ChannelMessage{
			{ID: "cm1", CircleID: "pathaan-circle", Channel: model.ChannelAnnouncements, UserName: "Bollywood Insider",
				Type: model.MessageText, Content: "Welcome!", Timestamp: day(1)},
		},
	}
}

func (f *fixture) seed(t *testing.T) {
	ok, err := NewAdminService(f.db, f.repos).Seed(context.Background(), seedData())
	require.NoError(t, err)
	require.True(t, ok)
}
