package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"circles-backend/internal/checkout"
	"circles-backend/internal/dto"
	"circles-backend/internal/model"
	"circles-backend/internal/repository"
	"circles-backend/internal/service"
	"circles-backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, latency time.Duration) *Server {
	t.Helper()
	db := testutil.NewDB(t)

	repos := service.AdminRepositories{
		Projects:    repository.NewProjectRepository(db),
		Merchandise: repository.NewMerchandiseRepository(db),
		Perks:       repository.NewPerkRepository(db),
		Media:       repository.NewMediaRepository(db),
		Users:       repository.NewUserRepository(db),
		Posts:       repository.NewPostRepository(db),
		Messages:    repository.NewChannelMessageRepository(db),
		Logs:        repository.NewActivityLogRepository(db),
		Backups:     repository.NewBackupRepository(db),
	}
	admin := service.NewAdminService(db, repos)
	investment := service.NewInvestmentService(
		db,
		repos.Projects,
		repository.NewReceiptRepository(db),
		repos.Users,
		repository.NewMemoryReceiptCache(),
		checkout.NewMockGateway(latency),
		service.InvestmentOptions{ReturnRate: decimal.RequireFromString("0.15"), DisplayTimeout: time.Hour, SessionTTL: time.Minute},
	)
	t.Cleanup(investment.Shutdown)

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	_, err := admin.Seed(context.Background(), &model.Snapshot{
		Projects: []model.Project{
			{ID: "1", Title: "Pathaan 2", Type: model.ProjectTypeFilm, Category: "Bollywood", Language: "Hindi",
				TargetAmount: 50000000, RaisedAmount: 37500000, FundedPercentage: 75, Status: model.ProjectStatusActive, CreatedAt: day(1)},
			{ID: "2", Title: "Barbie", Type: model.ProjectTypeFilm, Category: "Hollywood", Language: "English",
				TargetAmount: 10000000, RaisedAmount: 8300000, FundedPercentage: 83, Status: model.ProjectStatusActive, CreatedAt: day(2)},
			{ID: "3", Title: "Hidden Cut", Type: model.ProjectTypeFilm, Category: "Bollywood", Language: "Hindi",
				TargetAmount: 100, FundedPercentage: 10, Status: model.ProjectStatusDisabled, CreatedAt: day(3)},
		},
		Users: []model.User{
			{ID: "1", Name: "Rahul Krishnan", Email: "rahul@example.com", Role: "user", Status: model.UserStatusActive, CreatedAt: day(1)},
			{ID: "4", Name: "Admin User", Email: "admin@example.com", Role: "admin", Status: model.UserStatusActive, CreatedAt: day(1)},
		},
	})
	require.NoError(t, err)

	return NewServer(Services{
		Catalog:    service.NewCatalogService(repos.Projects, repos.Perks, repos.Merchandise, checkout.DefaultTiers(), decimal.RequireFromString("0.15")),
		Investment: investment,
		Community:  service.NewCommunityService(db, repos.Posts, repos.Messages, repos.Users),
		Admin:      admin,
	})
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, time.Millisecond)
	rec := do(t, s, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Catalog(t *testing.T) {
	s := newTestServer(t, time.Millisecond)

	rec := do(t, s, http.MethodGet, "/api/projects?sortBy=funding-high", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[dto.ProjectListResponse](t, rec)
	require.Equal(t, 2, list.Total)
	require.Equal(t, "Barbie", list.Projects[0].Title)
	require.Equal(t, "Pathaan 2", list.Projects[1].Title)

	rec = do(t, s, http.MethodGet, "/api/projects/rows?type=film", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[dto.ProjectRowsResponse](t, rec)
	require.Equal(t, []string{"Hollywood", "Bollywood"}, rows.Rows.Categories())

	rec = do(t, s, http.MethodGet, "/api/projects?sortBy=funding-high&limit=1&offset=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list = decode[dto.ProjectListResponse](t, rec)
	require.Equal(t, 2, list.Total)
	require.Len(t, list.Projects, 1)
	require.Equal(t, "Pathaan 2", list.Projects[0].Title)
	require.Equal(t, 1, list.Criteria.Limit)

	rec = do(t, s, http.MethodGet, "/api/projects/rows?view=curated", "")
	require.Equal(t, http.StatusOK, rec.Code)
	curated := decode[dto.ProjectRowsResponse](t, rec)
	require.Empty(t, curated.Rows)
	require.Equal(t, "featured", curated.Curated[0].Key)
	require.Equal(t, "trending", curated.Curated[1].Key)
	require.Equal(t, "Barbie", curated.Curated[1].Projects[0].Title)

	rec = do(t, s, http.MethodGet, "/api/projects/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[dto.ProjectDetailResponse](t, rec)
	require.Equal(t, 75, detail.ComputedFundedPercentage)

	rec = do(t, s, http.MethodGet, "/api/projects/3", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 100004, decode[dto.ErrorResponse](t, rec).Code)

	rec = do(t, s, http.MethodGet, "/api/tiers/quote?amount=30000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	quote := decode[checkout.Quote](t, rec)
	require.Equal(t, "backer", quote.Tier.ID)
	require.Equal(t, int64(34500), quote.EstimatedReturn)

	rec = do(t, s, http.MethodGet, "/api/tiers/quote?amount=lots", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Invest(t *testing.T) {
	s := newTestServer(t, time.Millisecond)

	rec := do(t, s, http.MethodPost, "/api/investments",
		`{"projectId":"1","amount":5000,"tierId":"supporter","paymentMethod":"upi"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, decode[dto.ErrorResponse](t, rec).Fields, "amount")

	rec = do(t, s, http.MethodGet, "/api/investments/last", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/investments",
		`{"projectId":"1","amount":25000,"tierId":"backer","paymentMethod":"upi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[dto.InvestResponse](t, rec)
	require.Equal(t, model.LastInvestment{Project: "Pathaan 2", Amount: 25000}, resp.LastInvestment)

	rec = do(t, s, http.MethodGet, "/api/investments/last", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"project":"Pathaan 2","amount":25000}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/investments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]model.Receipt](t, rec), 1)

	rec = do(t, s, http.MethodGet, "/api/investments/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[service.PortfolioSummary](t, rec)
	require.Equal(t, int64(25000), summary.TotalInvested)
	require.Equal(t, int64(28750), summary.PortfolioValue)
	require.Len(t, summary.RecentActivity, 1)

	rec = do(t, s, http.MethodPost, "/api/investments", `{"projectId":"3","amount":25000,"tierId":"backer","paymentMethod":"upi"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/investments", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CheckoutSession(t *testing.T) {
	s := newTestServer(t, 200*time.Millisecond)

	rec := do(t, s, http.MethodPost, "/api/checkout/sessions", `{"projectId":"2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	snap := decode[checkout.Snapshot](t, rec)
	require.Equal(t, checkout.StateIdle, snap.State)

	attempt := `{"amount":75000,"tierId":"producer","paymentMethod":"card"}`
	rec = do(t, s, http.MethodPost, "/api/checkout/sessions/"+snap.ID+"/submit", attempt)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, checkout.StateSubmitting, decode[checkout.Snapshot](t, rec).State)

	// a second press while the first is in flight is refused
	rec = do(t, s, http.MethodPost, "/api/checkout/sessions/"+snap.ID+"/submit", attempt)
	require.Equal(t, http.StatusConflict, rec.Code)

	require.Eventually(t, func() bool {
		rec := do(t, s, http.MethodGet, "/api/checkout/sessions/"+snap.ID, "")
		return decode[checkout.Snapshot](t, rec).State == checkout.StateSuccess
	}, 2*time.Second, 20*time.Millisecond)

	rec = do(t, s, http.MethodDelete, "/api/checkout/sessions/"+snap.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/checkout/sessions/"+snap.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Community(t *testing.T) {
	s := newTestServer(t, time.Millisecond)

	rec := do(t, s, http.MethodPost, "/api/community/posts", `{"content":"Backed Barbie!","category":"investment"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decode[model.CommunityPost](t, rec)
	require.Equal(t, "Rahul Krishnan", post.UserName)

	rec = do(t, s, http.MethodPost, "/api/community/posts/"+post.ID+"/like", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decode[model.CommunityPost](t, rec).Likes)

	rec = do(t, s, http.MethodGet, "/api/community/posts?category=investment", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]model.CommunityPost](t, rec), 1)

	rec = do(t, s, http.MethodPost, "/api/community/posts", `{"content":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_ChannelMessages(t *testing.T) {
	s := newTestServer(t, time.Millisecond)

	rec := do(t, s, http.MethodPost, "/api/community/channels/investor-hall/messages?circle=srk-circle",
		`{"message":"How are the returns on Animal?"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	msg := decode[model.ChannelMessage](t, rec)
	require.Equal(t, "srk-circle", msg.CircleID)
	require.Equal(t, model.MessageText, msg.Type)
	require.Equal(t, "Rahul Krishnan", msg.UserName)

	rec = do(t, s, http.MethodPost, "/api/community/channels/investor-hall/messages",
		`{"circleId":"nolan-circle","message":"Oppenheimer numbers look great"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/community/channels/investor-hall/messages?circle=srk-circle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decode[[]model.ChannelMessage](t, rec)
	require.Len(t, msgs, 1)
	require.Equal(t, "How are the returns on Animal?", msgs[0].Content)

	rec = do(t, s, http.MethodGet, "/api/community/channels/gossip/messages", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, decode[dto.ErrorResponse](t, rec).Fields, "channel")

	rec = do(t, s, http.MethodPost, "/api/community/channels/fan-zone/messages?circle=srk-circle", `{"type":"image"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, decode[dto.ErrorResponse](t, rec).Fields, "mediaUrl")
}

func TestServer_AdminUpdateWithoutStatus(t *testing.T) {
	s := newTestServer(t, time.Millisecond)

	rec := do(t, s, http.MethodPut, "/api/admin/projects/3",
		`{"title":"Hidden Cut (Director's Cut)","type":"film","category":"Bollywood","targetAmount":100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.Project](t, rec)
	require.Equal(t, model.ProjectStatusDisabled, updated.Status)

	rec = do(t, s, http.MethodGet, "/api/projects/3", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Admin(t *testing.T) {
	s := newTestServer(t, time.Millisecond)

	rec := do(t, s, http.MethodPost, "/api/admin/projects",
		`{"title":"Kalki 2","type":"film","category":"Tollywood","targetAmount":90000000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Project](t, rec)
	require.NotEmpty(t, created.ID)

	rec = do(t, s, http.MethodPost, "/api/admin/projects", `{"title":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/admin/projects/1/status", `{"status":"disabled"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/projects/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/admin/projects/missing/archive", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/admin/users/1/status", `{"status":"inactive"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/admin/activity?limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode[[]model.ActivityLog](t, rec)
	require.Len(t, logs, 3)
	for _, l := range logs {
		require.Equal(t, "Admin User", l.UserName)
	}

	rec = do(t, s, http.MethodGet, "/api/admin/activity?limit=-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/admin/backups", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	backup := decode[model.Backup](t, rec)
	require.Equal(t, model.BackupCompleted, backup.Status)

	rec = do(t, s, http.MethodPost, "/api/admin/backups/"+backup.ID+"/restore", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}
