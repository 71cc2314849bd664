package service

import (
	"context"
	"fmt"
	"time"

	"circles-backend/internal/checkout"
	"circles-backend/internal/errorx"
	"circles-backend/internal/logger"
	"circles-backend/internal/model"
	"circles-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const recentActivitySize = 5

type InvestRequest struct {
	ProjectID string
	checkout.Attempt
}

type InvestmentService interface {
	OpenSession(ctx context.Context, projectID, userID string) (*checkout.Snapshot, error)
	Submit(ctx context.Context, sessionID string, attempt checkout.Attempt) (*checkout.Snapshot, error)
	Session(ctx context.Context, sessionID string) (*checkout.Snapshot, error)
	CloseSession(ctx context.Context, sessionID string) error
	Invest(ctx context.Context, userID string, req InvestRequest) (*model.Receipt, error)
	LastInvestment(ctx context.Context, userID string) (*model.LastInvestment, error)
	Receipts(ctx context.Context, userID string) ([]model.Receipt, error)
	Summary(ctx context.Context, userID string) (*PortfolioSummary, error)
	Limits() checkout.Limits
	SweepSessions(ctx context.Context) int
	Shutdown()
}

type InvestmentOptions struct {
	Limits         checkout.Limits
	Tiers          []model.PerkTier
	ReturnRate     decimal.Decimal
	DisplayTimeout time.Duration
	SessionTTL     time.Duration
}

// PortfolioSummary is the investor dashboard header. Returns are the
// projected gain at the platform return rate, not realised payouts.
type PortfolioSummary struct {
	TotalInvested    int64           `json:"totalInvested"`
	EstimatedReturns int64           `json:"estimatedReturns"`
	PortfolioValue   int64           `json:"portfolioValue"`
	InvestmentCount  int             `json:"investmentCount"`
	ActiveProjects   int             `json:"activeProjects"`
	RecentActivity   []model.Receipt `json:"recentActivity"`
}

type investmentServiceImpl struct {
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	receiptRepo repository.ReceiptRepository
	userRepo    repository.UserRepository
	cache       repository.ReceiptCache
	registry    *checkout.Registry
	limits      checkout.Limits
	returnRate  decimal.Decimal
	sessionTTL  time.Duration
}

func NewInvestmentService(
	db *gorm.DB,
	projectRepo repository.ProjectRepository,
	receiptRepo repository.ReceiptRepository,
	userRepo repository.UserRepository,
	cache repository.ReceiptCache,
	gateway checkout.Gateway,
	opts InvestmentOptions,
) InvestmentService {
	s := &investmentServiceImpl{
		db:          db,
		projectRepo: projectRepo,
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
		cache:       cache,
		limits:      opts.Limits,
		returnRate:  opts.ReturnRate,
		sessionTTL:  opts.SessionTTL,
	}
	if s.limits == (checkout.Limits{}) {
		s.limits = checkout.DefaultLimits()
	}
	s.registry = checkout.NewRegistry(gateway, checkout.Options{
		Limits:         s.limits,
		Tiers:          opts.Tiers,
		DisplayTimeout: opts.DisplayTimeout,
		OnReceipt:      s.recordReceipt,
	})
	return s
}

// recordReceipt persists an approved charge and refreshes the user's
// last-investment blob. A cache failure does not fail the charge.
func (s *investmentServiceImpl) recordReceipt(ctx context.Context, receipt *model.Receipt) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.receiptRepo.Create(ctx, tx, receipt); err != nil {
			return err
		}
		return s.userRepo.RecordInvestment(ctx, tx, receipt.UserID, receipt.Amount)
	})
	if err != nil {
		return err
	}

	if err := s.cache.SetLast(ctx, receipt.UserID, receipt.LastInvestment()); err != nil {
		logger.Warn("cache last investment for %s: %v", receipt.UserID, err)
	}
	logger.Info("investment %s recorded: project=%s amount=%d", receipt.ID, receipt.ProjectID, receipt.Amount)
	return nil
}

func (s *investmentServiceImpl) publicProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.IsPublic() {
		return nil, errorx.NewNotFound("project", id)
	}
	return project, nil
}

func (s *investmentServiceImpl) session(id string) (*checkout.Session, error) {
	sess, ok := s.registry.Get(id)
	if !ok {
		return nil, errorx.NewNotFound("checkout session", id)
	}
	return sess, nil
}

func (s *investmentServiceImpl) OpenSession(ctx context.Context, projectID, userID string) (*checkout.Snapshot, error) {
	project, err := s.publicProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	snap := s.registry.Open(*project, userID).Snapshot()
	return &snap, nil
}

func (s *investmentServiceImpl) Submit(ctx context.Context, sessionID string, attempt checkout.Attempt) (*checkout.Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Submit(ctx, attempt); err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	return &snap, nil
}

func (s *investmentServiceImpl) Session(_ context.Context, sessionID string) (*checkout.Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	return &snap, nil
}

func (s *investmentServiceImpl) CloseSession(_ context.Context, sessionID string) error {
	if !s.registry.Close(sessionID) {
		return errorx.NewNotFound("checkout session", sessionID)
	}
	return nil
}

// Invest runs a whole checkout in one call: open, submit, wait, close.
func (s *investmentServiceImpl) Invest(ctx context.Context, userID string, req InvestRequest) (*model.Receipt, error) {
	project, err := s.publicProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	sess := s.registry.Open(*project, userID)
	defer s.registry.Close(sess.ID())

	if err := sess.Submit(ctx, req.Attempt); err != nil {
		return nil, err
	}
	if err := sess.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for checkout: %w", err)
	}

	snap := sess.Snapshot()
	if snap.State != checkout.StateSuccess || snap.Receipt == nil {
		if err := sess.Err(); err != nil {
			return nil, err
		}
		return nil, errorx.New(errorx.Internal, "checkout ended in state %s", snap.State)
	}
	return snap.Receipt, nil
}

func (s *investmentServiceImpl) LastInvestment(ctx context.Context, userID string) (*model.LastInvestment, error) {
	last, err := s.cache.GetLast(ctx, userID)
	if err == nil {
		return last, nil
	}
	if !errorx.IsNotFound(err) {
		logger.Warn("read cached last investment for %s: %v", userID, err)
	}

	receipt, err := s.receiptRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	l := receipt.LastInvestment()
	if err := s.cache.SetLast(ctx, userID, l); err != nil {
		logger.Warn("cache last investment for %s: %v", userID, err)
	}
	return &l, nil
}

func (s *investmentServiceImpl) Receipts(ctx context.Context, userID string) ([]model.Receipt, error) {
	return s.receiptRepo.ListByUser(ctx, userID, 0)
}

// Summary aggregates every receipt of userID. A user with no receipts gets a
// zero summary.
func (s *investmentServiceImpl) Summary(ctx context.Context, userID string) (*PortfolioSummary, error) {
	receipts, err := s.receiptRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	sum := &PortfolioSummary{
		InvestmentCount: len(receipts),
		RecentActivity:  append([]model.Receipt{}, receipts[:min(len(receipts), recentActivitySize)]...),
	}
	projects := make(map[string]struct{})
	for _, r := range receipts {
		sum.TotalInvested += r.Amount
		projects[r.ProjectID] = struct{}{}
	}
	sum.ActiveProjects = len(projects)
	sum.EstimatedReturns = checkout.EstimatedGain(sum.TotalInvested, s.returnRate)
	sum.PortfolioValue = checkout.EstimatedReturn(sum.TotalInvested, s.returnRate)
	return sum, nil
}

func (s *investmentServiceImpl) Limits() checkout.Limits {
	return s.limits
}

// SweepSessions closes sessions abandoned for longer than the session TTL.
func (s *investmentServiceImpl) SweepSessions(_ context.Context) int {
	if s.sessionTTL <= 0 {
		return 0
	}
	n := s.registry.Sweep(s.sessionTTL)
	if n > 0 {
		logger.Info("swept %d stale checkout sessions", n)
	}
	return n
}

func (s *investmentServiceImpl) Shutdown() {
	s.registry.CloseAll()
}
