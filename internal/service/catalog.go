package service

import (
	"context"
	"sort"

	"circles-backend/internal/catalog"
	"circles-backend/internal/checkout"
	"circles-backend/internal/errorx"
	"circles-backend/internal/model"
	"circles-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type CatalogService interface {
	ListProjects(ctx context.Context, c catalog.Criteria) ([]model.Project, int, error)
	ProjectRows(ctx context.Context, c catalog.Criteria) (catalog.Groups, error)
	CuratedRows(ctx context.Context) ([]catalog.Row, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ProjectPerks(ctx context.Context, id string) ([]model.Perk, error)
	Facets(ctx context.Context) (*Facets, error)
	Tiers() []model.PerkTier
	Quote(amount int64) checkout.Quote
	ListMerchandise(ctx context.Context, c catalog.MerchCriteria) ([]model.MerchandiseItem, error)
}

// Facets are the distinct values offered by the catalog filter controls.
type Facets struct {
	Categories []string            `json:"categories"`
	Types      []string            `json:"types"`
	Languages  []string            `json:"languages"`
	Genres     []string            `json:"genres"`
	SortOrders []catalog.SortOrder `json:"sortOrders"`
}

type catalogServiceImpl struct {
	projectRepo repository.ProjectRepository
	perkRepo    repository.PerkRepository
	merchRepo   repository.MerchandiseRepository
	tiers       []model.PerkTier
	returnRate  decimal.Decimal
}

func NewCatalogService(
	projectRepo repository.ProjectRepository,
	perkRepo repository.PerkRepository,
	merchRepo repository.MerchandiseRepository,
	tiers []model.PerkTier,
	returnRate decimal.Decimal,
) CatalogService {
	return &catalogServiceImpl{
		projectRepo: projectRepo,
		perkRepo:    perkRepo,
		merchRepo:   merchRepo,
		tiers:       tiers,
		returnRate:  returnRate,
	}
}

func (s *catalogServiceImpl) publicProjects(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.ListByStatus(ctx, model.ProjectStatusActive)
}

// ListProjects returns the requested page of matches and the total match
// count before paging.
func (s *catalogServiceImpl) ListProjects(ctx context.Context, c catalog.Criteria) ([]model.Project, int, error) {
	projects, err := s.publicProjects(ctx)
	if err != nil {
		return nil, 0, err
	}
	matches := catalog.Filter(projects, c)
	return catalog.Paginate(matches, c.Limit, c.Offset), len(matches), nil
}

func (s *catalogServiceImpl) ProjectRows(ctx context.Context, c catalog.Criteria) (catalog.Groups, error) {
	projects, err := s.publicProjects(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Rows(projects, c), nil
}

func (s *catalogServiceImpl) CuratedRows(ctx context.Context) ([]catalog.Row, error) {
	projects, err := s.publicProjects(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.CuratedRows(projects), nil
}

// GetProject hides disabled and archived projects the same way listing does.
func (s *catalogServiceImpl) GetProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.IsPublic() {
		return nil, errorx.NewNotFound("project", id)
	}
	return project, nil
}

func (s *catalogServiceImpl) ProjectPerks(ctx context.Context, id string) ([]model.Perk, error) {
	if _, err := s.GetProject(ctx, id); err != nil {
		return nil, err
	}
	return s.perkRepo.ListByProject(ctx, id)
}

func (s *catalogServiceImpl) Facets(ctx context.Context) (*Facets, error) {
	projects, err := s.publicProjects(ctx)
	if err != nil {
		return nil, err
	}

	categories := map[string]struct{}{}
	types := map[string]struct{}{}
	languages := map[string]struct{}{}
	genres := map[string]struct{}{}
	for _, p := range projects {
		categories[p.Category] = struct{}{}
		types[string(p.Type)] = struct{}{}
		languages[p.Language] = struct{}{}
		genres[p.Genre] = struct{}{}
	}

	return &Facets{
		Categories: sortedKeys(categories),
		Types:      sortedKeys(types),
		Languages:  sortedKeys(languages),
		Genres:     sortedKeys(genres),
		SortOrders: catalog.SortOrders(),
	}, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (s *catalogServiceImpl) Tiers() []model.PerkTier {
	out := make([]model.PerkTier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

func (s *catalogServiceImpl) Quote(amount int64) checkout.Quote {
	return checkout.NewQuote(s.tiers, amount, s.returnRate)
}

func (s *catalogServiceImpl) ListMerchandise(ctx context.Context, c catalog.MerchCriteria) ([]model.MerchandiseItem, error) {
	items, err := s.merchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterMerchandise(items, c), nil
}
