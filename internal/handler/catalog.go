package handler

import (
	"net/http"
	"strconv"

	"circles-backend/internal/catalog"
	"circles-backend/internal/dto"
	"circles-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService    service.CatalogService
	investmentService service.InvestmentService
}

func NewCatalogHandler(catalogService service.CatalogService, investmentService service.InvestmentService) *CatalogHandler {
	return &CatalogHandler{
		catalogService:    catalogService,
		investmentService: investmentService,
	}
}

func (h *CatalogHandler) ListProjects(c echo.Context) error {
	ctx := c.Request().Context()
	criteria := catalog.ParseCriteria(c.QueryParams())

	projects, total, err := h.catalogService.ListProjects(ctx, criteria)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ProjectListResponse{
		Projects: projects,
		Total:    total,
		Criteria: criteria,
	})
}

// ProjectRows serves category rows, or the curated browse shelves with
// view=curated.
func (h *CatalogHandler) ProjectRows(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("view") == "curated" {
		curated, err := h.catalogService.CuratedRows(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.ProjectRowsResponse{Curated: curated})
	}

	rows, err := h.catalogService.ProjectRows(ctx, catalog.ParseCriteria(c.QueryParams()))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ProjectRowsResponse{Rows: rows})
}

func (h *CatalogHandler) Facets(c echo.Context) error {
	facets, err := h.catalogService.Facets(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, facets)
}

func (h *CatalogHandler) GetProject(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	project, err := h.catalogService.GetProject(ctx, id)
	if err != nil {
		return err
	}
	perks, err := h.catalogService.ProjectPerks(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ProjectDetailResponse{
		Project:                  project,
		ComputedFundedPercentage: project.ComputedFundedPercentage(),
		Perks:                    perks,
	})
}

func (h *CatalogHandler) Tiers(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.TiersResponse{
		Tiers:  h.catalogService.Tiers(),
		Limits: h.investmentService.Limits(),
	})
}

func (h *CatalogHandler) Quote(c echo.Context) error {
	amount, err := strconv.ParseInt(c.QueryParam("amount"), 10, 64)
	if err != nil || amount < 0 {
		return badRequest("amount must be a non-negative integer")
	}
	return c.JSON(http.StatusOK, h.catalogService.Quote(amount))
}

func (h *CatalogHandler) ListMerchandise(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.catalogService.ListMerchandise(ctx, catalog.ParseMerchCriteria(c.QueryParams()))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MerchandiseListResponse{Items: items, Total: len(items)})
}
