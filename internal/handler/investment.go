package handler

import (
	"net/http"

	"circles-backend/internal/dto"
	"circles-backend/internal/middleware"
	"circles-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type InvestmentHandler struct {
	investmentService service.InvestmentService
}

func NewInvestmentHandler(investmentService service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// Invest runs a whole checkout synchronously and answers with the receipt.
func (h *InvestmentHandler) Invest(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.InvestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.ProjectID == "" {
		return badRequest("projectId is required")
	}

	receipt, err := h.investmentService.Invest(ctx, middleware.UserID(c), service.InvestRequest{
		ProjectID: req.ProjectID,
		Attempt:   req.Attempt(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.InvestResponse{
		Receipt:        receipt,
		LastInvestment: receipt.LastInvestment(),
	})
}

func (h *InvestmentHandler) LastInvestment(c echo.Context) error {
	last, err := h.investmentService.LastInvestment(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, last)
}

func (h *InvestmentHandler) Receipts(c echo.Context) error {
	receipts, err := h.investmentService.Receipts(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, receipts)
}

func (h *InvestmentHandler) Summary(c echo.Context) error {
	summary, err := h.investmentService.Summary(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *InvestmentHandler) OpenSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.OpenSessionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.ProjectID == "" {
		return badRequest("projectId is required")
	}

	snap, err := h.investmentService.OpenSession(ctx, req.ProjectID, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, snap)
}

func (h *InvestmentHandler) GetSession(c echo.Context) error {
	snap, err := h.investmentService.Session(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// SubmitSession answers 202 while the charge runs; poll GetSession for
// the outcome.
func (h *InvestmentHandler) SubmitSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AttemptRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	snap, err := h.investmentService.Submit(ctx, c.Param("id"), req.Attempt())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, snap)
}

func (h *InvestmentHandler) CloseSession(c echo.Context) error {
	if err := h.investmentService.CloseSession(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
