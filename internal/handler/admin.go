package handler

import (
	"context"
	"net/http"
	"strconv"

	"circles-backend/internal/dto"
	"circles-backend/internal/model"
	"circles-backend/internal/service"

	"github.com/labstack/echo/v4"
)

const defaultActivityLimit = 50

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func createWith[T any](c echo.Context, fn func(context.Context, *T) (*T, error)) error {
	row := new(T)
	if err := c.Bind(row); err != nil {
		return badRequest("invalid request body")
	}
	created, err := fn(c.Request().Context(), row)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func updateWith[T any](c echo.Context, fn func(context.Context, string, *T) (*T, error)) error {
	row := new(T)
	if err := c.Bind(row); err != nil {
		return badRequest("invalid request body")
	}
	updated, err := fn(c.Request().Context(), c.Param("id"), row)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func runOnID(c echo.Context, fn func(context.Context, string) error) error {
	if err := fn(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func listWith[T any](c echo.Context, fn func(context.Context) ([]T, error)) error {
	rows, err := fn(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// -------- projects --------

func (h *AdminHandler) ListProjects(c echo.Context) error {
	return listWith(c, h.adminService.ListProjects)
}

func (h *AdminHandler) CreateProject(c echo.Context) error {
	return createWith(c, h.adminService.CreateProject)
}

func (h *AdminHandler) UpdateProject(c echo.Context) error {
	return updateWith(c, h.adminService.UpdateProject)
}

func (h *AdminHandler) DeleteProject(c echo.Context) error {
	return runOnID(c, h.adminService.DeleteProject)
}

func (h *AdminHandler) ArchiveProject(c echo.Context) error {
	return runOnID(c, h.adminService.ArchiveProject)
}

func (h *AdminHandler) SetProjectStatus(c echo.Context) error {
	var req dto.StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	err := h.adminService.SetProjectStatus(c.Request().Context(), c.Param("id"), model.ProjectStatus(req.Status))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -------- merchandise --------

func (h *AdminHandler) ListMerchandise(c echo.Context) error {
	return listWith(c, h.adminService.ListMerchandise)
}

func (h *AdminHandler) CreateMerchandise(c echo.Context) error {
	return createWith(c, h.adminService.CreateMerchandise)
}

func (h *AdminHandler) UpdateMerchandise(c echo.Context) error {
	return updateWith(c, h.adminService.UpdateMerchandise)
}

func (h *AdminHandler) DeleteMerchandise(c echo.Context) error {
	return runOnID(c, h.adminService.DeleteMerchandise)
}

// -------- perks --------

func (h *AdminHandler) ListPerks(c echo.Context) error {
	return listWith(c, h.adminService.ListPerks)
}

func (h *AdminHandler) CreatePerk(c echo.Context) error {
	return createWith(c, h.adminService.CreatePerk)
}

func (h *AdminHandler) UpdatePerk(c echo.Context) error {
	return updateWith(c, h.adminService.UpdatePerk)
}

func (h *AdminHandler) DeletePerk(c echo.Context) error {
	return runOnID(c, h.adminService.DeletePerk)
}

// -------- media --------

func (h *AdminHandler) ListMedia(c echo.Context) error {
	return listWith(c, h.adminService.ListMedia)
}

func (h *AdminHandler) CreateMedia(c echo.Context) error {
	return createWith(c, h.adminService.CreateMedia)
}

func (h *AdminHandler) UpdateMedia(c echo.Context) error {
	return updateWith(c, h.adminService.UpdateMedia)
}

func (h *AdminHandler) DeleteMedia(c echo.Context) error {
	return runOnID(c, h.adminService.DeleteMedia)
}

// -------- users --------

func (h *AdminHandler) ListUsers(c echo.Context) error {
	return listWith(c, h.adminService.ListUsers)
}

func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	var req dto.StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	err := h.adminService.UpdateUserStatus(c.Request().Context(), c.Param("id"), model.UserStatus(req.Status))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -------- activity & backups --------

func (h *AdminHandler) ActivityLogs(c echo.Context) error {
	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return badRequest("limit must be a positive integer")
		}
		limit = n
	}

	logs, err := h.adminService.ActivityLogs(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *AdminHandler) ListBackups(c echo.Context) error {
	return listWith(c, h.adminService.ListBackups)
}

func (h *AdminHandler) CreateBackup(c echo.Context) error {
	backup, err := h.adminService.CreateBackup(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, backup)
}

func (h *AdminHandler) RestoreBackup(c echo.Context) error {
	return runOnID(c, h.adminService.RestoreBackup)
}
