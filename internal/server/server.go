package server

import (
	"context"
	"net/http"

	"circles-backend/internal/handler"
	appmw "circles-backend/internal/middleware"
	"circles-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Services struct {
	Catalog    service.CatalogService
	Investment service.InvestmentService
	Community  service.CommunityService
	Admin      service.AdminService
}

type Server struct {
	echo              *echo.Echo
	catalogHandler    *handler.CatalogHandler
	investmentHandler *handler.InvestmentHandler
	communityHandler  *handler.CommunityHandler
	adminHandler      *handler.AdminHandler
}

func NewServer(services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(appmw.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmw.AuthMiddleware())

	s := &Server{
		echo:              e,
		catalogHandler:    handler.NewCatalogHandler(services.Catalog, services.Investment),
		investmentHandler: handler.NewInvestmentHandler(services.Investment),
		communityHandler:  handler.NewCommunityHandler(services.Community),
		adminHandler:      handler.NewAdminHandler(services.Admin),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- catalog --------
	api.GET("/projects", s.catalogHandler.ListProjects)
	api.GET("/projects/rows", s.catalogHandler.ProjectRows)
	api.GET("/projects/facets", s.catalogHandler.Facets)
	api.GET("/projects/:id", s.catalogHandler.GetProject)
	api.GET("/tiers", s.catalogHandler.Tiers)
	api.GET("/tiers/quote", s.catalogHandler.Quote)
	api.GET("/merchandise", s.catalogHandler.ListMerchandise)

	// -------- investments --------
	api.POST("/investments", s.investmentHandler.Invest)
	api.GET("/investments", s.investmentHandler.Receipts)
	api.GET("/investments/last", s.investmentHandler.LastInvestment)
	api.GET("/investments/summary", s.investmentHandler.Summary)

	sessions := api.Group("/checkout/sessions")
	sessions.POST("", s.investmentHandler.OpenSession)
	sessions.GET("/:id", s.investmentHandler.GetSession)
	sessions.POST("/:id/submit", s.investmentHandler.SubmitSession)
	sessions.DELETE("/:id", s.investmentHandler.CloseSession)

	// -------- community --------
	api.GET("/community/posts", s.communityHandler.ListPosts)
	api.POST("/community/posts", s.communityHandler.CreatePost)
	api.POST("/community/posts/:id/like", s.communityHandler.LikePost)
	api.GET("/community/channels/:channel/messages", s.communityHandler.ListChannelMessages)
	api.POST("/community/channels/:channel/messages", s.communityHandler.PostChannelMessage)

	// -------- admin --------
	admin := api.Group("/admin", appmw.AdminMiddleware())

	admin.GET("/projects", s.adminHandler.ListProjects)
	admin.POST("/projects", s.adminHandler.CreateProject)
	admin.PUT("/projects/:id", s.adminHandler.UpdateProject)
	admin.DELETE("/projects/:id", s.adminHandler.DeleteProject)
	admin.POST("/projects/:id/archive", s.adminHandler.ArchiveProject)
	admin.PUT("/projects/:id/status", s.adminHandler.SetProjectStatus)

	admin.GET("/merchandise", s.adminHandler.ListMerchandise)
	admin.POST("/merchandise", s.adminHandler.CreateMerchandise)
	admin.PUT("/merchandise/:id", s.adminHandler.UpdateMerchandise)
	admin.DELETE("/merchandise/:id", s.adminHandler.DeleteMerchandise)

	admin.GET("/perks", s.adminHandler.ListPerks)
	admin.POST("/perks", s.adminHandler.CreatePerk)
	admin.PUT("/perks/:id", s.adminHandler.UpdatePerk)
	admin.DELETE("/perks/:id", s.adminHandler.DeletePerk)

	admin.GET("/media", s.adminHandler.ListMedia)
	admin.POST("/media", s.adminHandler.CreateMedia)
	admin.PUT("/media/:id", s.adminHandler.UpdateMedia)
	admin.DELETE("/media/:id", s.adminHandler.DeleteMedia)

	admin.GET("/users", s.adminHandler.ListUsers)
	admin.PUT("/users/:id/status", s.adminHandler.UpdateUserStatus)

	admin.GET("/activity", s.adminHandler.ActivityLogs)

	admin.GET("/backups", s.adminHandler.ListBackups)
	admin.POST("/backups", s.adminHandler.CreateBackup)
	admin.POST("/backups/:id/restore", s.adminHandler.RestoreBackup)
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
