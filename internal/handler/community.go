package handler

import (
	"net/http"
	"strconv"

	"circles-backend/internal/dto"
	"circles-backend/internal/middleware"
	"circles-backend/internal/model"
	"circles-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type CommunityHandler struct {
	communityService service.CommunityService
}

func NewCommunityHandler(communityService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

func (h *CommunityHandler) ListPosts(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")
	if category == "all" {
		category = ""
	}
	trending, _ := strconv.ParseBool(c.QueryParam("trending"))

	posts, err := h.communityService.ListPosts(ctx, model.PostCategory(category), trending)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *CommunityHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	post, err := h.communityService.CreatePost(ctx, middleware.UserID(c), service.NewPost{
		Content:   req.Content,
		Category:  model.PostCategory(req.Category),
		MediaType: req.MediaType,
		MediaURL:  req.MediaURL,
		Tags:      req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *CommunityHandler) LikePost(c echo.Context) error {
	post, err := h.communityService.LikePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// ListChannelMessages reads ?circle= to pick the circle; without it the
// channel is read across circles.
func (h *CommunityHandler) ListChannelMessages(c echo.Context) error {
	ctx := c.Request().Context()

	msgs, err := h.communityService.ListChannelMessages(ctx, c.QueryParam("circle"), model.Channel(c.Param("channel")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *CommunityHandler) PostChannelMessage(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ChannelMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.CircleID == "" {
		req.CircleID = c.QueryParam("circle")
	}

	msg, err := h.communityService.PostChannelMessage(ctx, middleware.UserID(c), model.Channel(c.Param("channel")), service.NewChannelMessage{
		CircleID: req.CircleID,
		Type:     model.MessageType(req.Type),
		Content:  req.Message,
		MediaURL: req.MediaURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}
