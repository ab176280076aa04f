package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clickerrealm/community-api/internal/api/metrics"
	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

// PostHandler handles HTTP requests for board posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	Title    string `json:"title"    validate:"required,max=120"`
	Content  string `json:"content"  validate:"required,max=10000"`
	Category string `json:"category" validate:"required,oneof=ANNOUNCEMENT SCRIPT MODEL"`
}

type listPostsResponse struct {
	Items []*domain.Post `json:"items"`
	Total int            `json:"total"`
}

// Create handles POST /v1/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), actor, ports.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: domain.PostCategory(req.Category),
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(post.Category)).Inc()
	return c.JSON(http.StatusCreated, post)
}

// List handles GET /v1/posts?category=.
//
// @Summary      List posts in a category, newest first
// @Tags         posts
// @Produce      json
// @Param        category  query     string  true  "Post category (ANNOUNCEMENT, SCRIPT, MODEL)"
// @Success      200       {object}  listPostsResponse
// @Failure      400       {object}  map[string]string
// @Router       /v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	category := domain.PostCategory(c.QueryParam("category"))
	if !domain.ValidCategory(category) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}

	posts, err := h.service.ListByCategory(c.Request().Context(), category)
	if err != nil {
		return err
	}
	if posts == nil {
		// An empty category renders as "items": [], never null.
		posts = []*domain.Post{}
	}

	return c.JSON(http.StatusOK, listPostsResponse{Items: posts, Total: len(posts)})
}

// Delete handles DELETE /v1/posts/:id.
//
// @Summary      Delete a post (moderation)
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
