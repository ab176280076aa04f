package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clickerrealm/community-api/internal/api/metrics"
	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

// GenerateHandler exposes the AI-assisted content endpoints. Failures of
// the upstream API never surface here: the service degrades to placeholder
// content instead.
type GenerateHandler struct {
	service ports.GeneratorService
}

func NewGenerateHandler(service ports.GeneratorService) *GenerateHandler {
	return &GenerateHandler{service: service}
}

type ideaResponse struct {
	Idea string `json:"idea"`
}

type draftRequest struct {
	Category string `json:"category" validate:"required,oneof=ANNOUNCEMENT SCRIPT MODEL"`
}

// Idea handles GET /v1/generate/idea.
//
// @Summary      Generate a showcase idea
// @Tags         generate
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ideaResponse
// @Router       /v1/generate/idea [get]
func (h *GenerateHandler) Idea(c echo.Context) error {
	idea, err := h.service.ShowcaseIdea(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.GenerationRequestsTotal.WithLabelValues("idea").Inc()
	return c.JSON(http.StatusOK, ideaResponse{Idea: idea})
}

// Draft handles POST /v1/generate/draft.
//
// @Summary      Generate a post draft for a category
// @Tags         generate
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      draftRequest  true  "Draft parameters"
// @Success      200   {object}  ports.PostDraft
// @Failure      400   {object}  map[string]string
// @Router       /v1/generate/draft [post]
func (h *GenerateHandler) Draft(c echo.Context) error {
	var req draftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	draft, err := h.service.SuggestPost(c.Request().Context(), domain.PostCategory(req.Category))
	if err != nil {
		return err
	}

	metrics.GenerationRequestsTotal.WithLabelValues("draft").Inc()
	return c.JSON(http.StatusOK, draft)
}
