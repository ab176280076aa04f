package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clickerrealm/community-api/internal/api/metrics"
	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

const defaultAuditLimit = 50

// AdminHandler handles the admin panel surface: members, roles, bans,
// registration keys, and the audit trail.
type AdminHandler struct {
	authService ports.AuthService
	keyService  ports.KeyService
	audit       ports.AuditRepository
}

func NewAdminHandler(authService ports.AuthService, keyService ports.KeyService, audit ports.AuditRepository) *AdminHandler {
	return &AdminHandler{authService: authService, keyService: keyService, audit: audit}
}

type grantRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user vip admin"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Banned"`
}

type listUsersResponse struct {
	Items []*domain.User `json:"items"`
	Total int            `json:"total"`
}

type listKeysResponse struct {
	Items []*domain.RegistrationKey `json:"items"`
	Total int                       `json:"total"`
}

type listAuditResponse struct {
	Items []*domain.AuditEvent `json:"items"`
	Total int                  `json:"total"`
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List community members
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	users, err := h.authService.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Items: users, Total: len(users)})
}

// GrantRole handles POST /v1/admin/users/:id/roles.
//
// @Summary      Grant a role to a member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User id"
// @Param        body  body      grantRoleRequest  true  "Role to grant"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/users/{id}/roles [post]
func (h *AdminHandler) GrantRole(c echo.Context) error {
	var req grantRoleRequest
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

	updated, err := h.authService.GrantRole(c.Request().Context(), actor, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// RevokeRole handles DELETE /v1/admin/users/:id/roles/:role.
//
// @Summary      Revoke a role from a member
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "User id"
// @Param        role  path      string  true  "Role to revoke"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/users/{id}/roles/{role} [delete]
func (h *AdminHandler) RevokeRole(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	updated, err := h.authService.RevokeRole(c.Request().Context(), actor, c.Param("id"), domain.Role(c.Param("role")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// SetStatus handles PUT /v1/admin/users/:id/status.
//
// @Summary      Ban or unban a member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/users/{id}/status [put]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
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

	banned := domain.Status(req.Status) == domain.StatusBanned
	updated, err := h.authService.SetBanStatus(c.Request().Context(), actor, c.Param("id"), banned)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// ListKeys handles GET /v1/admin/keys.
//
// @Summary      List registration keys
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listKeysResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/keys [get]
func (h *AdminHandler) ListKeys(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	keys, err := h.keyService.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listKeysResponse{Items: keys, Total: len(keys)})
}

// IssueKey handles POST /v1/admin/keys.
//
// @Summary      Issue a new registration key
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.RegistrationKey
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/keys [post]
func (h *AdminHandler) IssueKey(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	key, err := h.keyService.Issue(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	metrics.KeysIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, key)
}

// DeleteKey handles DELETE /v1/admin/keys/:id.
//
// @Summary      Delete an unused registration key
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Key id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/admin/keys/{id} [delete]
func (h *AdminHandler) DeleteKey(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.keyService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAudit handles GET /v1/admin/audit.
//
// @Summary      List recent audit events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max events to return (default 50)"
// @Success      200    {object}  listAuditResponse
// @Failure      403    {object}  map[string]string
// @Router       /v1/admin/audit [get]
func (h *AdminHandler) ListAudit(c echo.Context) error {
	if _, err := ctxUser(c); err != nil {
		return err
	}

	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	events, err := h.audit.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAuditResponse{Items: events, Total: len(events)})
}
