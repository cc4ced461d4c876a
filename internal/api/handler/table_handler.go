package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokerface/networking-api/internal/api/metrics"
	"github.com/pokerface/networking-api/internal/core/domain"
	"github.com/pokerface/networking-api/internal/core/ports"
)

// TableHandler handles networking table operations.
type TableHandler struct {
	service ports.TableService
}

func NewTableHandler(service ports.TableService) *TableHandler {
	return &TableHandler{service: service}
}

// Create handles POST /v1/tables. Organizer role only (enforced by RBAC
// middleware on the route).
//
// @Summary      Create a networking table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTableRequest  true  "Table details"
// @Success      201   {object}  tableResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/tables [post]
func (h *TableHandler) Create(c echo.Context) error {
	organizerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateTableInput{
		Name:        req.Name,
		Capacity:    req.Capacity,
		DurationMin: req.DurationMin,
		Focus:       req.Focus,
		OrganizerID: organizerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTableResponse(*view))
}

// Get handles GET /v1/tables/:id.
//
// @Summary      Get a table
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Table id"
// @Success      200 {object}  tableResponse
// @Failure      404 {object}  map[string]string
// @Router       /v1/tables/{id} [get]
func (h *TableHandler) Get(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTableResponse(*view))
}

// Join handles POST /v1/tables/:id/join and returns the member count after
// joining.
//
// @Summary      Join a table
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Table id"
// @Success      200 {object}  joinTableResponse
// @Failure      404 {object}  map[string]string
// @Failure      409 {object}  map[string]string
// @Router       /v1/tables/{id}/join [post]
func (h *TableHandler) Join(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	tableID := c.Param("id")
	count, err := h.service.Join(c.Request().Context(), tableID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTableFull):
			metrics.TableJoinsTotal.WithLabelValues("full").Inc()
		case errors.Is(err, domain.ErrTableClosed):
			metrics.TableJoinsTotal.WithLabelValues("closed").Inc()
		}
		return err
	}
	metrics.TableJoinsTotal.WithLabelValues("joined").Inc()

	return c.JSON(http.StatusOK, joinTableResponse{TableID: tableID, MemberCount: count})
}

// Leave handles POST /v1/tables/:id/leave. Leaving a table one never joined
// is a successful no-op.
//
// @Summary      Leave a table
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Table id"
// @Success      200 {object}  okResponse
// @Failure      404 {object}  map[string]string
// @Router       /v1/tables/{id}/leave [post]
func (h *TableHandler) Leave(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Leave(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{Message: "left table"})
}

// End handles POST /v1/tables/:id/end — the organizer closes the session.
//
// @Summary      End a table session
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Table id"
// @Success      200 {object}  okResponse
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/tables/{id}/end [post]
func (h *TableHandler) End(c echo.Context) error {
	organizerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.End(c.Request().Context(), c.Param("id"), organizerID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{Message: "table ended"})
}

func toTableResponse(v ports.TableView) tableResponse {
	return tableResponse{
		ID:          v.ID,
		Name:        v.Name,
		Capacity:    v.Capacity,
		DurationMin: v.DurationMin,
		Focus:       v.Focus,
		OrganizerID: v.OrganizerID,
		Members:     v.Members,
		MemberCount: v.MemberCount,
		Open:        v.Open,
		CreatedAt:   v.CreatedAt,
	}
}
