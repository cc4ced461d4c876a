package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokerface/networking-api/internal/api/metrics"
	"github.com/pokerface/networking-api/internal/core/ports"
)

// CardHandler handles profile card and reveal protocol operations.
type CardHandler struct {
	service ports.RevealService
}

func NewCardHandler(service ports.RevealService) *CardHandler {
	return &CardHandler{service: service}
}

// Create handles POST /v1/cards — the caller adds a card to their own profile.
//
// @Summary      Add a profile card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCardRequest  true  "Card details"
// @Success      201   {object}  cardResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/cards [post]
func (h *CardHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.AddCard(c.Request().Context(), ports.AddCardInput{
		OwnerID:     userID,
		Kind:        req.Kind,
		Name:        req.Name,
		Description: req.Description,
		Level:       req.Level,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCardResponse(*view))
}

// ListForUser handles GET /v1/users/:id/cards — cards with visibility
// computed for the caller; hidden cards come back face-down.
//
// @Summary      List a user's cards as seen by the caller
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Card owner's user id"
// @Success      200 {array}   cardResponse
// @Failure      404 {object}  map[string]string
// @Router       /v1/users/{id}/cards [get]
func (h *CardHandler) ListForUser(c echo.Context) error {
	viewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListCards(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return err
	}

	resp := make([]cardResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toCardResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// RequestReveal handles POST /v1/cards/:id/reveal-requests. Repeating the
// request while one is pending returns the existing request id with 200
// instead of creating a duplicate.
//
// @Summary      Request a reveal of a hidden card
// @Tags         reveals
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Card id"
// @Success      200 {object}  revealRequestResponse
// @Success      201 {object}  revealRequestResponse
// @Failure     404 {object}  map[string]string
// @Failure     422 {object}  map[string]string
// @Router      /v1/cards/{id}/reveal-requests [post]
func (h *CardHandler) RequestReveal(c echo.Context) error {
	requesterID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.RequestReveal(c.Request().Context(), c.Param("id"), requesterID)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	label := "created"
	if result.AlreadyPending {
		status = http.StatusOK
		label = "duplicate"
	}
	metrics.RevealRequestsTotal.WithLabelValues(label).Inc()

	return c.JSON(status, revealRequestResponse{
		RequestID:      result.RequestID,
		AlreadyPending: result.AlreadyPending,
	})
}

// Respond handles POST /v1/reveal-requests/:id/respond — the card owner
// accepts or declines a pending request.
//
// @Summary      Respond to a reveal request
// @Tags         reveals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Reveal request id"
// @Param        body  body      respondRequest  true  "Accept or decline"
// @Success      200   {object}  respondResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/reveal-requests/{id}/respond [post]
func (h *CardHandler) Respond(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Respond(c.Request().Context(), c.Param("id"), ownerID, req.Accept)
	if err != nil {
		return err
	}

	metrics.RevealResponsesTotal.WithLabelValues(result.Status).Inc()
	if result.MatchAnnounced {
		metrics.MatchesAnnouncedTotal.Inc()
	}

	return c.JSON(http.StatusOK, respondResponse{
		Status:         result.Status,
		Visibility:     result.Visibility,
		MatchAnnounced: result.MatchAnnounced,
	})
}

// Retract handles POST /v1/cards/:id/retract — the owner hides the card
// from every viewer again.
//
// @Summary      Retract a card's reveals
// @Tags         reveals
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Card id"
// @Success      200 {object}  okResponse
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/cards/{id}/retract [post]
func (h *CardHandler) Retract(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Retract(c.Request().Context(), c.Param("id"), ownerID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, okResponse{Message: "card retracted"})
}

func toCardResponse(v ports.CardView) cardResponse {
	return cardResponse{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Kind:        v.Kind,
		Name:        v.Name,
		Description: v.Description,
		Level:       v.Level,
		Visibility:  v.Visibility,
		CreatedAt:   v.CreatedAt,
	}
}
