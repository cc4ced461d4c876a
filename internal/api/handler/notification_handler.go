package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pokerface/networking-api/internal/core/domain"
	"github.com/pokerface/networking-api/internal/core/ports"
)

// NotificationHandler exposes the per-user notification feed. The feed is
// read-and-dismiss only from here; creation happens exclusively inside the
// core services.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	SenderID   string    `json:"sender_id,omitempty"`
	SenderName string    `json:"sender_name,omitempty"`
	ActionURL  string    `json:"action_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Read       bool      `json:"read"`
}

type feedResponse struct {
	Items  []notificationResponse `json:"items"`
	Unread int64                  `json:"unread"`
}

type markAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// List handles GET /v1/notifications — the caller's feed, most recent first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  feedResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	recipientID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	feed, err := h.service.List(c.Request().Context(), recipientID)
	if err != nil {
		return err
	}

	items := make([]notificationResponse, 0, len(feed.Items))
	for _, n := range feed.Items {
		items = append(items, toNotificationResponse(n))
	}
	return c.JSON(http.StatusOK, feedResponse{Items: items, Unread: feed.Unread})
}

// MarkRead handles POST /v1/notifications/:id/read.
//
// @Summary      Mark one notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Notification id"
// @Success      200 {object}  okResponse
// @Failure      404 {object}  map[string]string
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	recipientID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), c.Param("id"), recipientID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{Message: "marked read"})
}

// MarkAllRead handles POST /v1/notifications/read-all. Notifications
// arriving after the call stay unread.
//
// @Summary      Mark the whole feed read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  markAllReadResponse
// @Router       /v1/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	recipientID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	updated, err := h.service.MarkAllRead(c.Request().Context(), recipientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markAllReadResponse{Updated: updated})
}

// Clear handles DELETE /v1/notifications/:id — removes the entry from the
// feed regardless of read state.
//
// @Summary      Clear a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Notification id"
// @Success      200 {object}  okResponse
// @Failure      404 {object}  map[string]string
// @Router       /v1/notifications/{id} [delete]
func (h *NotificationHandler) Clear(c echo.Context) error {
	recipientID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Clear(c.Request().Context(), c.Param("id"), recipientID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{Message: "cleared"})
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:         n.ID,
		Kind:       string(n.Kind),
		Title:      n.Title,
		Message:    n.Message,
		SenderID:   n.SenderID,
		SenderName: n.SenderName,
		ActionURL:  n.ActionURL,
		CreatedAt:  n.CreatedAt,
		Read:       n.Read,
	}
}
