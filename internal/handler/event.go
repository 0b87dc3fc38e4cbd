package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/repository"
)

// EventHandler serves live events and their comments.
type EventHandler struct {
	Events   *repository.EventRepo
	Comments *repository.CommentRepo
}

func NewEventHandler(e *repository.EventRepo, c *repository.CommentRepo) *EventHandler {
	return &EventHandler{Events: e, Comments: c}
}

// List handles GET /v1/events.
func (h *EventHandler) List(c echo.Context) error {
	items, err := h.Events.List(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "events not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	ev, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "event not found")
	}
	return c.JSON(http.StatusOK, ev)
}

// ListByClub handles GET /v1/clubs/:id/events.
func (h *EventHandler) ListByClub(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}
	items, err := h.Events.ListByClub(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "events not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

type commentReq struct {
	Text string `json:"text"`
}

// AddComment handles POST /v1/events/:id/comments.
func (h *EventHandler) AddComment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" || len(req.Text) > 2000 {
		return fail(c, http.StatusBadRequest, "text required (max 2000 chars)")
	}
	commentID, err := h.Comments.Create(c.Request().Context(), id, uid, req.Text)
	if err != nil {
		return storeFail(c, err, "event not found")
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": commentID, "message": "comment added"})
}

// ListComments handles GET /v1/events/:id/comments.
func (h *EventHandler) ListComments(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	items, err := h.Comments.ListByEvent(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "comments not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// DeleteComment handles DELETE /v1/comments/:id.  Authors only.
func (h *EventHandler) DeleteComment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid comment id")
	}
	if err := h.Comments.DeleteByAuthor(c.Request().Context(), id, uid); err != nil {
		return storeFail(c, err, "comment not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment deleted"})
}
