package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/model"
	"github.com/iliyamo/campus-events/internal/queue"
	"github.com/iliyamo/campus-events/internal/repository"
	"github.com/iliyamo/campus-events/internal/utils"
)

// EventRequestHandler covers the event proposal workflow: head admins
// submit for their own club, super admins resolve.
type EventRequestHandler struct {
	Requests *repository.EventRequestRepo
}

func NewEventRequestHandler(r *repository.EventRequestRepo) *EventRequestHandler {
	return &EventRequestHandler{Requests: r}
}

type eventRequestReq struct {
	ClubID      uint64    `json:"club_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=150"`
	Description string    `json:"description"`
	Location    string    `json:"location" validate:"required,max=200"`
	Date        time.Time `json:"date" validate:"required"`
}

// Submit handles POST /v1/event-requests (head admin).
func (h *EventRequestHandler) Submit(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req eventRequestReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return failErr(c, http.StatusBadRequest, "invalid body", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Requests.Create(ctx, uid, req.ClubID, req.Name, req.Description, req.Location, req.Date)
	if err != nil {
		return storeFail(c, err, "club not found")
	}
	out, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "event request not found")
	}
	return c.JSON(http.StatusCreated, out)
}

// ListMine handles GET /v1/event-requests/mine (head admin).
func (h *EventRequestHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	items, err := h.Requests.ListByRequester(c.Request().Context(), uid)
	if err != nil {
		return storeFail(c, err, "event requests not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/event-requests/:id.  Readable by the submitter and
// by super admins.
func (h *EventRequestHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid request id")
	}
	req, err := h.Requests.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "event request not found")
	}
	if req.RequesterID != uid && getRole(c) != model.RoleSuperAdmin {
		return fail(c, http.StatusForbidden, "forbidden")
	}
	return c.JSON(http.StatusOK, req)
}

// ListAll handles GET /v1/admin/event-requests (super admin).
func (h *EventRequestHandler) ListAll(c echo.Context) error {
	items, err := h.Requests.ListAll(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "event requests not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Approve handles POST /v1/admin/event-requests/:id/approve (super admin).
func (h *EventRequestHandler) Approve(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid request id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	eventID, req, err := h.Requests.Approve(ctx, id)
	if err != nil {
		return storeFail(c, err, "event request not found")
	}
	notifyRequestResolved(queue.KindEventRequestResolved, req.RequesterID, req.ClubID, req.ID, req.Name, model.StatusApproved)
	return c.JSON(http.StatusOK, echo.Map{"message": "event request approved", "event_id": eventID, "request": req})
}

// Reject handles POST /v1/admin/event-requests/:id/reject (super admin).
func (h *EventRequestHandler) Reject(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid request id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	req, err := h.Requests.Reject(ctx, id)
	if err != nil {
		return storeFail(c, err, "event request not found")
	}
	notifyRequestResolved(queue.KindEventRequestResolved, req.RequesterID, req.ClubID, req.ID, req.Name, model.StatusRejected)
	return c.JSON(http.StatusOK, echo.Map{"message": "event request rejected", "request": req})
}
