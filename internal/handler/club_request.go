package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/model"
	"github.com/iliyamo/campus-events/internal/queue"
	"github.com/iliyamo/campus-events/internal/repository"
	queue_publisher "github.com/iliyamo/campus-events/internal/service"
	"github.com/iliyamo/campus-events/internal/storage"
)

// ClubRequestHandler covers the club application workflow: students
// submit, super admins resolve.
type ClubRequestHandler struct {
	Requests *repository.ClubRequestRepo
	Uploads  *storage.Store
}

func NewClubRequestHandler(r *repository.ClubRequestRepo, s *storage.Store) *ClubRequestHandler {
	return &ClubRequestHandler{Requests: r, Uploads: s}
}

// Submit handles POST /v1/club-requests.  Multipart form with name,
// description and an optional logo image.
func (h *ClubRequestHandler) Submit(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	name := strings.TrimSpace(c.FormValue("name"))
	description := strings.TrimSpace(c.FormValue("description"))
	if name == "" || len(name) > 150 {
		return fail(c, http.StatusBadRequest, "name required (max 150 chars)")
	}

	var logoURL *string
	if fh, err := c.FormFile("logo"); err == nil {
		url, err := h.Uploads.SaveImage(fh)
		if err != nil {
			return uploadFail(c, err)
		}
		logoURL = &url
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Requests.Create(ctx, uid, name, description, logoURL)
	if err != nil {
		if logoURL != nil {
			h.Uploads.Remove(*logoURL)
		}
		return storeFail(c, err, "club request not found")
	}
	req, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "club request not found")
	}
	return c.JSON(http.StatusCreated, req)
}

// ListMine handles GET /v1/club-requests/mine.
func (h *ClubRequestHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	items, err := h.Requests.ListByRequester(c.Request().Context(), uid)
	if err != nil {
		return storeFail(c, err, "club requests not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/club-requests/:id.  Readable by the submitter and
// by super admins.
func (h *ClubRequestHandler) Get(c echo.Context) error {
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
		return storeFail(c, err, "club request not found")
	}
	if req.RequesterID != uid && getRole(c) != model.RoleSuperAdmin {
		return fail(c, http.StatusForbidden, "forbidden")
	}
	return c.JSON(http.StatusOK, req)
}

// ListAll handles GET /v1/admin/club-requests (super admin).
func (h *ClubRequestHandler) ListAll(c echo.Context) error {
	items, err := h.Requests.ListAll(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "club requests not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Approve handles POST /v1/admin/club-requests/:id/approve (super admin).
// On success the club exists, the requester is head_admin and a
// notification event goes out.
func (h *ClubRequestHandler) Approve(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid request id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	clubID, req, err := h.Requests.Approve(ctx, id)
	if err != nil {
		return storeFail(c, err, "club request not found")
	}
	notifyRequestResolved(queue.KindClubRequestResolved, req.RequesterID, clubID, req.ID, req.Name, model.StatusApproved)
	return c.JSON(http.StatusOK, echo.Map{"message": "club request approved", "club_id": clubID, "request": req})
}

// Reject handles POST /v1/admin/club-requests/:id/reject (super admin).
func (h *ClubRequestHandler) Reject(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid request id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	req, err := h.Requests.Reject(ctx, id)
	if err != nil {
		return storeFail(c, err, "club request not found")
	}
	notifyRequestResolved(queue.KindClubRequestResolved, req.RequesterID, 0, req.ID, req.Name, model.StatusRejected)
	return c.JSON(http.StatusOK, echo.Map{"message": "club request rejected", "request": req})
}

// notifyRequestResolved publishes a resolution event in the background.
// Broker failures are logged inside the publisher and never surface to
// the request that triggered them.
func notifyRequestResolved(kind string, userID, clubID, requestID uint64, subject, status string) {
	ev := queue.NotificationEvent{
		Kind:       kind,
		UserID:     userID,
		ClubID:     clubID,
		RequestID:  requestID,
		Subject:    subject,
		Status:     status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue_publisher.PublishNotification(ctx, ev); err != nil {
			log.Printf("handler: publish %s for user %d failed: %v", kind, userID, err)
		}
	}()
}

// uploadFail maps storage validation errors onto HTTP responses.
func uploadFail(c echo.Context, err error) error {
	switch err {
	case storage.ErrUnsupportedType:
		return fail(c, http.StatusBadRequest, "unsupported file type")
	case storage.ErrTooLarge:
		return fail(c, http.StatusBadRequest, "file too large")
	}
	return fail(c, http.StatusInternalServerError, "upload failed")
}
