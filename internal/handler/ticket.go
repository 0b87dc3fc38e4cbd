package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/model"
	"github.com/iliyamo/campus-events/internal/queue"
	"github.com/iliyamo/campus-events/internal/repository"
	queue_publisher "github.com/iliyamo/campus-events/internal/service"
	"github.com/iliyamo/campus-events/internal/storage"
)

// TicketHandler drives the booking state machine: students book against a
// poster's seat inventory, the poster's head admin approves or rejects.
type TicketHandler struct {
	Tickets *repository.TicketRepo
	Posters *repository.PosterRepo
	Uploads *storage.Store
}

func NewTicketHandler(t *repository.TicketRepo, p *repository.PosterRepo, u *storage.Store) *TicketHandler {
	return &TicketHandler{Tickets: t, Posters: p, Uploads: u}
}

// Book handles POST /v1/posters/:id/book.  Multipart form with
// number_of_persons and a mandatory payment_proof image.  Seats are
// reserved immediately; a later rejection returns them.
func (h *TicketHandler) Book(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	posterID, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid poster id")
	}
	persons, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("number_of_persons")), 10, 32)
	if err != nil || persons == 0 {
		return fail(c, http.StatusBadRequest, "number_of_persons must be a positive number")
	}
	fh, err := c.FormFile("payment_proof")
	if err != nil {
		return fail(c, http.StatusBadRequest, "payment_proof required")
	}
	proofURL, err := h.Uploads.SaveImage(fh)
	if err != nil {
		return uploadFail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Tickets.Book(ctx, posterID, uid, uint32(persons), proofURL)
	if err != nil {
		h.Uploads.Remove(proofURL)
		return storeFail(c, err, "poster not found")
	}
	booking, err := h.Tickets.GetByIDForUser(ctx, id, uid)
	if err != nil {
		return storeFail(c, err, "booking not found")
	}
	return c.JSON(http.StatusCreated, booking)
}

// ListMine handles GET /v1/tickets/mine.
func (h *TicketHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	items, err := h.Tickets.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return storeFail(c, err, "bookings not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/tickets/:id.  Owners only.
func (h *TicketHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid ticket id")
	}
	booking, err := h.Tickets.GetByIDForUser(c.Request().Context(), id, uid)
	if err != nil {
		return storeFail(c, err, "booking not found")
	}
	return c.JSON(http.StatusOK, booking)
}

// Approve handles POST /v1/tickets/:id/approve (head admin).
func (h *TicketHandler) Approve(c echo.Context) error {
	return h.resolve(c, model.StatusApproved)
}

// Reject handles POST /v1/tickets/:id/reject (head admin).  The booking's
// seats go back to the poster.
func (h *TicketHandler) Reject(c echo.Context) error {
	return h.resolve(c, model.StatusRejected)
}

func (h *TicketHandler) resolve(c echo.Context, status string) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid ticket id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var booking model.TicketBooking
	if status == model.StatusApproved {
		booking, err = h.Tickets.Approve(ctx, id, uid)
	} else {
		booking, err = h.Tickets.Reject(ctx, id, uid)
	}
	if err != nil {
		return storeFail(c, err, "booking not found")
	}

	kind := queue.KindTicketApproved
	if status == model.StatusRejected {
		kind = queue.KindTicketRejected
	}
	subject := ""
	var clubID uint64
	if poster, err := h.Posters.GetByID(ctx, booking.PosterID); err == nil {
		subject = poster.Title
		clubID = poster.ClubID
	}
	ev := queue.NotificationEvent{
		Kind:       kind,
		UserID:     booking.UserID,
		ClubID:     clubID,
		TicketID:   booking.ID,
		Subject:    subject,
		Status:     status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		if err := queue_publisher.PublishNotification(pctx, ev); err != nil {
			log.Printf("handler: publish %s for ticket %d failed: %v", kind, booking.ID, err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "booking " + status, "booking": booking})
}
