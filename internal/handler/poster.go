package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/repository"
	"github.com/iliyamo/campus-events/internal/storage"
)

// PosterHandler manages the bookable listings head admins publish under
// their approved events.
type PosterHandler struct {
	Posters *repository.PosterRepo
	Tickets *repository.TicketRepo
	Uploads *storage.Store
}

func NewPosterHandler(p *repository.PosterRepo, t *repository.TicketRepo, u *storage.Store) *PosterHandler {
	return &PosterHandler{Posters: p, Tickets: t, Uploads: u}
}

// formUint parses a numeric multipart field.
func formUint(c echo.Context, name string) (uint32, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(c.FormValue(name)), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Create handles POST /v1/posters (head admin).  Multipart form with
// event_id, title, description, seats, price_cents and an optional image.
func (h *PosterHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	eventID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("event_id")), 10, 64)
	if err != nil || eventID == 0 {
		return fail(c, http.StatusBadRequest, "invalid event_id")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" || len(title) > 150 {
		return fail(c, http.StatusBadRequest, "title required (max 150 chars)")
	}
	seats, ok := formUint(c, "seats")
	if !ok || seats == 0 {
		return fail(c, http.StatusBadRequest, "seats must be a positive number")
	}
	priceCents, ok := formUint(c, "price_cents")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid price_cents")
	}
	description := strings.TrimSpace(c.FormValue("description"))

	var imageURL *string
	if fh, err := c.FormFile("image"); err == nil {
		url, err := h.Uploads.SaveImage(fh)
		if err != nil {
			return uploadFail(c, err)
		}
		imageURL = &url
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Posters.Create(ctx, uid, eventID, title, description, imageURL, seats, priceCents)
	if err != nil {
		if imageURL != nil {
			h.Uploads.Remove(*imageURL)
		}
		return storeFail(c, err, "event not found")
	}
	poster, err := h.Posters.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "poster not found")
	}
	return c.JSON(http.StatusCreated, poster)
}

// List handles GET /v1/posters.
func (h *PosterHandler) List(c echo.Context) error {
	items, err := h.Posters.List(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "posters not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/posters/:id.
func (h *PosterHandler) Get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid poster id")
	}
	poster, err := h.Posters.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "poster not found")
	}
	return c.JSON(http.StatusOK, poster)
}

// ListByClub handles GET /v1/clubs/:id/posters.
func (h *PosterHandler) ListByClub(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}
	items, err := h.Posters.ListByClub(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "posters not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Update handles PUT /v1/posters/:id (head admin).  Capacity edits
// re-derive seats_left from the delta; seats already booked stay booked.
func (h *PosterHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid poster id")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" || len(title) > 150 {
		return fail(c, http.StatusBadRequest, "title required (max 150 chars)")
	}
	seats, ok := formUint(c, "seats")
	if !ok || seats == 0 {
		return fail(c, http.StatusBadRequest, "seats must be a positive number")
	}
	priceCents, ok := formUint(c, "price_cents")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid price_cents")
	}
	description := strings.TrimSpace(c.FormValue("description"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Posters.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "poster not found")
	}
	imageURL := current.ImageURL
	var uploaded string
	if fh, err := c.FormFile("image"); err == nil {
		url, err := h.Uploads.SaveImage(fh)
		if err != nil {
			return uploadFail(c, err)
		}
		uploaded = url
		imageURL = &url
	}

	poster, err := h.Posters.UpdateByHead(ctx, id, uid, title, description, imageURL, seats, priceCents)
	if err != nil {
		if uploaded != "" {
			h.Uploads.Remove(uploaded)
		}
		return storeFail(c, err, "poster not found")
	}
	if uploaded != "" && current.ImageURL != nil && *current.ImageURL != uploaded {
		h.Uploads.Remove(*current.ImageURL)
	}
	return c.JSON(http.StatusOK, poster)
}

// Delete handles DELETE /v1/posters/:id (head admin).  Bookings under the
// poster go with it.
func (h *PosterHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid poster id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Posters.DeleteByHead(ctx, id, uid); err != nil {
		return storeFail(c, err, "poster not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "poster deleted"})
}

// ListBookings handles GET /v1/posters/:id/bookings (head admin).
func (h *PosterHandler) ListBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid poster id")
	}
	items, err := h.Tickets.ListByPosterForHead(c.Request().Context(), id, uid)
	if err != nil {
		return storeFail(c, err, "poster not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
