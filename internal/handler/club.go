package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/repository"
	"github.com/iliyamo/campus-events/internal/storage"
)

// ClubHandler serves live clubs plus the social actions hanging off them
// (subscriptions and ratings).
type ClubHandler struct {
	Clubs         *repository.ClubRepo
	Subscriptions *repository.SubscriptionRepo
	Ratings       *repository.RatingRepo
	Uploads       *storage.Store
}

func NewClubHandler(c *repository.ClubRepo, s *repository.SubscriptionRepo, r *repository.RatingRepo, u *storage.Store) *ClubHandler {
	return &ClubHandler{Clubs: c, Subscriptions: s, Ratings: r, Uploads: u}
}

// List handles GET /v1/clubs.
func (h *ClubHandler) List(c echo.Context) error {
	items, err := h.Clubs.List(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "clubs not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/clubs/:id.
func (h *ClubHandler) Get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}
	club, err := h.Clubs.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "club not found")
	}
	return c.JSON(http.StatusOK, club)
}

// Mine handles GET /v1/clubs/mine (head admin).
func (h *ClubHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	club, err := h.Clubs.GetByHead(c.Request().Context(), uid)
	if err != nil {
		return storeFail(c, err, "club not found")
	}
	return c.JSON(http.StatusOK, club)
}

// Update handles PUT /v1/clubs/:id (head admin).  Multipart form with
// description and an optional replacement logo.
func (h *ClubHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Clubs.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "club not found")
	}

	description := strings.TrimSpace(c.FormValue("description"))
	logoURL := current.LogoURL
	var uploaded string
	if fh, err := c.FormFile("logo"); err == nil {
		url, err := h.Uploads.SaveImage(fh)
		if err != nil {
			return uploadFail(c, err)
		}
		uploaded = url
		logoURL = &url
	}

	if err := h.Clubs.UpdateByHead(ctx, id, uid, description, logoURL); err != nil {
		if uploaded != "" {
			h.Uploads.Remove(uploaded)
		}
		return storeFail(c, err, "club not found")
	}
	if uploaded != "" && current.LogoURL != nil && *current.LogoURL != uploaded {
		h.Uploads.Remove(*current.LogoURL)
	}
	club, err := h.Clubs.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "club not found")
	}
	return c.JSON(http.StatusOK, club)
}

// Delete handles DELETE /v1/admin/clubs/:id (super admin).  Removes the
// club and everything under it; the former head becomes a student again.
func (h *ClubHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if err := h.Clubs.Delete(ctx, id); err != nil {
		return storeFail(c, err, "club not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "club deleted"})
}

// Subscribe handles POST /v1/clubs/:id/subscribe.  Idempotent.
func (h *ClubHandler) Subscribe(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}
	if err := h.Subscriptions.Subscribe(c.Request().Context(), id, uid); err != nil {
		return storeFail(c, err, "club not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "subscribed"})
}

// Unsubscribe handles DELETE /v1/clubs/:id/subscribe.
func (h *ClubHandler) Unsubscribe(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}
	if err := h.Subscriptions.Unsubscribe(c.Request().Context(), id, uid); err != nil {
		return storeFail(c, err, "subscription not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "unsubscribed"})
}

// MySubscriptions handles GET /v1/me/subscriptions.
func (h *ClubHandler) MySubscriptions(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ids, err := h.Subscriptions.ListForUser(c.Request().Context(), uid)
	if err != nil {
		return storeFail(c, err, "subscriptions not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"club_ids": ids, "count": len(ids)})
}

type rateReq struct {
	Score int `json:"score"`
}

// Rate handles POST /v1/clubs/:id/rating.  Score is 1..5; a repeat
// submission replaces the caller's previous score.
func (h *ClubHandler) Rate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Score < 1 || req.Score > 5 {
		return fail(c, http.StatusBadRequest, "score must be between 1 and 5")
	}
	rating, err := h.Ratings.Rate(c.Request().Context(), id, uid, req.Score)
	if err != nil {
		return storeFail(c, err, "club not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rating saved", "club_rating": rating})
}
