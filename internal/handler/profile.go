package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/repository"
	"github.com/iliyamo/campus-events/internal/utils"
)

// ProfileHandler serves the current user's profile and notifications.
type ProfileHandler struct {
	Users         *repository.UserRepo
	Notifications *repository.NotificationRepo
}

func NewProfileHandler(u *repository.UserRepo, n *repository.NotificationRepo) *ProfileHandler {
	return &ProfileHandler{Users: u, Notifications: n}
}

type profileResp struct {
	ID              uint64     `json:"id"`
	Name            string     `json:"name"`
	Surname         string     `json:"surname"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Phone           *string    `json:"phone,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	IsEmailVerified bool       `json:"is_email_verified"`
}

type updateProfileReq struct {
	Name      string     `json:"name" validate:"required,max=100"`
	Surname   string     `json:"surname" validate:"required,max=100"`
	Phone     *string    `json:"phone"`
	Gender    *string    `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
}

// Me handles GET /v1/me.
func (h *ProfileHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if err != nil {
		return storeFail(c, err, "user not found")
	}
	return c.JSON(http.StatusOK, profileResp{
		ID: u.ID, Name: u.Name, Surname: u.Surname, Email: u.Email, Role: u.Role,
		Phone: u.Phone, Gender: u.Gender, BirthDate: u.BirthDate,
		IsEmailVerified: u.IsEmailVerified,
	})
}

// UpdateMe handles PUT /v1/me.
func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return failErr(c, http.StatusBadRequest, "invalid body", err.Error())
	}
	if err := h.Users.UpdateProfile(c.Request().Context(), uid, req.Name, req.Surname, req.Phone, req.Gender, req.BirthDate); err != nil {
		return storeFail(c, err, "user not found")
	}
	return h.Me(c)
}

// ListNotifications handles GET /v1/me/notifications.
func (h *ProfileHandler) ListNotifications(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	items, err := h.Notifications.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return storeFail(c, err, "notifications not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// MarkNotificationRead handles POST /v1/me/notifications/:id/read.
func (h *ProfileHandler) MarkNotificationRead(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid notification id")
	}
	if err := h.Notifications.MarkRead(c.Request().Context(), id, uid); err != nil {
		return storeFail(c, err, "notification not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "marked read"})
}
