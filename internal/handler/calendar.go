package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/model"
	"github.com/iliyamo/campus-events/internal/repository"
	"github.com/iliyamo/campus-events/internal/utils"
)

// CalendarHandler serves the merged personal calendar: approved ticket
// bookings plus the user's own entries, in one chronological list.
type CalendarHandler struct {
	Tickets  *repository.TicketRepo
	Personal *repository.PersonalEventRepo
}

func NewCalendarHandler(t *repository.TicketRepo, p *repository.PersonalEventRepo) *CalendarHandler {
	return &CalendarHandler{Tickets: t, Personal: p}
}

// CalendarEntry is one row of the merged view.  Kind is "ticket" or
// "personal"; ticket entries carry the event and booking details,
// personal entries just the user's own fields.
type CalendarEntry struct {
	Kind        string    `json:"kind"`
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	TicketID    uint64    `json:"ticket_id,omitempty"`
	EventID     uint64    `json:"event_id,omitempty"`
	Persons     uint32    `json:"persons,omitempty"`
	PersonalID  uint64    `json:"personal_id,omitempty"`
}

// MergeCalendar combines approved bookings and personal events into one
// list sorted by date ascending.  Ties keep tickets before personal
// entries so the order is stable across calls.
func MergeCalendar(tickets []repository.CalendarTicket, personal []model.PersonalEvent) []CalendarEntry {
	out := make([]CalendarEntry, 0, len(tickets)+len(personal))
	for _, t := range tickets {
		out = append(out, CalendarEntry{
			Kind:     "ticket",
			Date:     t.Date,
			Name:     t.EventName,
			Location: t.Location,
			TicketID: t.TicketID,
			EventID:  t.EventID,
			Persons:  t.Persons,
		})
	}
	for _, p := range personal {
		out = append(out, CalendarEntry{
			Kind:        "personal",
			Date:        p.Date,
			Name:        p.Name,
			Description: p.Description,
			PersonalID:  p.ID,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Kind == "ticket" && out[j].Kind == "personal"
	})
	return out
}

// Get handles GET /v1/me/calendar.
func (h *CalendarHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListApprovedForCalendar(ctx, uid)
	if err != nil {
		return storeFail(c, err, "calendar not found")
	}
	personal, err := h.Personal.ListByUser(ctx, uid)
	if err != nil {
		return storeFail(c, err, "calendar not found")
	}
	entries := MergeCalendar(tickets, personal)
	return c.JSON(http.StatusOK, echo.Map{"items": entries, "count": len(entries)})
}

type personalEventReq struct {
	Name        string    `json:"name" validate:"required,max=150"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
}

// CreatePersonal handles POST /v1/me/calendar/events.
func (h *CalendarHandler) CreatePersonal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req personalEventReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return failErr(c, http.StatusBadRequest, "invalid body", err.Error())
	}
	id, err := h.Personal.Create(c.Request().Context(), uid, req.Name, req.Description, req.Date)
	if err != nil {
		return storeFail(c, err, "personal event not found")
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "personal event created"})
}

// ListPersonal handles GET /v1/me/calendar/events.
func (h *CalendarHandler) ListPersonal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	items, err := h.Personal.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return storeFail(c, err, "personal events not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// UpdatePersonal handles PUT /v1/me/calendar/events/:id.
func (h *CalendarHandler) UpdatePersonal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	var req personalEventReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return failErr(c, http.StatusBadRequest, "invalid body", err.Error())
	}
	if err := h.Personal.Update(c.Request().Context(), id, uid, req.Name, req.Description, req.Date); err != nil {
		return storeFail(c, err, "personal event not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "personal event updated"})
}

// DeletePersonal handles DELETE /v1/me/calendar/events/:id.
func (h *CalendarHandler) DeletePersonal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	if err := h.Personal.Delete(c.Request().Context(), id, uid); err != nil {
		return storeFail(c, err, "personal event not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "personal event deleted"})
}
