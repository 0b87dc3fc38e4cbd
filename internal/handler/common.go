package handler // handler defines http handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  The JWT middleware stores the raw claim, which the jwt library
// decodes as float64 for numeric subjects.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim stored by the JWT middleware, or an
// empty string when absent.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// fail writes the uniform error body with just a message.
func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"message": msg})
}

// failErr writes the uniform error body with a short detail string.
// Internal errors never carry the underlying error text; callers pass a
// sanitized detail instead.
func failErr(c echo.Context, code int, msg, detail string) error {
	return c.JSON(code, echo.Map{"message": msg, "error": detail})
}

// storeFail maps repository sentinel errors onto HTTP responses.  The
// notFoundMsg names the entity so 404 bodies stay specific.
func storeFail(c echo.Context, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fail(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, repository.ErrInvalidState):
		var se *repository.StateError
		if errors.As(err, &se) {
			return fail(c, http.StatusConflict, "request already "+se.Current)
		}
		return fail(c, http.StatusConflict, "already resolved")
	case errors.Is(err, repository.ErrInsufficientSeats):
		return fail(c, http.StatusBadRequest, "not enough seats left")
	case errors.Is(err, repository.ErrConflict):
		return fail(c, http.StatusConflict, "conflicting state")
	case errors.Is(err, repository.ErrEmailExists):
		return fail(c, http.StatusConflict, "email already exists")
	case errors.Is(err, repository.ErrClubNameExists):
		return fail(c, http.StatusConflict, "club name already exists")
	}
	return fail(c, http.StatusInternalServerError, "database error")
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
