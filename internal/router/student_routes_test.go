package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-events/internal/handler"
	"github.com/iliyamo/campus-events/internal/model"
	"github.com/iliyamo/campus-events/internal/utils"
)

const testSecret = "router-test-secret"

func newStudentRouter(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	RegisterStudent(e, testSecret,
		handler.NewProfileHandler(nil, nil),
		handler.NewClubRequestHandler(nil, nil),
		handler.NewEventRequestHandler(nil),
		handler.NewClubHandler(nil, nil, nil, nil),
		handler.NewEventHandler(nil, nil),
		handler.NewPostHandler(nil, nil),
		handler.NewTicketHandler(nil, nil, nil),
		handler.NewCalendarHandler(nil, nil),
	)
	return e
}

func submitClubRequestAs(t *testing.T, e *echo.Echo, role string) *httptest.ResponseRecorder {
	t.Helper()
	at, err := utils.NewAccessToken(testSecret, 1, role, 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/club-requests", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestClubRequestSubmitStudentsOnly(t *testing.T) {
	e := newStudentRouter(t)

	// Non-students are stopped by the role gate before the handler runs.
	for _, role := range []string{model.RoleHeadAdmin, model.RoleSuperAdmin} {
		rec := submitClubRequestAs(t, e, role)
		assert.Equal(t, http.StatusForbidden, rec.Code, "role %s", role)
	}

	// A student passes the gate; the empty form then fails validation,
	// which proves the handler itself was reached.
	rec := submitClubRequestAs(t, e, model.RoleStudent)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name required")
}
