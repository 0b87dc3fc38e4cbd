package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-events/internal/model"
	"github.com/iliyamo/campus-events/internal/utils"
)

const testSecret = "unit-test-secret"

func doRequest(t *testing.T, mw []echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}
	e.GET("/protected", h, mw...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, model.RoleStudent, 1)
	require.NoError(t, err)

	rec := doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"student"`)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec := doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, model.RoleStudent, 1)
	require.NoError(t, err)

	rec := doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsGarbage(t *testing.T) {
	rec := doRequest(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, model.RoleSuperAdmin, 1)
	require.NoError(t, err)

	mw := []echo.MiddlewareFunc{JWTAuth(testSecret), RequireRole(model.RoleSuperAdmin)}
	rec := doRequest(t, mw, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, model.RoleStudent, 1)
	require.NoError(t, err)

	mw := []echo.MiddlewareFunc{JWTAuth(testSecret), RequireRole(model.RoleSuperAdmin)}
	rec := doRequest(t, mw, "Bearer "+at.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleEmptyMeansAnyAuthenticated(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, model.RoleHeadAdmin, 1)
	require.NoError(t, err)

	mw := []echo.MiddlewareFunc{JWTAuth(testSecret), RequireRole()}
	rec := doRequest(t, mw, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
