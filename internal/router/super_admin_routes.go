package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/handler"
	"github.com/iliyamo/campus-events/internal/middleware"
	"github.com/iliyamo/campus-events/internal/model"
)

// RegisterSuperAdmin registers the administrative endpoints under
// /v1/admin: request resolution and club removal.
func RegisterSuperAdmin(e *echo.Echo, jwtSecret string,
	clubRequests *handler.ClubRequestHandler,
	eventRequests *handler.EventRequestHandler,
	clubs *handler.ClubHandler,
) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSuperAdmin),
	)

	g.GET("/club-requests", clubRequests.ListAll)
	g.POST("/club-requests/:id/approve", clubRequests.Approve)
	g.POST("/club-requests/:id/reject", clubRequests.Reject)

	g.GET("/event-requests", eventRequests.ListAll)
	g.POST("/event-requests/:id/approve", eventRequests.Approve)
	g.POST("/event-requests/:id/reject", eventRequests.Reject)

	// Cascade delete: the club, its events, posters, bookings, posts and
	// social records all go, and the head reverts to student.
	g.DELETE("/clubs/:id", clubs.Delete)
}
