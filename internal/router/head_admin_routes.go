package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/handler"
	"github.com/iliyamo/campus-events/internal/middleware"
	"github.com/iliyamo/campus-events/internal/model"
)

// RegisterHeadAdmin registers the club-management endpoints.  All routes
// require the head_admin role; ownership of the specific club, event or
// poster is enforced in the repositories.
func RegisterHeadAdmin(e *echo.Echo, jwtSecret string,
	clubs *handler.ClubHandler,
	eventRequests *handler.EventRequestHandler,
	posters *handler.PosterHandler,
	posts *handler.PostHandler,
	tickets *handler.TicketHandler,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleHeadAdmin),
	)

	// Own club management.
	g.GET("/clubs/mine", clubs.Mine)
	g.PUT("/clubs/:id", clubs.Update)

	// Event proposals for the head's own club.  The detail read lives on
	// the any-role group so super admins can inspect a request too.
	g.POST("/event-requests", eventRequests.Submit)
	g.GET("/event-requests/mine", eventRequests.ListMine)

	// Posters under approved events.
	g.POST("/posters", posters.Create)
	g.PUT("/posters/:id", posters.Update)
	g.DELETE("/posters/:id", posters.Delete)
	g.GET("/posters/:id/bookings", posters.ListBookings)

	// Booking resolution.
	g.POST("/tickets/:id/approve", tickets.Approve)
	g.POST("/tickets/:id/reject", tickets.Reject)

	// Club posts.
	g.POST("/posts", posts.Create)
	g.PUT("/posts/:id", posts.Update)
	g.DELETE("/posts/:id", posts.Delete)
}
