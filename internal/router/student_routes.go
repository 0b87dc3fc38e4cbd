package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/handler"
	"github.com/iliyamo/campus-events/internal/middleware"
	"github.com/iliyamo/campus-events/internal/model"
)

// RegisterStudent registers the endpoints available to every
// authenticated user regardless of role: profile, club applications,
// subscriptions, ratings, likes, comments, ticket booking and the
// personal calendar.
func RegisterStudent(e *echo.Echo, jwtSecret string,
	profile *handler.ProfileHandler,
	clubRequests *handler.ClubRequestHandler,
	eventRequests *handler.EventRequestHandler,
	clubs *handler.ClubHandler,
	events *handler.EventHandler,
	posts *handler.PostHandler,
	tickets *handler.TicketHandler,
	calendar *handler.CalendarHandler,
) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole())

	// Profile and notifications.
	g.GET("/me", profile.Me)
	g.PUT("/me", profile.UpdateMe)
	g.GET("/me/notifications", profile.ListNotifications)
	g.POST("/me/notifications/:id/read", profile.MarkNotificationRead)
	g.GET("/me/subscriptions", clubs.MySubscriptions)

	// Club applications.  Only students apply: a head admin already runs
	// a club and a super admin resolves requests, so neither may submit.
	// The reads stay on the any-role group.
	studentOnly := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleStudent))
	studentOnly.POST("/club-requests", clubRequests.Submit)
	g.GET("/club-requests/mine", clubRequests.ListMine)
	g.GET("/club-requests/:id", clubRequests.Get)
	// Readable by the submitter and super admins; the handler decides.
	g.GET("/event-requests/:id", eventRequests.Get)

	// Social actions on clubs, events and posts.
	g.POST("/clubs/:id/subscribe", clubs.Subscribe)
	g.DELETE("/clubs/:id/subscribe", clubs.Unsubscribe)
	g.POST("/clubs/:id/rating", clubs.Rate)
	g.POST("/events/:id/comments", events.AddComment)
	g.DELETE("/comments/:id", events.DeleteComment)
	g.POST("/posts/:id/like", posts.Like)

	// Ticket booking against poster seat inventory.
	g.POST("/posters/:id/book", tickets.Book)
	g.GET("/tickets/mine", tickets.ListMine)
	g.GET("/tickets/:id", tickets.Get)

	// Merged calendar and personal entries.
	g.GET("/me/calendar", calendar.Get)
	g.POST("/me/calendar/events", calendar.CreatePersonal)
	g.GET("/me/calendar/events", calendar.ListPersonal)
	g.PUT("/me/calendar/events/:id", calendar.UpdatePersonal)
	g.DELETE("/me/calendar/events/:id", calendar.DeletePersonal)
}
