package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/handler"
	"github.com/iliyamo/campus-events/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// and the uploaded file directory.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
	// Load balancers and monitoring hit this to verify the service is up.
	e.GET("/healthz", handler.Health)
	// Uploaded images (logos, poster images, payment proofs) are served
	// straight from the upload directory.
	e.Static("/uploads", uploadDir)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, the token-protected
// session endpoints under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the submitted one is revoked and
	// a new pair is issued.
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret))
	auth.POST("/logout", a.Logout)
	auth.POST("/verify-email", a.VerifyEmail)
	auth.POST("/resend-verification", a.ResendVerification)
}

// RegisterPublic registers unauthenticated browse endpoints.  Guests can
// explore clubs, events, posters and the post feed without an account;
// every mutation requires one.
func RegisterPublic(e *echo.Echo, clubs *handler.ClubHandler, events *handler.EventHandler, posters *handler.PosterHandler, posts *handler.PostHandler) {
	e.GET("/v1/clubs", clubs.List)
	e.GET("/v1/clubs/:id", clubs.Get)
	e.GET("/v1/clubs/:id/events", events.ListByClub)
	e.GET("/v1/clubs/:id/posters", posters.ListByClub)
	e.GET("/v1/clubs/:id/posts", posts.ListByClub)
	e.GET("/v1/events", events.List)
	e.GET("/v1/events/:id", events.Get)
	e.GET("/v1/events/:id/comments", events.ListComments)
	e.GET("/v1/posters", posters.List)
	e.GET("/v1/posters/:id", posters.Get)
	e.GET("/v1/posts", posts.List)
	e.GET("/v1/posts/:id", posts.Get)
}
