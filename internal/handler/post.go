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

// PostHandler serves the club post feed and the like toggle.
type PostHandler struct {
	Posts   *repository.PostRepo
	Uploads *storage.Store
}

func NewPostHandler(p *repository.PostRepo, u *storage.Store) *PostHandler {
	return &PostHandler{Posts: p, Uploads: u}
}

// Create handles POST /v1/posts (head admin).  Multipart form with text
// and an optional image; the post lands on the caller's club.
func (h *PostHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	text := strings.TrimSpace(c.FormValue("text"))
	if text == "" || len(text) > 5000 {
		return fail(c, http.StatusBadRequest, "text required (max 5000 chars)")
	}
	var imageURL *string
	if fh, err := c.FormFile("image"); err == nil {
		url, err := h.Uploads.SaveImage(fh)
		if err != nil {
			return uploadFail(c, err)
		}
		imageURL = &url
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Posts.Create(ctx, uid, text, imageURL)
	if err != nil {
		if imageURL != nil {
			h.Uploads.Remove(*imageURL)
		}
		return storeFail(c, err, "club not found")
	}
	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "post not found")
	}
	return c.JSON(http.StatusCreated, post)
}

// List handles GET /v1/posts.
func (h *PostHandler) List(c echo.Context) error {
	items, err := h.Posts.List(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "posts not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/posts/:id.
func (h *PostHandler) Get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}
	post, err := h.Posts.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// ListByClub handles GET /v1/clubs/:id/posts.
func (h *PostHandler) ListByClub(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid club id")
	}
	items, err := h.Posts.ListByClub(c.Request().Context(), id)
	if err != nil {
		return storeFail(c, err, "posts not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Update handles PUT /v1/posts/:id (head admin, author only).
func (h *PostHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}
	text := strings.TrimSpace(c.FormValue("text"))
	if text == "" || len(text) > 5000 {
		return fail(c, http.StatusBadRequest, "text required (max 5000 chars)")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "post not found")
	}
	imageURL := current.ImageURL
	var uploaded string
	if fh, err := c.FormFile("image"); err == nil {
		url, err := h.Uploads.SaveImage(fh)
		if err != nil {
			return uploadFail(c, err)
		}
		uploaded = url
		imageURL = &url
	}

	if err := h.Posts.UpdateByAuthor(ctx, id, uid, text, imageURL); err != nil {
		if uploaded != "" {
			h.Uploads.Remove(uploaded)
		}
		return storeFail(c, err, "post not found")
	}
	if uploaded != "" && current.ImageURL != nil && *current.ImageURL != uploaded {
		h.Uploads.Remove(*current.ImageURL)
	}
	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		return storeFail(c, err, "post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /v1/posts/:id (head admin, author only).
func (h *PostHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}
	if err := h.Posts.DeleteByAuthor(c.Request().Context(), id, uid); err != nil {
		return storeFail(c, err, "post not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "post deleted"})
}

// Like handles POST /v1/posts/:id/like.  Toggles: first call likes, the
// next unlikes.
func (h *PostHandler) Like(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}
	liked, likes, err := h.Posts.ToggleLike(c.Request().Context(), id, uid)
	if err != nil {
		return storeFail(c, err, "post not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "likes": likes})
}
