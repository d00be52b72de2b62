package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/movietix/backend/internal/model"
	"github.com/movietix/backend/internal/repository"
)

// MovieHandler serves the admin movie and banner endpoints.  Poster
// and banner images arrive as multipart uploads and are stored under
// the public asset directory.
type MovieHandler struct {
	Movies    *repository.MovieRepo
	PublicDir string
}

func NewMovieHandler(movies *repository.MovieRepo, publicDir string) *MovieHandler {
	return &MovieHandler{Movies: movies, PublicDir: publicDir}
}

// saveUpload stores an uploaded file under <PublicDir>/<sub>/ with a
// random name, returning the path relative to PublicDir.
func (h *MovieHandler) saveUpload(fh *multipart.FileHeader, sub string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", errors.New("unsupported image type")
	}

	dir := filepath.Join(h.PublicDir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(sub, name)), nil
}

// removeAsset deletes a previously stored upload; missing files are
// ignored.
func (h *MovieHandler) removeAsset(rel string) {
	if rel == "" {
		return
	}
	_ = os.Remove(filepath.Join(h.PublicDir, filepath.FromSlash(rel)))
}

// CreateMovie registers a movie from a multipart form.  The poster
// file field is optional.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	duration := strings.TrimSpace(c.FormValue("duration"))
	if duration == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration required"})
	}

	m := &model.Movie{
		ID:          uuid.NewString(),
		Title:       title,
		Duration:    duration,
		Description: c.FormValue("description"),
		Certificate: c.FormValue("certificate"),
		Language:    c.FormValue("language"),
	}
	if fh, err := c.FormFile("poster"); err == nil {
		rel, err := h.saveUpload(fh, "posters")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "poster upload failed"})
		}
		m.Poster = rel
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Movies.Create(ctx, m); err != nil {
		h.removeAsset(m.Poster)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// DeleteMovie removes a movie, its shows, seat inventory, bookings and
// its stored poster.
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	poster, err := h.Movies.Delete(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	h.removeAsset(poster)
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

// CreateBanner stores a promotional banner.  The image field is
// required; movie_id is optional and links the banner to a movie.
func (h *MovieHandler) CreateBanner(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image required"})
	}
	rel, err := h.saveUpload(fh, "banners")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image upload failed"})
	}

	b := &model.Banner{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: c.FormValue("description"),
		Image:       rel,
		MovieID:     c.FormValue("movie_id"),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Movies.CreateBanner(ctx, b); err != nil {
		h.removeAsset(rel)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create banner failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// DeleteBanner removes a banner and its stored image.
func (h *MovieHandler) DeleteBanner(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	image, err := h.Movies.DeleteBanner(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "banner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete banner failed"})
	}
	h.removeAsset(image)
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
