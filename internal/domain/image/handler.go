package image

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/careline/careline/internal/platform/blobstore"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/images/upload", h.Upload)
	api.GET("/images/file/:filename", h.ServeFile)
	api.GET("/images/:id", h.ListByConcern)
	api.DELETE("/images/:id", h.Delete)
}

// Upload accepts a multipart form with the file under the "image" field.
// Optional concernId and callDocId form values attach the image.
func (h *Handler) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no image file provided")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer f.Close()

	up := Upload{
		Filename: fh.Filename,
		Mimetype: fh.Header.Get(echo.HeaderContentType),
		Size:     fh.Size,
		Content:  f,
	}
	if v := c.FormValue("concernId"); v != "" {
		up.ConcernID = &v
	}
	if v := c.FormValue("callDocId"); v != "" {
		up.CallDocID = &v
	}

	img, err := h.svc.Ingest(c.Request().Context(), up)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrTooLarge) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store image")
	}
	return c.JSON(http.StatusCreated, img)
}

// ListByConcern returns the images attached to a concern, newest first.
func (h *Handler) ListByConcern(c echo.Context) error {
	concernID := c.Param("id")
	items, err := h.svc.ListImages(c.Request().Context(), Filter{ConcernID: &concernID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Image{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ServeFile(c echo.Context) error {
	// The router hands the parameter over still percent-encoded, so an
	// encoded traversal (..%2f..) would otherwise look like a harmless
	// basename. Decode before the store applies its containment rules.
	name, err := url.PathUnescape(c.Param("filename"))
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "invalid file name")
	}
	rc, mimetype, err := h.svc.OpenFile(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, blobstore.ErrPathEscape) {
			return echo.NewHTTPError(http.StatusForbidden, "invalid file name")
		}
		if errors.Is(err, blobstore.ErrBlobNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "file not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer rc.Close()
	return c.Stream(http.StatusOK, mimetype, rc)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "image not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
