package calldoc

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/concerns/:id/call-docs", h.ListCallDocs)
	api.POST("/call-docs", h.CreateCallDoc)
}

func (h *Handler) ListCallDocs(c echo.Context) error {
	items, err := h.svc.ListCallDocs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*CallDoc{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateCallDoc(c echo.Context) error {
	var in CallDoc
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid call documentation data")
	}
	if err := h.svc.CreateCallDoc(c.Request().Context(), &in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, in)
}
