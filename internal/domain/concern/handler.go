package concern

import (
	"errors"
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
	api.GET("/concerns", h.ListConcerns)
	api.GET("/concerns/category/:category", h.ListByCategory)
	api.GET("/concerns/patient/:name/:dob", h.ListByPatient)
	api.GET("/concerns/:id", h.GetConcern)
	api.POST("/concerns", h.CreateConcern)
	api.PATCH("/concerns/:id/status", h.UpdateStatus)
}

func (h *Handler) ListConcerns(c echo.Context) error {
	items, err := h.svc.ListConcerns(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Concern{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByCategory(c echo.Context) error {
	items, err := h.svc.ListConcernsByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Concern{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	items, err := h.svc.ListConcernsByPatient(c.Request().Context(), c.Param("name"), c.Param("dob"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Concern{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetConcern(c echo.Context) error {
	item, err := h.svc.GetConcern(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "concern not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateConcern(c echo.Context) error {
	var in Concern
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid concern data")
	}
	if err := h.svc.CreateConcern(c.Request().Context(), &in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, in)
}

type statusUpdate struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var in statusUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status value")
	}
	item, err := h.svc.UpdateConcernStatus(c.Request().Context(), c.Param("id"), in.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "concern not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}
