package patient

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

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.Home)
	g.GET("/about", h.About)

	g.GET("/view", h.ViewPatients)
	g.GET("/patient/:id", h.GetPatient)
	g.GET("/sort", h.SortPatients)

	g.POST("/create", h.CreatePatient)
	g.PUT("/edit/:id", h.UpdatePatient)
	g.DELETE("/delete/:id", h.DeletePatient)
}

func (h *Handler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Patient Management System API"})
}

func (h *Handler) About(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "A fully functional API to manage your patient records"})
}

func (h *Handler) ViewPatients(c echo.Context) error {
	patients, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) GetPatient(c echo.Context) error {
	rec, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) SortPatients(c echo.Context) error {
	records, err := h.svc.SortPatients(c.Request().Context(), c.QueryParam("sort_by"), c.QueryParam("order"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var in PatientInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	p, err := NewPatient(in)
	if err != nil {
		return httpError(err)
	}
	if err := h.svc.CreatePatient(c.Request().Context(), p); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "patient created successfully",
		"patient": p,
	})
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var upd PatientUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	p, err := h.svc.UpdatePatient(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "patient updated",
		"patient": p,
	})
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "patient deleted"})
}

// httpError maps service errors onto HTTP responses.
func httpError(err error) error {
	var verrs ValidationErrors
	var argErr *InvalidArgumentError
	switch {
	case errors.As(err, &verrs):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]any{"detail": verrs})
	case errors.As(err, &argErr):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"message": argErr.Error(),
			"param":   argErr.Param,
			"allowed": argErr.Allowed,
		})
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case errors.Is(err, ErrPatientExists):
		return echo.NewHTTPError(http.StatusBadRequest, "Patient already exists")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to access patient records").SetInternal(err)
	}
}
