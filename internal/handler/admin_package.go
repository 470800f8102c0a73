package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/viaggiapp/travel-booking/internal/domain"
	"github.com/viaggiapp/travel-booking/internal/repository"
)

// AdminPackageHandler implements the catalog workflow: creating and
// editing travel packages. These writes set capacity and price
// directly; they are the out-of-band admin path, distinct from the
// incremental capacity mutations owned by the booking engine.
type AdminPackageHandler struct {
	Packages *repository.PackageRepo
}

func NewAdminPackageHandler(packages *repository.PackageRepo) *AdminPackageHandler {
	if packages == nil {
		panic("nil repository passed to NewAdminPackageHandler")
	}
	return &AdminPackageHandler{Packages: packages}
}

type packageReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	City        string `json:"city"`
	Country     string `json:"country"`
	PriceCents  uint32 `json:"price_cents"`
	Capacity    uint32 `json:"capacity"`
	StartsOn    string `json:"starts_on"` // YYYY-MM-DD
	EndsOn      string `json:"ends_on"`   // YYYY-MM-DD
	Days        uint32 `json:"days"`
	Hotel       string `json:"hotel"`
	IsActive    *bool  `json:"is_active"`
}

func (r packageReq) toDomain() (*domain.TravelPackage, error) {
	starts, err := time.Parse("2006-01-02", r.StartsOn)
	if err != nil {
		return nil, err
	}
	ends, err := time.Parse("2006-01-02", r.EndsOn)
	if err != nil {
		return nil, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	days := r.Days
	if days == 0 {
		days = uint32(ends.Sub(starts).Hours()/24) + 1
	}
	return &domain.TravelPackage{
		Title:       r.Title,
		Description: r.Description,
		City:        r.City,
		Country:     r.Country,
		PriceCents:  r.PriceCents,
		Capacity:    r.Capacity,
		StartsOn:    starts,
		EndsOn:      ends,
		Days:        days,
		Hotel:       r.Hotel,
		IsActive:    active,
	}, nil
}

func (r packageReq) validate() string {
	switch {
	case r.Title == "":
		return "title is required"
	case r.StartsOn == "" || r.EndsOn == "":
		return "starts_on and ends_on are required"
	default:
		return ""
	}
}

// Create handles POST /v1/admin/packages.
func (h *AdminPackageHandler) Create(c echo.Context) error {
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	p, err := req.toDomain()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}
	created, err := h.Packages.Create(c.Request().Context(), p)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": created})
}

// Update handles PUT /v1/admin/packages/:id as a full-row edit,
// mirroring the admin edit form.
func (h *AdminPackageHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	p, err := req.toDomain()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}
	p.ID = id

	// Ensure the package exists before the blind row rewrite.
	if _, err := h.Packages.GetByID(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	updated, err := h.Packages.Update(c.Request().Context(), p)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// Get handles GET /v1/admin/packages/:id, returning the package
// whether or not it is retired.
func (h *AdminPackageHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}
	p, err := h.Packages.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": p})
}
