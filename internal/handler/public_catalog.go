package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/viaggiapp/travel-booking/internal/repository"
)

// CatalogHandler serves the public storefront reads: package listing
// and package detail. No authentication; responses may be served from
// the Redis cache by middleware.
type CatalogHandler struct {
	Packages *repository.PackageRepo
}

func NewCatalogHandler(packages *repository.PackageRepo) *CatalogHandler {
	if packages == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Packages: packages}
}

// ListPackages handles GET /v1/packages. Only active packages are
// shown; capacity in the response reflects the last committed state
// (modulo cache TTL), the authoritative check happens at Reserve time.
func (h *CatalogHandler) ListPackages(c echo.Context) error {
	items, err := h.Packages.ListActive(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetPackage handles GET /v1/packages/:id. Retired packages read as
// not found for the storefront.
func (h *CatalogHandler) GetPackage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}
	p, err := h.Packages.GetActiveByID(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": p})
}
