package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/viaggiapp/travel-booking/internal/domain"
	"github.com/viaggiapp/travel-booking/internal/repository"
	"github.com/viaggiapp/travel-booking/internal/service"
)

// AdminBookingHandler exposes the operator workflow: listing every
// booking, forcing status transitions and writing operator notes. The
// admin role is enforced by route middleware; the service layer
// re-checks it so the rules hold even if a route is wired wrong.
type AdminBookingHandler struct {
	Svc      *service.BookingService
	Bookings *repository.BookingRepo
}

func NewAdminBookingHandler(svc *service.BookingService, bookings *repository.BookingRepo) *AdminBookingHandler {
	if svc == nil || bookings == nil {
		panic("nil dependency passed to NewAdminBookingHandler")
	}
	return &AdminBookingHandler{Svc: svc, Bookings: bookings}
}

// List handles GET /v1/admin/bookings.
func (h *AdminBookingHandler) List(c echo.Context) error {
	items, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListByPackage handles GET /v1/admin/packages/:id/bookings.
func (h *AdminBookingHandler) ListByPackage(c echo.Context) error {
	packageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || packageID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}
	items, err := h.Bookings.ListByPackage(c.Request().Context(), packageID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateStatus handles PATCH /v1/admin/bookings/:id/status. The body
// names the target status and may carry an operator note written
// after the transition commits. Confirming a cancelled booking, or
// any other edge outside the transition table, yields 409.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var body struct {
		Status string  `json:"status"`
		Note   *string `json:"note"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	target := domain.BookingStatus(body.Status)
	booking, err := h.Svc.Transition(c.Request().Context(), id, actor, target)
	if err != nil {
		return writeDomainError(c, err)
	}
	if body.Note != nil {
		booking, err = h.Svc.SetOperatorNote(c.Request().Context(), id, actor, *body.Note)
		if err != nil {
			return writeDomainError(c, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": booking})
}

// SetNote handles PUT /v1/admin/bookings/:id/note, replacing the
// operator note independently of any status change.
func (h *AdminBookingHandler) SetNote(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var body struct {
		Note string `json:"note"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	booking, err := h.Svc.SetOperatorNote(c.Request().Context(), id, actor, body.Note)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": booking})
}
