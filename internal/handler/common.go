package handler // handler defines the HTTP handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/viaggiapp/travel-booking/internal/domain"
	"github.com/viaggiapp/travel-booking/internal/middleware"
)

// getActor reconstructs the authenticated actor stored in context by
// the JWT middleware.
func getActor(c echo.Context) (domain.Actor, error) {
	id, ok := c.Get(middleware.CtxActorID).(uint64)
	if !ok || id == 0 {
		return domain.Actor{}, errors.New("no actor in context")
	}
	isAdmin, _ := c.Get(middleware.CtxIsAdmin).(bool)
	return domain.Actor{ID: id, IsAdmin: isAdmin}, nil
}

// writeDomainError maps the domain error taxonomy onto HTTP
// responses. Only the sentinel's message leaks to clients; wrapped
// driver detail stays in the logs.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrPackageNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
	case errors.Is(err, domain.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, domain.ErrInvalidPartySize):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party size must be a positive integer"})
	case errors.Is(err, domain.ErrInsufficientCapacity):
		return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats left on this package"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "status transition not allowed"})
	case errors.Is(err, domain.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable, retry later"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
