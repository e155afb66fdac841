package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/allocation"
    "github.com/campusgrid/school-seat-reservation/internal/booking"
    "github.com/campusgrid/school-seat-reservation/internal/middleware"
    "github.com/campusgrid/school-seat-reservation/internal/repository"
)

// All endpoints answer with the same envelope: success flag, a
// human-readable message and an optional data payload.
func respond(c echo.Context, status int, message string, data interface{}) error {
    return c.JSON(status, echo.Map{
        "success": status < 400,
        "message": message,
        "data":    data,
    })
}

func badRequest(c echo.Context, message string) error {
    return respond(c, http.StatusBadRequest, message, nil)
}

// failure translates engine and repository sentinels into HTTP
// status codes.  Anything unrecognized is a 500 with a generic
// message so internals never leak to clients.
func failure(c echo.Context, err error) error {
    switch {
    case errors.Is(err, allocation.ErrScheduleNotFound),
        errors.Is(err, allocation.ErrRoomNotFound),
        errors.Is(err, allocation.ErrUserNotFound),
        errors.Is(err, booking.ErrRoomNotFound),
        errors.Is(err, booking.ErrCotNotFound),
        errors.Is(err, booking.ErrBusNotFound),
        errors.Is(err, booking.ErrSeatNotFound),
        errors.Is(err, booking.ErrStudentNotFound),
        errors.Is(err, booking.ErrBookingNotFound):
        return respond(c, http.StatusNotFound, err.Error(), nil)
    case errors.Is(err, booking.ErrCotUnavailable),
        errors.Is(err, booking.ErrSeatUnavailable),
        errors.Is(err, booking.ErrActiveHostelStay),
        errors.Is(err, booking.ErrActiveBusBooking),
        errors.Is(err, repository.ErrConflict):
        return respond(c, http.StatusConflict, err.Error(), nil)
    case errors.Is(err, booking.ErrGenderMismatch),
        errors.Is(err, repository.ErrForbidden):
        return respond(c, http.StatusForbidden, err.Error(), nil)
    case errors.Is(err, allocation.ErrScheduleNotActive),
        errors.Is(err, allocation.ErrCapacityExceeded),
        errors.Is(err, allocation.ErrInvigilatorRole),
        errors.Is(err, booking.ErrWrongRoom),
        errors.Is(err, booking.ErrWrongBus),
        errors.Is(err, booking.ErrNotActive):
        return respond(c, http.StatusBadRequest, err.Error(), nil)
    }
    c.Logger().Errorf("internal error: %v", err)
    return respond(c, http.StatusInternalServerError, "internal error", nil)
}

// schoolIDFrom reads the tenant injected by the JWT middleware.
func schoolIDFrom(c echo.Context) (uint64, bool) {
    id, ok := c.Get(middleware.CtxSchoolID).(uint64)
    return id, ok
}

// userIDFrom reads the authenticated user's ID.
func userIDFrom(c echo.Context) (uint64, bool) {
    id, ok := c.Get(middleware.CtxUserID).(uint64)
    return id, ok
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}
