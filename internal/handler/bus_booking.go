package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

type busBookReq struct {
    StudentID  uint64 `json:"student_id" validate:"required"`
    BusID      uint64 `json:"bus_id" validate:"required"`
    SeatID     uint64 `json:"seat_id" validate:"required"`
    TravelDate string `json:"travel_date" validate:"required"`
}

type busBookingResp struct {
    ID         uint64 `json:"id"`
    BookingRef string `json:"booking_ref"`
    StudentID  uint64 `json:"student_id"`
    BusID      uint64 `json:"bus_id"`
    SeatID     uint64 `json:"seat_id"`
    TravelDate string `json:"travel_date"`
    Status     string `json:"status"`
}

func toBusBookingResp(b *model.BusBooking) busBookingResp {
    return busBookingResp{
        ID:         b.ID,
        BookingRef: b.BookingRef,
        StudentID:  b.StudentID,
        BusID:      b.BusID,
        SeatID:     b.SeatID,
        TravelDate: b.TravelDate.Format("2006-01-02"),
        Status:     string(b.Status),
    }
}

// Book handles POST /v1/bus/bookings.
func (h *BusHandler) Book(c echo.Context) error {
    sid, ok := schoolIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    var req busBookReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    travelDate, err := time.Parse("2006-01-02", req.TravelDate)
    if err != nil {
        return badRequest(c, "travel_date must be YYYY-MM-DD")
    }

    b, err := h.Engine.Book(c.Request().Context(), sid, req.StudentID, req.BusID, req.SeatID, travelDate)
    if err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusCreated, "seat booked", toBusBookingResp(b))
}

// GetBooking handles GET /v1/bus/bookings/:id.
func (h *BusHandler) GetBooking(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    b, err := h.Bookings.GetByID(c.Request().Context(), id, sid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "booking not found", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "ok", toBusBookingResp(b))
}

// ListStudentBookings handles GET /v1/bus/students/:id/bookings.
func (h *BusHandler) ListStudentBookings(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    studentID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    bookings, err := h.Bookings.ListByStudent(c.Request().Context(), studentID, sid)
    if err != nil {
        return failure(c, err)
    }
    out := make([]busBookingResp, 0, len(bookings))
    for i := range bookings {
        out = append(out, toBusBookingResp(&bookings[i]))
    }
    return respond(c, http.StatusOK, "ok", out)
}

// Cancel handles POST /v1/bus/bookings/:id/cancel.
func (h *BusHandler) Cancel(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    b, err := h.Engine.Cancel(c.Request().Context(), sid, id)
    if err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "booking cancelled", toBusBookingResp(b))
}

// Complete handles POST /v1/bus/bookings/:id/complete.
func (h *BusHandler) Complete(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    b, err := h.Engine.Complete(c.Request().Context(), sid, id)
    if err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "booking completed", toBusBookingResp(b))
}
