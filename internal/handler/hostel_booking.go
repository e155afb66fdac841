package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

type hostelBookReq struct {
    StudentID   uint64 `json:"student_id" validate:"required"`
    RoomID      uint64 `json:"room_id" validate:"required"`
    CotID       uint64 `json:"cot_id" validate:"required"`
    CheckInDate string `json:"check_in_date"`
}

type hostelBookingResp struct {
    ID           uint64  `json:"id"`
    BookingRef   string  `json:"booking_ref"`
    StudentID    uint64  `json:"student_id"`
    RoomID       uint64  `json:"room_id"`
    CotID        uint64  `json:"cot_id"`
    CheckInDate  string  `json:"check_in_date"`
    CheckOutDate *string `json:"check_out_date,omitempty"`
    Status       string  `json:"status"`
}

func toHostelBookingResp(b *model.HostelBooking) hostelBookingResp {
    out := hostelBookingResp{
        ID:          b.ID,
        BookingRef:  b.BookingRef,
        StudentID:   b.StudentID,
        RoomID:      b.RoomID,
        CotID:       b.CotID,
        CheckInDate: b.CheckInDate.UTC().Format(time.RFC3339),
        Status:      string(b.Status),
    }
    if b.CheckOutDate != nil {
        s := b.CheckOutDate.UTC().Format(time.RFC3339)
        out.CheckOutDate = &s
    }
    return out
}

// Book handles POST /v1/hostel/bookings.  check_in_date defaults to
// now when omitted.
func (h *HostelHandler) Book(c echo.Context) error {
    sid, ok := schoolIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    var req hostelBookReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    checkIn := time.Now().UTC()
    if req.CheckInDate != "" {
        d, err := time.Parse("2006-01-02", req.CheckInDate)
        if err != nil {
            return badRequest(c, "check_in_date must be YYYY-MM-DD")
        }
        checkIn = d
    }

    b, err := h.Engine.Book(c.Request().Context(), sid, req.StudentID, req.RoomID, req.CotID, checkIn)
    if err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusCreated, "cot booked", toHostelBookingResp(b))
}

// GetBooking handles GET /v1/hostel/bookings/:id.
func (h *HostelHandler) GetBooking(c echo.Context) error {
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
    return respond(c, http.StatusOK, "ok", toHostelBookingResp(b))
}

// ListStudentBookings handles GET /v1/hostel/students/:id/bookings.
func (h *HostelHandler) ListStudentBookings(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    studentID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    bookings, err := h.Bookings.ListByStudent(c.Request().Context(), studentID, sid)
    if err != nil {
        return failure(c, err)
    }
    out := make([]hostelBookingResp, 0, len(bookings))
    for i := range bookings {
        out = append(out, toHostelBookingResp(&bookings[i]))
    }
    return respond(c, http.StatusOK, "ok", out)
}

// Cancel handles POST /v1/hostel/bookings/:id/cancel.  Only an
// ACTIVE booking can be cancelled; the cot is freed.
func (h *HostelHandler) Cancel(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    b, err := h.Engine.Cancel(c.Request().Context(), sid, id)
    if err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "booking cancelled", toHostelBookingResp(b))
}

// Complete handles POST /v1/hostel/bookings/:id/complete (checkout).
func (h *HostelHandler) Complete(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    b, err := h.Engine.Complete(c.Request().Context(), sid, id)
    if err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "booking completed", toHostelBookingResp(b))
}
