// Package booking implements the hostel cot and bus seat booking
// workflows.  Both share the same shape: verify the unit, verify it
// belongs to the stated parent, check the student-level rules, then
// reserve the unit with an atomic conditional update before writing
// the booking row.  Zero rows affected on the reserve step means a
// concurrent request won the unit and the call fails with a
// conflict instead of double-booking.
package booking

import (
    "errors"
    "time"
)

// Sentinel errors surfaced by the engines.  Handlers translate
// these into HTTP status codes; retries are the caller's business.
var (
    ErrRoomNotFound     = errors.New("room not found")
    ErrCotNotFound      = errors.New("cot not found")
    ErrBusNotFound      = errors.New("bus not found")
    ErrSeatNotFound     = errors.New("seat not found")
    ErrStudentNotFound  = errors.New("student not found")
    ErrBookingNotFound  = errors.New("booking not found")
    ErrWrongRoom        = errors.New("cot does not belong to specified room")
    ErrWrongBus         = errors.New("seat does not belong to specified bus")
    ErrCotUnavailable   = errors.New("cot is not available")
    ErrSeatUnavailable  = errors.New("seat is not available")
    ErrGenderMismatch   = errors.New("student gender does not match room gender policy")
    ErrActiveHostelStay = errors.New("student already has an active hostel booking")
    ErrActiveBusBooking = errors.New("student already has a booking for this bus on this date")
    ErrNotActive        = errors.New("booking is not active")
)

// now is swapped in tests to pin timestamps.
var now = func() time.Time { return time.Now().UTC() }
