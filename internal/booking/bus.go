package booking

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/google/uuid"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// BusStore loads buses scoped to a school.
type BusStore interface {
    GetByID(ctx context.Context, busID, schoolID uint64) (*model.Bus, error)
}

// BusSeatStore loads seats and flips their availability with the
// same conditional-update contract as CotStore.
type BusSeatStore interface {
    GetByID(ctx context.Context, seatID, schoolID uint64) (*model.BusSeat, error)
    Reserve(ctx context.Context, seatID uint64) error
    Release(ctx context.Context, seatID uint64) error
}

// BusBookingStore persists bus bookings.  ActiveOnBusAndDate checks
// the same-bus-same-date exclusion; it returns sql.ErrNoRows when
// the student has no conflicting booking.
type BusBookingStore interface {
    Create(ctx context.Context, b *model.BusBooking) error
    GetByID(ctx context.Context, bookingID, schoolID uint64) (*model.BusBooking, error)
    ActiveOnBusAndDate(ctx context.Context, studentID, busID uint64, travelDate time.Time) (*model.BusBooking, error)
    UpdateStatus(ctx context.Context, bookingID uint64, from, to model.BookingStatus) error
}

// BusEngine books and releases bus seats.
type BusEngine struct {
    buses    BusStore
    seats    BusSeatStore
    bookings BusBookingStore
    students StudentDirectory
    events   EventPublisher
}

// NewBusEngine constructs a BusEngine.  The publisher may be nil
// when eventing is disabled.
func NewBusEngine(buses BusStore, seats BusSeatStore, bookings BusBookingStore, students StudentDirectory, events EventPublisher) *BusEngine {
    if buses == nil || seats == nil || bookings == nil || students == nil {
        panic("nil store passed to booking.NewBusEngine")
    }
    return &BusEngine{buses: buses, seats: seats, bookings: bookings, students: students, events: events}
}

// Book reserves the seat for the student on the given travel date.
// A student may ride different buses, or the same bus on different
// dates, but never hold two ACTIVE bookings on one bus for one
// date.  The availability flip is the atomic commit point.
func (e *BusEngine) Book(ctx context.Context, schoolID, studentID, busID, seatID uint64, travelDate time.Time) (*model.BusBooking, error) {
    seat, err := e.seats.GetByID(ctx, seatID, schoolID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrSeatNotFound
        }
        return nil, err
    }
    if !seat.CanBeBooked() {
        return nil, ErrSeatUnavailable
    }
    if seat.BusID != busID {
        return nil, ErrWrongBus
    }
    if _, err := e.buses.GetByID(ctx, busID, schoolID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBusNotFound
        }
        return nil, err
    }
    if _, err := e.students.GetByID(ctx, studentID, schoolID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrStudentNotFound
        }
        return nil, err
    }
    if _, err := e.bookings.ActiveOnBusAndDate(ctx, studentID, busID, travelDate); err == nil {
        return nil, ErrActiveBusBooking
    } else if !errors.Is(err, sql.ErrNoRows) {
        return nil, err
    }

    if err := e.seats.Reserve(ctx, seatID); err != nil {
        return nil, err
    }
    b := &model.BusBooking{
        BookingRef: uuid.NewString(),
        StudentID:  studentID,
        BusID:      busID,
        SeatID:     seatID,
        TravelDate: travelDate,
        Status:     model.BookingActive,
    }
    if err := e.bookings.Create(ctx, b); err != nil {
        _ = e.seats.Release(ctx, seatID)
        return nil, err
    }
    if e.events != nil {
        e.events.BookingConfirmed(ctx, "bus", b.ID, studentID)
    }
    return b, nil
}

// Cancel moves an ACTIVE booking to CANCELLED and frees the seat.
func (e *BusEngine) Cancel(ctx context.Context, schoolID, bookingID uint64) (*model.BusBooking, error) {
    return e.close(ctx, schoolID, bookingID, model.BookingCancelled)
}

// Complete moves an ACTIVE booking to COMPLETED (journey done) and
// frees the seat.
func (e *BusEngine) Complete(ctx context.Context, schoolID, bookingID uint64) (*model.BusBooking, error) {
    return e.close(ctx, schoolID, bookingID, model.BookingCompleted)
}

func (e *BusEngine) close(ctx context.Context, schoolID, bookingID uint64, target model.BookingStatus) (*model.BusBooking, error) {
    b, err := e.bookings.GetByID(ctx, bookingID, schoolID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    if !b.Status.CanTransitionTo(target) {
        return nil, ErrNotActive
    }
    if err := e.bookings.UpdateStatus(ctx, bookingID, model.BookingActive, target); err != nil {
        return nil, err
    }
    if err := e.seats.Release(ctx, b.SeatID); err != nil {
        return nil, err
    }
    b.Status = target
    if e.events != nil {
        e.events.BookingReleased(ctx, "bus", b.ID, b.StudentID)
    }
    return b, nil
}
