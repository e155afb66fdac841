package booking

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/google/uuid"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// HostelRoomStore loads hostel rooms scoped to a school.
type HostelRoomStore interface {
    GetByID(ctx context.Context, roomID, schoolID uint64) (*model.HostelRoom, error)
}

// CotStore loads cots and flips their availability.  Reserve must
// be an atomic conditional update (set unavailable only while
// available) and return ErrCotUnavailable when no row changed.
type CotStore interface {
    GetByID(ctx context.Context, cotID, schoolID uint64) (*model.HostelCot, error)
    Reserve(ctx context.Context, cotID uint64) error
    Release(ctx context.Context, cotID uint64) error
}

// HostelBookingStore persists hostel bookings.  UpdateStatus must
// apply the transition only while the booking is still in the
// `from` status and return ErrNotActive otherwise, so concurrent
// cancellations cannot both free the cot.
type HostelBookingStore interface {
    Create(ctx context.Context, b *model.HostelBooking) error
    GetByID(ctx context.Context, bookingID, schoolID uint64) (*model.HostelBooking, error)
    ActiveByStudent(ctx context.Context, studentID uint64) (*model.HostelBooking, error)
    UpdateStatus(ctx context.Context, bookingID uint64, from, to model.BookingStatus) error
}

// StudentDirectory resolves a single student within a school.
type StudentDirectory interface {
    GetByID(ctx context.Context, studentID, schoolID uint64) (*model.Student, error)
}

// EventPublisher receives booking lifecycle events.  Publishing is
// best-effort; engines ignore publisher errors.
type EventPublisher interface {
    BookingConfirmed(ctx context.Context, kind string, bookingID uint64, studentID uint64)
    BookingReleased(ctx context.Context, kind string, bookingID uint64, studentID uint64)
}

// HostelEngine books and releases hostel cots.
type HostelEngine struct {
    rooms    HostelRoomStore
    cots     CotStore
    bookings HostelBookingStore
    students StudentDirectory
    events   EventPublisher
}

// NewHostelEngine constructs a HostelEngine.  The publisher may be
// nil when eventing is disabled.
func NewHostelEngine(rooms HostelRoomStore, cots CotStore, bookings HostelBookingStore, students StudentDirectory, events EventPublisher) *HostelEngine {
    if rooms == nil || cots == nil || bookings == nil || students == nil {
        panic("nil store passed to booking.NewHostelEngine")
    }
    return &HostelEngine{rooms: rooms, cots: cots, bookings: bookings, students: students, events: events}
}

// Book reserves the cot for the student.  Preconditions run in the
// order the spec of the admissions office prescribes: cot exists
// and is free, cot belongs to the stated room, the room's gender
// policy admits the student, and the student holds no other ACTIVE
// hostel booking anywhere.  The availability flip is the atomic
// commit point; losing the race surfaces as ErrCotUnavailable.
func (e *HostelEngine) Book(ctx context.Context, schoolID, studentID, roomID, cotID uint64, checkIn time.Time) (*model.HostelBooking, error) {
    cot, err := e.cots.GetByID(ctx, cotID, schoolID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCotNotFound
        }
        return nil, err
    }
    if !cot.CanBeBooked() {
        return nil, ErrCotUnavailable
    }
    if cot.RoomID != roomID {
        return nil, ErrWrongRoom
    }
    room, err := e.rooms.GetByID(ctx, roomID, schoolID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    student, err := e.students.GetByID(ctx, studentID, schoolID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrStudentNotFound
        }
        return nil, err
    }
    if !room.AcceptsGender(student.Gender) {
        return nil, ErrGenderMismatch
    }
    if _, err := e.bookings.ActiveByStudent(ctx, studentID); err == nil {
        return nil, ErrActiveHostelStay
    } else if !errors.Is(err, sql.ErrNoRows) {
        return nil, err
    }

    if err := e.cots.Reserve(ctx, cotID); err != nil {
        return nil, err
    }
    b := &model.HostelBooking{
        BookingRef:  uuid.NewString(),
        StudentID:   studentID,
        RoomID:      roomID,
        CotID:       cotID,
        CheckInDate: checkIn,
        Status:      model.BookingActive,
    }
    if err := e.bookings.Create(ctx, b); err != nil {
        // hand the cot back so a failed insert cannot strand it
        _ = e.cots.Release(ctx, cotID)
        return nil, err
    }
    if e.events != nil {
        e.events.BookingConfirmed(ctx, "hostel", b.ID, studentID)
    }
    return b, nil
}

// Cancel moves an ACTIVE booking to CANCELLED and frees the cot.
func (e *HostelEngine) Cancel(ctx context.Context, schoolID, bookingID uint64) (*model.HostelBooking, error) {
    return e.close(ctx, schoolID, bookingID, model.BookingCancelled)
}

// Complete moves an ACTIVE booking to COMPLETED (checkout) and
// frees the cot.  COMPLETED is terminal just like CANCELLED.
func (e *HostelEngine) Complete(ctx context.Context, schoolID, bookingID uint64) (*model.HostelBooking, error) {
    return e.close(ctx, schoolID, bookingID, model.BookingCompleted)
}

func (e *HostelEngine) close(ctx context.Context, schoolID, bookingID uint64, target model.BookingStatus) (*model.HostelBooking, error) {
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
    if err := e.cots.Release(ctx, b.CotID); err != nil {
        return nil, err
    }
    b.Status = target
    if target == model.BookingCompleted {
        out := now()
        b.CheckOutDate = &out
    }
    if e.events != nil {
        e.events.BookingReleased(ctx, "hostel", b.ID, b.StudentID)
    }
    return b, nil
}
