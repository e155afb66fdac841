package booking

import (
    "context"
    "database/sql"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

type fakeBuses struct{ buses map[uint64]*model.Bus }

func (f *fakeBuses) GetByID(ctx context.Context, id, schoolID uint64) (*model.Bus, error) {
    b, ok := f.buses[id]
    if !ok || b.SchoolID != schoolID {
        return nil, sql.ErrNoRows
    }
    return b, nil
}

type fakeSeats struct {
    seats    map[uint64]*model.BusSeat
    schoolID uint64
}

func (f *fakeSeats) GetByID(ctx context.Context, id, schoolID uint64) (*model.BusSeat, error) {
    s, ok := f.seats[id]
    if !ok || schoolID != f.schoolID {
        return nil, sql.ErrNoRows
    }
    return s, nil
}

func (f *fakeSeats) Reserve(ctx context.Context, id uint64) error {
    s, ok := f.seats[id]
    if !ok || !s.IsAvailable {
        return ErrSeatUnavailable
    }
    s.IsAvailable = false
    return nil
}

func (f *fakeSeats) Release(ctx context.Context, id uint64) error {
    if s, ok := f.seats[id]; ok {
        s.IsAvailable = true
    }
    return nil
}

type fakeBusBookings struct {
    nextID   uint64
    bookings map[uint64]*model.BusBooking
}

func (f *fakeBusBookings) Create(ctx context.Context, b *model.BusBooking) error {
    f.nextID++
    b.ID = f.nextID
    cp := *b
    f.bookings[b.ID] = &cp
    return nil
}

func (f *fakeBusBookings) GetByID(ctx context.Context, id, schoolID uint64) (*model.BusBooking, error) {
    b, ok := f.bookings[id]
    if !ok {
        return nil, sql.ErrNoRows
    }
    cp := *b
    return &cp, nil
}

func (f *fakeBusBookings) ActiveOnBusAndDate(ctx context.Context, studentID, busID uint64, travelDate time.Time) (*model.BusBooking, error) {
    for _, b := range f.bookings {
        if b.StudentID == studentID && b.BusID == busID &&
            b.TravelDate.Format("2006-01-02") == travelDate.Format("2006-01-02") &&
            b.Status == model.BookingActive {
            cp := *b
            return &cp, nil
        }
    }
    return nil, sql.ErrNoRows
}

func (f *fakeBusBookings) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error {
    b, ok := f.bookings[id]
    if !ok || b.Status != from {
        return ErrNotActive
    }
    b.Status = to
    return nil
}

func busFixture() (*BusEngine, *fakeSeats, *fakeBusBookings) {
    buses := &fakeBuses{buses: map[uint64]*model.Bus{
        1: {ID: 1, SchoolID: 1, Capacity: 40, IsActive: true},
        2: {ID: 2, SchoolID: 1, Capacity: 40, IsActive: true},
    }}
    seats := &fakeSeats{schoolID: 1, seats: map[uint64]*model.BusSeat{
        100: {ID: 100, BusID: 1, SeatNumber: 1, SeatType: model.SeatTypeWindow, IsAvailable: true},
        101: {ID: 101, BusID: 1, SeatNumber: 2, SeatType: model.SeatTypeAisle, IsAvailable: true},
        102: {ID: 102, BusID: 1, SeatNumber: 3, SeatType: model.SeatTypeWindow, IsAvailable: false},
        200: {ID: 200, BusID: 2, SeatNumber: 1, SeatType: model.SeatTypeWindow, IsAvailable: true},
    }}
    bookings := &fakeBusBookings{bookings: map[uint64]*model.BusBooking{}}
    students := &fakeStudentDir{students: map[uint64]*model.Student{
        10: {ID: 10, SchoolID: 1, Gender: model.GenderMale},
    }}
    return NewBusEngine(buses, seats, bookings, students, nil), seats, bookings
}

var travelDay = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func TestBusBookHappyPath(t *testing.T) {
    engine, seats, _ := busFixture()

    b, err := engine.Book(context.Background(), 1, 10, 1, 100, travelDay)
    require.NoError(t, err)

    assert.NotEmpty(t, b.BookingRef)
    assert.Equal(t, model.BookingActive, b.Status)
    assert.Equal(t, travelDay, b.TravelDate)
    assert.False(t, seats.seats[100].IsAvailable)
}

func TestBusBookPreconditions(t *testing.T) {
    engine, _, _ := busFixture()
    ctx := context.Background()

    _, err := engine.Book(ctx, 1, 10, 1, 999, travelDay)
    require.ErrorIs(t, err, ErrSeatNotFound)

    _, err = engine.Book(ctx, 1, 10, 1, 102, travelDay)
    require.ErrorIs(t, err, ErrSeatUnavailable)

    // seat 100 belongs to bus 1, not bus 2
    _, err = engine.Book(ctx, 1, 10, 2, 100, travelDay)
    require.ErrorIs(t, err, ErrWrongBus)

    _, err = engine.Book(ctx, 1, 999, 1, 100, travelDay)
    require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestBusBookSameBusSameDate(t *testing.T) {
    engine, _, _ := busFixture()
    ctx := context.Background()

    _, err := engine.Book(ctx, 1, 10, 1, 100, travelDay)
    require.NoError(t, err)

    // same bus, same date, different seat: rejected
    _, err = engine.Book(ctx, 1, 10, 1, 101, travelDay)
    require.ErrorIs(t, err, ErrActiveBusBooking)

    // same bus on another date is fine
    _, err = engine.Book(ctx, 1, 10, 1, 101, travelDay.AddDate(0, 0, 1))
    require.NoError(t, err)

    // another bus on the same date is fine too
    _, err = engine.Book(ctx, 1, 10, 2, 200, travelDay)
    require.NoError(t, err)
}

func TestBusCancelAllowsRebooking(t *testing.T) {
    engine, seats, _ := busFixture()
    ctx := context.Background()

    b, err := engine.Book(ctx, 1, 10, 1, 100, travelDay)
    require.NoError(t, err)

    cancelled, err := engine.Cancel(ctx, 1, b.ID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCancelled, cancelled.Status)
    assert.True(t, seats.seats[100].IsAvailable)

    // the slot opened up again
    _, err = engine.Book(ctx, 1, 10, 1, 100, travelDay)
    require.NoError(t, err)
}

func TestBusCompleteIsTerminal(t *testing.T) {
    engine, _, _ := busFixture()
    ctx := context.Background()

    b, err := engine.Book(ctx, 1, 10, 1, 100, travelDay)
    require.NoError(t, err)

    done, err := engine.Complete(ctx, 1, b.ID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCompleted, done.Status)

    _, err = engine.Cancel(ctx, 1, b.ID)
    require.ErrorIs(t, err, ErrNotActive)
}
