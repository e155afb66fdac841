package booking

import (
    "context"
    "database/sql"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

type fakeHostelRooms struct{ rooms map[uint64]*model.HostelRoom }

func (f *fakeHostelRooms) GetByID(ctx context.Context, id, schoolID uint64) (*model.HostelRoom, error) {
    r, ok := f.rooms[id]
    if !ok || r.SchoolID != schoolID {
        return nil, sql.ErrNoRows
    }
    return r, nil
}

type fakeCots struct {
    cots     map[uint64]*model.HostelCot
    schoolID uint64
    released []uint64
}

func (f *fakeCots) GetByID(ctx context.Context, id, schoolID uint64) (*model.HostelCot, error) {
    c, ok := f.cots[id]
    if !ok || schoolID != f.schoolID {
        return nil, sql.ErrNoRows
    }
    return c, nil
}

func (f *fakeCots) Reserve(ctx context.Context, id uint64) error {
    c, ok := f.cots[id]
    if !ok || !c.IsAvailable {
        return ErrCotUnavailable
    }
    c.IsAvailable = false
    return nil
}

func (f *fakeCots) Release(ctx context.Context, id uint64) error {
    if c, ok := f.cots[id]; ok {
        c.IsAvailable = true
    }
    f.released = append(f.released, id)
    return nil
}

type fakeHostelBookings struct {
    nextID    uint64
    bookings  map[uint64]*model.HostelBooking
    createErr error
}

func (f *fakeHostelBookings) Create(ctx context.Context, b *model.HostelBooking) error {
    if f.createErr != nil {
        return f.createErr
    }
    f.nextID++
    b.ID = f.nextID
    cp := *b
    f.bookings[b.ID] = &cp
    return nil
}

func (f *fakeHostelBookings) GetByID(ctx context.Context, id, schoolID uint64) (*model.HostelBooking, error) {
    b, ok := f.bookings[id]
    if !ok {
        return nil, sql.ErrNoRows
    }
    cp := *b
    return &cp, nil
}

func (f *fakeHostelBookings) ActiveByStudent(ctx context.Context, studentID uint64) (*model.HostelBooking, error) {
    for _, b := range f.bookings {
        if b.StudentID == studentID && b.Status == model.BookingActive {
            cp := *b
            return &cp, nil
        }
    }
    return nil, sql.ErrNoRows
}

func (f *fakeHostelBookings) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error {
    b, ok := f.bookings[id]
    if !ok || b.Status != from {
        return ErrNotActive
    }
    b.Status = to
    return nil
}

type fakeStudentDir struct{ students map[uint64]*model.Student }

func (f *fakeStudentDir) GetByID(ctx context.Context, id, schoolID uint64) (*model.Student, error) {
    s, ok := f.students[id]
    if !ok || s.SchoolID != schoolID {
        return nil, sql.ErrNoRows
    }
    return s, nil
}

type recordedEvent struct {
    kind, action string
    bookingID    uint64
}

type fakeEvents struct{ events []recordedEvent }

func (f *fakeEvents) BookingConfirmed(ctx context.Context, kind string, bookingID, studentID uint64) {
    f.events = append(f.events, recordedEvent{kind, "confirmed", bookingID})
}

func (f *fakeEvents) BookingReleased(ctx context.Context, kind string, bookingID, studentID uint64) {
    f.events = append(f.events, recordedEvent{kind, "released", bookingID})
}

func hostelFixture() (*HostelEngine, *fakeCots, *fakeHostelBookings, *fakeEvents) {
    rooms := &fakeHostelRooms{rooms: map[uint64]*model.HostelRoom{
        1: {ID: 1, SchoolID: 1, Gender: model.GenderFemale, IsActive: true},
        2: {ID: 2, SchoolID: 1, Gender: model.GenderOther, IsActive: true},
    }}
    cots := &fakeCots{schoolID: 1, cots: map[uint64]*model.HostelCot{
        100: {ID: 100, RoomID: 1, CotNumber: 1, IsAvailable: true},
        101: {ID: 101, RoomID: 1, CotNumber: 2, IsAvailable: false},
        200: {ID: 200, RoomID: 2, CotNumber: 1, IsAvailable: true},
    }}
    bookings := &fakeHostelBookings{bookings: map[uint64]*model.HostelBooking{}}
    students := &fakeStudentDir{students: map[uint64]*model.Student{
        10: {ID: 10, SchoolID: 1, Gender: model.GenderFemale},
        11: {ID: 11, SchoolID: 1, Gender: model.GenderMale},
    }}
    events := &fakeEvents{}
    return NewHostelEngine(rooms, cots, bookings, students, events), cots, bookings, events
}

func TestHostelBookHappyPath(t *testing.T) {
    engine, cots, _, events := hostelFixture()

    b, err := engine.Book(context.Background(), 1, 10, 1, 100, time.Now())
    require.NoError(t, err)

    assert.NotEmpty(t, b.BookingRef)
    assert.Equal(t, model.BookingActive, b.Status)
    assert.False(t, cots.cots[100].IsAvailable, "cot must be reserved")
    require.Len(t, events.events, 1)
    assert.Equal(t, recordedEvent{"hostel", "confirmed", b.ID}, events.events[0])
}

func TestHostelBookPreconditions(t *testing.T) {
    engine, _, _, _ := hostelFixture()
    ctx := context.Background()

    _, err := engine.Book(ctx, 1, 10, 1, 999, time.Now())
    require.ErrorIs(t, err, ErrCotNotFound)

    _, err = engine.Book(ctx, 1, 10, 1, 101, time.Now())
    require.ErrorIs(t, err, ErrCotUnavailable)

    // cot 100 belongs to room 1, not room 2
    _, err = engine.Book(ctx, 1, 10, 2, 100, time.Now())
    require.ErrorIs(t, err, ErrWrongRoom)

    _, err = engine.Book(ctx, 1, 999, 1, 100, time.Now())
    require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestHostelBookGenderPolicy(t *testing.T) {
    engine, _, _, _ := hostelFixture()
    ctx := context.Background()

    // male student in a FEMALE room
    _, err := engine.Book(ctx, 1, 11, 1, 100, time.Now())
    require.ErrorIs(t, err, ErrGenderMismatch)

    // OTHER room accepts anyone
    _, err = engine.Book(ctx, 1, 11, 2, 200, time.Now())
    require.NoError(t, err)
}

func TestHostelBookSingleActiveStay(t *testing.T) {
    engine, cots, _, _ := hostelFixture()
    ctx := context.Background()

    _, err := engine.Book(ctx, 1, 10, 1, 100, time.Now())
    require.NoError(t, err)

    // second cot, same student: rejected regardless of room
    cots.cots[200].IsAvailable = true
    _, err = engine.Book(ctx, 1, 10, 2, 200, time.Now())
    require.ErrorIs(t, err, ErrActiveHostelStay)
}

func TestHostelBookReleasesCotOnCreateFailure(t *testing.T) {
    engine, cots, bookings, _ := hostelFixture()
    bookings.createErr = errors.New("insert failed")

    _, err := engine.Book(context.Background(), 1, 10, 1, 100, time.Now())
    require.Error(t, err)
    assert.True(t, cots.cots[100].IsAvailable, "failed insert must hand the cot back")
}

func TestHostelCancelFreesCot(t *testing.T) {
    engine, cots, _, events := hostelFixture()
    ctx := context.Background()

    b, err := engine.Book(ctx, 1, 10, 1, 100, time.Now())
    require.NoError(t, err)

    cancelled, err := engine.Cancel(ctx, 1, b.ID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCancelled, cancelled.Status)
    assert.True(t, cots.cots[100].IsAvailable)
    assert.Equal(t, "released", events.events[len(events.events)-1].action)

    // cancelling again is a state error, not a second release
    _, err = engine.Cancel(ctx, 1, b.ID)
    require.ErrorIs(t, err, ErrNotActive)
}

func TestHostelCompleteStampsCheckout(t *testing.T) {
    engine, _, _, _ := hostelFixture()
    ctx := context.Background()

    fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    old := now
    now = func() time.Time { return fixed }
    defer func() { now = old }()

    b, err := engine.Book(ctx, 1, 10, 1, 100, time.Now())
    require.NoError(t, err)

    done, err := engine.Complete(ctx, 1, b.ID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCompleted, done.Status)
    require.NotNil(t, done.CheckOutDate)
    assert.Equal(t, fixed, *done.CheckOutDate)
}

func TestHostelCancelNotFound(t *testing.T) {
    engine, _, _, _ := hostelFixture()
    _, err := engine.Cancel(context.Background(), 1, 999)
    require.ErrorIs(t, err, ErrBookingNotFound)
}
