package allocation

import (
    "context"
    "database/sql"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

type fakeStores struct {
    schedule    *model.ExamSchedule
    invigilator *uint64
}

func (f *fakeStores) GetByID(ctx context.Context, id, schoolID uint64) (*model.ExamSchedule, error) {
    if f.schedule == nil || f.schedule.ID != id || f.schedule.SchoolID != schoolID {
        return nil, sql.ErrNoRows
    }
    return f.schedule, nil
}

func (f *fakeStores) SetInvigilator(ctx context.Context, scheduleID, schoolID, invigilatorID uint64) error {
    f.invigilator = &invigilatorID
    return nil
}

type fakeRooms struct{ room *model.ExamRoom }

func (f *fakeRooms) GetByID(ctx context.Context, id, schoolID uint64) (*model.ExamRoom, error) {
    if f.room == nil || f.room.ID != id {
        return nil, sql.ErrNoRows
    }
    return f.room, nil
}

type fakeAllocs struct {
    seated   map[uint64]struct{}
    occupied map[string]struct{}
    created  []model.ExamAllocation
}

func (f *fakeAllocs) OccupiedSlotKeys(ctx context.Context, scheduleID, roomID uint64) (map[string]struct{}, error) {
    if f.occupied == nil {
        return map[string]struct{}{}, nil
    }
    return f.occupied, nil
}

func (f *fakeAllocs) AllocatedStudentIDs(ctx context.Context, scheduleID uint64) (map[uint64]struct{}, error) {
    if f.seated == nil {
        return map[uint64]struct{}{}, nil
    }
    return f.seated, nil
}

func (f *fakeAllocs) CreateBulk(ctx context.Context, allocations []model.ExamAllocation) error {
    f.created = append(f.created, allocations...)
    return nil
}

type fakeStudents struct{ students map[uint64]model.Student }

func (f *fakeStudents) GetByIDs(ctx context.Context, schoolID uint64, ids []uint64) (map[uint64]model.Student, error) {
    out := make(map[uint64]model.Student)
    for _, id := range ids {
        if s, ok := f.students[id]; ok {
            out[id] = s
        }
    }
    return out, nil
}

type fakeUsers struct{ users map[uint64]*model.User }

func (f *fakeUsers) GetByID(ctx context.Context, id, schoolID uint64) (*model.User, error) {
    u, ok := f.users[id]
    if !ok {
        return nil, sql.ErrNoRows
    }
    return u, nil
}

func testFixture(perBench uint8, capacity uint32) (*Engine, *fakeStores, *fakeAllocs) {
    schedules := &fakeStores{
        schedule: &model.ExamSchedule{ID: 1, SchoolID: 1, RoomID: 5, StudentsPerBench: perBench, IsActive: true},
    }
    rooms := &fakeRooms{room: &model.ExamRoom{ID: 5, SchoolID: 1, Capacity: capacity, IsActive: true}}
    allocs := &fakeAllocs{}
    students := &fakeStudents{students: map[uint64]model.Student{
        10: {ID: 10, ClassName: "CS-3A", RollNumber: "CS-01"},
        11: {ID: 11, ClassName: "CS-3B", RollNumber: "CS-02"},
        12: {ID: 12, ClassName: "EE-1A", RollNumber: "EE-01"},
    }}
    users := &fakeUsers{users: map[uint64]*model.User{
        20: {ID: 20, Role: model.RoleTeacher},
        21: {ID: 21, Role: model.RoleStudent},
        22: {ID: 22, Role: model.RoleHOD},
    }}
    return NewEngine(schedules, rooms, allocs, students, users), schedules, allocs
}

func TestAllocateSeatsInOrder(t *testing.T) {
    engine, _, allocs := testFixture(2, 3)

    res, err := engine.Allocate(context.Background(), Request{
        SchoolID: 1, ScheduleID: 1, StudentIDs: []uint64{10, 11, 12},
    })
    require.NoError(t, err)
    require.Len(t, res.Allocations, 3)

    assert.Equal(t, "1", res.Allocations[0].BenchNumber)
    require.NotNil(t, res.Allocations[0].SeatPosition)
    assert.Equal(t, model.SeatLeft, *res.Allocations[0].SeatPosition)
    assert.Equal(t, model.SeatRight, *res.Allocations[1].SeatPosition)
    assert.Equal(t, "2", res.Allocations[2].BenchNumber)

    // roll numbers snapshot onto the chart
    require.NotNil(t, res.Allocations[0].RollNumber)
    assert.Equal(t, "CS-01", *res.Allocations[0].RollNumber)

    assert.Len(t, allocs.created, 3)
}

func TestAllocateScheduleNotFound(t *testing.T) {
    engine, _, _ := testFixture(1, 3)
    _, err := engine.Allocate(context.Background(), Request{SchoolID: 1, ScheduleID: 99, StudentIDs: []uint64{10}})
    require.ErrorIs(t, err, ErrScheduleNotFound)

    // wrong tenant resolves to the same error
    _, err = engine.Allocate(context.Background(), Request{SchoolID: 2, ScheduleID: 1, StudentIDs: []uint64{10}})
    require.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestAllocateInactiveSchedule(t *testing.T) {
    engine, schedules, _ := testFixture(1, 3)
    schedules.schedule.IsActive = false
    _, err := engine.Allocate(context.Background(), Request{SchoolID: 1, ScheduleID: 1, StudentIDs: []uint64{10}})
    require.ErrorIs(t, err, ErrScheduleNotActive)
}

func TestAllocateDepartmentFilter(t *testing.T) {
    engine, _, allocs := testFixture(1, 5)

    res, err := engine.Allocate(context.Background(), Request{
        SchoolID: 1, ScheduleID: 1, StudentIDs: []uint64{10, 11, 12}, Department: "CS",
    })
    require.NoError(t, err)

    // EE student filtered out, CS students keep their input order
    require.Len(t, res.Allocations, 2)
    assert.Equal(t, uint64(10), res.Allocations[0].StudentID)
    assert.Equal(t, uint64(11), res.Allocations[1].StudentID)
    assert.Equal(t, []uint64{12}, res.Skipped)

    // the filter is case-sensitive containment
    allocs.created = nil
    res, err = engine.Allocate(context.Background(), Request{
        SchoolID: 1, ScheduleID: 1, StudentIDs: []uint64{12}, Department: "ee",
    })
    require.NoError(t, err)
    assert.Empty(t, res.Allocations)
    assert.Equal(t, []uint64{12}, res.Skipped)
}

func TestAllocateSkipsUnknownAndSeated(t *testing.T) {
    engine, _, allocs := testFixture(1, 5)
    allocs.seated = map[uint64]struct{}{10: {}}
    allocs.occupied = map[string]struct{}{"1": {}}

    res, err := engine.Allocate(context.Background(), Request{
        SchoolID: 1, ScheduleID: 1, StudentIDs: []uint64{10, 99, 11, 11},
    })
    require.NoError(t, err)

    // 10 already seated, 99 unknown, 11 duplicated in the roster
    require.Len(t, res.Allocations, 1)
    assert.Equal(t, uint64(11), res.Allocations[0].StudentID)
    assert.Equal(t, "2", res.Allocations[0].BenchNumber) // bench 1 occupied
    assert.ElementsMatch(t, []uint64{10, 99}, res.Skipped)
}

func TestAllocateCapacityFailFast(t *testing.T) {
    engine, _, allocs := testFixture(1, 2)

    _, err := engine.Allocate(context.Background(), Request{
        SchoolID: 1, ScheduleID: 1, StudentIDs: []uint64{10, 11, 12},
    })
    require.ErrorIs(t, err, ErrCapacityExceeded)
    assert.Empty(t, allocs.created, "fail-fast must persist nothing")
}

func TestAllocatePartialMode(t *testing.T) {
    engine, _, allocs := testFixture(1, 2)

    res, err := engine.Allocate(context.Background(), Request{
        SchoolID: 1, ScheduleID: 1, StudentIDs: []uint64{10, 11, 12}, Partial: true,
    })
    require.NoError(t, err)
    assert.Len(t, res.Allocations, 2)
    assert.Equal(t, []uint64{12}, res.Unallocated)
    assert.Len(t, allocs.created, 2)
}

func TestAssignInvigilatorRoles(t *testing.T) {
    engine, schedules, _ := testFixture(1, 3)

    require.NoError(t, engine.AssignInvigilator(context.Background(), 1, 1, 20)) // TEACHER
    require.NotNil(t, schedules.invigilator)
    assert.Equal(t, uint64(20), *schedules.invigilator)

    require.NoError(t, engine.AssignInvigilator(context.Background(), 1, 1, 22)) // HOD

    err := engine.AssignInvigilator(context.Background(), 1, 1, 21) // STUDENT
    require.ErrorIs(t, err, ErrInvigilatorRole)

    err = engine.AssignInvigilator(context.Background(), 1, 1, 999)
    require.ErrorIs(t, err, ErrUserNotFound)
}
