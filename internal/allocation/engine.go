package allocation

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// Sentinel errors surfaced by the engine.  Handlers translate these
// into HTTP status codes; the engine never retries on its own.
var (
    ErrScheduleNotFound  = errors.New("schedule not found")
    ErrScheduleNotActive = errors.New("schedule not active")
    ErrRoomNotFound      = errors.New("room not found")
    ErrInvigilatorRole   = errors.New("user is not eligible to invigilate")
    ErrUserNotFound      = errors.New("user not found")
)

// ScheduleStore loads and mutates exam schedules scoped to a school.
type ScheduleStore interface {
    GetByID(ctx context.Context, scheduleID, schoolID uint64) (*model.ExamSchedule, error)
    SetInvigilator(ctx context.Context, scheduleID, schoolID, invigilatorID uint64) error
}

// RoomStore loads exam rooms scoped to a school.
type RoomStore interface {
    GetByID(ctx context.Context, roomID, schoolID uint64) (*model.ExamRoom, error)
}

// AllocationStore persists and queries exam allocations.  CreateBulk
// must be atomic across the whole slice: either every allocation is
// written or none is.
type AllocationStore interface {
    OccupiedSlotKeys(ctx context.Context, scheduleID, roomID uint64) (map[string]struct{}, error)
    AllocatedStudentIDs(ctx context.Context, scheduleID uint64) (map[uint64]struct{}, error)
    CreateBulk(ctx context.Context, allocations []model.ExamAllocation) error
}

// StudentDirectory resolves student records for a school.  Unknown
// IDs are simply absent from the returned map.
type StudentDirectory interface {
    GetByIDs(ctx context.Context, schoolID uint64, studentIDs []uint64) (map[uint64]model.Student, error)
}

// UserDirectory resolves user records for invigilator eligibility.
type UserDirectory interface {
    GetByID(ctx context.Context, userID, schoolID uint64) (*model.User, error)
}

// Engine implements the exam seat allocation workflow: load the
// schedule and its room, drop students that are filtered out or
// already seated, walk the free bench slots in order and persist
// the batch.  All stores are injected so the engine itself carries
// no storage concerns.
type Engine struct {
    schedules ScheduleStore
    rooms     RoomStore
    allocs    AllocationStore
    students  StudentDirectory
    users     UserDirectory
}

// NewEngine constructs an Engine and panics if any dependency is nil.
func NewEngine(schedules ScheduleStore, rooms RoomStore, allocs AllocationStore, students StudentDirectory, users UserDirectory) *Engine {
    if schedules == nil || rooms == nil || allocs == nil || students == nil || users == nil {
        panic("nil store passed to allocation.NewEngine")
    }
    return &Engine{schedules: schedules, rooms: rooms, allocs: allocs, students: students, users: users}
}

// Request carries one allocation invocation.  Department, when set,
// restricts the roster to students whose class name contains the
// value as a case-sensitive substring.  Partial switches the engine
// from fail-fast (default) to best-effort: allocate the prefix that
// fits and report the remainder instead of failing the batch.
type Request struct {
    SchoolID   uint64
    ScheduleID uint64
    StudentIDs []uint64
    Department string
    Partial    bool
}

// Result reports what an allocation call persisted.  Skipped lists
// students dropped by the department filter or already seated for
// the schedule; Unallocated lists students that did not fit when
// Partial was requested.
type Result struct {
    Allocations []model.ExamAllocation
    Skipped     []uint64
    Unallocated []uint64
}

// Allocate seats the requested students for a schedule.  Students
// are seated strictly in input order.  Re-invoking with an
// overlapping roster is safe: already-seated students are skipped,
// never duplicated.
func (e *Engine) Allocate(ctx context.Context, req Request) (*Result, error) {
    schedule, err := e.schedules.GetByID(ctx, req.ScheduleID, req.SchoolID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrScheduleNotFound
        }
        return nil, err
    }
    if !schedule.IsActiveSchedule() {
        return nil, ErrScheduleNotActive
    }
    room, err := e.rooms.GetByID(ctx, schedule.RoomID, req.SchoolID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }

    students, err := e.students.GetByIDs(ctx, req.SchoolID, req.StudentIDs)
    if err != nil {
        return nil, err
    }
    seated, err := e.allocs.AllocatedStudentIDs(ctx, req.ScheduleID)
    if err != nil {
        return nil, err
    }

    res := &Result{}
    candidates := make([]uint64, 0, len(req.StudentIDs))
    seen := make(map[uint64]struct{}, len(req.StudentIDs))
    for _, id := range req.StudentIDs {
        if _, dup := seen[id]; dup {
            continue
        }
        seen[id] = struct{}{}
        student, ok := students[id]
        if !ok {
            // unknown or cross-tenant reference; never seat it
            res.Skipped = append(res.Skipped, id)
            continue
        }
        // substring containment, not exact match, preserved as-is
        if req.Department != "" && !strings.Contains(student.ClassName, req.Department) {
            res.Skipped = append(res.Skipped, id)
            continue
        }
        if _, already := seated[id]; already {
            res.Skipped = append(res.Skipped, id)
            continue
        }
        candidates = append(candidates, id)
    }
    if len(candidates) == 0 {
        return res, nil
    }

    occupied, err := e.allocs.OccupiedSlotKeys(ctx, req.ScheduleID, schedule.RoomID)
    if err != nil {
        return nil, err
    }
    seats, leftover, planErr := Plan(room.Capacity, schedule.StudentsPerBench, occupied, candidates)
    if planErr != nil {
        if !errors.Is(planErr, ErrCapacityExceeded) || !req.Partial {
            return nil, planErr
        }
        res.Unallocated = leftover
    }
    if len(seats) == 0 {
        return res, nil
    }

    allocations := make([]model.ExamAllocation, 0, len(seats))
    for _, seat := range seats {
        alloc := model.ExamAllocation{
            ScheduleID:   req.ScheduleID,
            StudentID:    seat.StudentID,
            RoomID:       schedule.RoomID,
            BenchNumber:  seat.BenchNumber,
            SeatPosition: seat.Position,
        }
        if student, ok := students[seat.StudentID]; ok && student.RollNumber != "" {
            roll := student.RollNumber
            alloc.RollNumber = &roll
        }
        allocations = append(allocations, alloc)
    }
    if err := e.allocs.CreateBulk(ctx, allocations); err != nil {
        return nil, err
    }
    res.Allocations = allocations
    return res, nil
}

// AssignInvigilator attaches a supervising user to a schedule after
// checking the user's role.  Only TEACHER, EXAMINER and HOD users
// may invigilate.
func (e *Engine) AssignInvigilator(ctx context.Context, schoolID, scheduleID, invigilatorID uint64) error {
    if _, err := e.schedules.GetByID(ctx, scheduleID, schoolID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrScheduleNotFound
        }
        return err
    }
    user, err := e.users.GetByID(ctx, invigilatorID, schoolID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrUserNotFound
        }
        return err
    }
    if !user.CanInvigilate() {
        return ErrInvigilatorRole
    }
    return e.schedules.SetInvigilator(ctx, scheduleID, schoolID, invigilatorID)
}
