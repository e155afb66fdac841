package repository

import (
    "context"
    "database/sql"

    "github.com/campusgrid/school-seat-reservation/internal/allocation"
    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// ExamAllocationRepo persists exam seat allocations.  The table
// carries a unique key over (schedule_id, room_id, bench_number,
// seat_position) and another over (schedule_id, student_id), so
// even a racing batch that slips past the in-memory occupancy set
// is rejected by the database and surfaced as ErrConflict.
type ExamAllocationRepo struct {
    db *sql.DB
}

// NewExamAllocationRepo returns a new ExamAllocationRepo bound to the given database.
func NewExamAllocationRepo(db *sql.DB) *ExamAllocationRepo { return &ExamAllocationRepo{db: db} }

// OccupiedSlotKeys returns the set of bench-slot keys already
// allocated for a schedule and room.  Keys follow
// allocation.SlotKey: bench number alone for single occupancy,
// "bench-POSITION" for double occupancy.  Single occupancy is
// stored as '' in seat_position so the slot uniqueness key applies
// (NULLs never collide in a MySQL unique key); the empty string
// maps back to "no position" here.
func (r *ExamAllocationRepo) OccupiedSlotKeys(ctx context.Context, scheduleID, roomID uint64) (map[string]struct{}, error) {
    const q = `SELECT bench_number, seat_position FROM exam_allocations
	           WHERE schedule_id = ? AND room_id = ?`
    rows, err := r.db.QueryContext(ctx, q, scheduleID, roomID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    occupied := make(map[string]struct{})
    for rows.Next() {
        var bench, pos string
        if err := rows.Scan(&bench, &pos); err != nil {
            return nil, err
        }
        if pos != "" {
            occupied[allocation.SlotKey(bench, &pos)] = struct{}{}
        } else {
            occupied[allocation.SlotKey(bench, nil)] = struct{}{}
        }
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return occupied, nil
}

// AllocatedStudentIDs returns the IDs of students that already hold
// an allocation for the schedule.  The engine uses this to keep
// repeated invocations idempotent.
func (r *ExamAllocationRepo) AllocatedStudentIDs(ctx context.Context, scheduleID uint64) (map[uint64]struct{}, error) {
    const q = `SELECT student_id FROM exam_allocations WHERE schedule_id = ?`
    rows, err := r.db.QueryContext(ctx, q, scheduleID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    ids := make(map[uint64]struct{})
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids[id] = struct{}{}
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return ids, nil
}

// CreateBulk inserts all allocations in a single multi-row INSERT.
// A single statement is atomic in MySQL, so a capacity or key
// violation partway through leaves no stragglers behind.  Passing
// an empty slice has no effect and returns nil.
func (r *ExamAllocationRepo) CreateBulk(ctx context.Context, allocations []model.ExamAllocation) error {
    if len(allocations) == 0 {
        return nil
    }
    query := `INSERT INTO exam_allocations (schedule_id, student_id, room_id, bench_number, seat_position, roll_number) VALUES `
    args := make([]interface{}, 0, len(allocations)*6)
    for i, a := range allocations {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?, ?, ?)"
        pos := ""
        if a.SeatPosition != nil {
            pos = *a.SeatPosition
        }
        args = append(args, a.ScheduleID, a.StudentID, a.RoomID, a.BenchNumber, pos, a.RollNumber)
    }
    if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
        if isDuplicateKey(err) {
            return ErrConflict
        }
        return err
    }
    return nil
}

// AllocationDetail pairs an allocation with the student fields the
// seating chart displays.
type AllocationDetail struct {
    ID           uint64  `json:"id"`
    ScheduleID   uint64  `json:"schedule_id"`
    StudentID    uint64  `json:"student_id"`
    StudentName  string  `json:"student_name"`
    ClassName    string  `json:"class_name"`
    RoomID       uint64  `json:"room_id"`
    BenchNumber  string  `json:"bench_number"`
    SeatPosition *string `json:"seat_position,omitempty"`
    RollNumber   *string `json:"roll_number,omitempty"`
}

// ListBySchedule returns the full seating chart for a schedule
// within a school, ordered by bench then position for a stable
// printout.  The join through students re-verifies the tenant.
func (r *ExamAllocationRepo) ListBySchedule(ctx context.Context, scheduleID, schoolID uint64) ([]AllocationDetail, error) {
    const q = `SELECT a.id, a.schedule_id, a.student_id, st.full_name, st.class_name,
	                  a.room_id, a.bench_number, a.seat_position, a.roll_number
	           FROM exam_allocations a
	           JOIN exam_schedules sc ON sc.id = a.schedule_id
	           JOIN students st ON st.id = a.student_id
	           WHERE a.schedule_id = ? AND sc.school_id = ?
	           ORDER BY CAST(a.bench_number AS UNSIGNED), a.seat_position`
    rows, err := r.db.QueryContext(ctx, q, scheduleID, schoolID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]AllocationDetail, 0)
    for rows.Next() {
        var d AllocationDetail
        var pos, roll sql.NullString
        if err := rows.Scan(&d.ID, &d.ScheduleID, &d.StudentID, &d.StudentName, &d.ClassName,
            &d.RoomID, &d.BenchNumber, &pos, &roll); err != nil {
            return nil, err
        }
        if pos.Valid && pos.String != "" {
            p := pos.String
            d.SeatPosition = &p
        }
        if roll.Valid {
            rn := roll.String
            d.RollNumber = &rn
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}
