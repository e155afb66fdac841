package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// ExamScheduleRepo provides CRUD operations for exam schedules.
// Schedules are always resolved through their school so that a
// schedule id leaked across tenants resolves to nothing.
type ExamScheduleRepo struct {
    db *sql.DB
}

// NewExamScheduleRepo returns a new ExamScheduleRepo bound to the given database.
func NewExamScheduleRepo(db *sql.DB) *ExamScheduleRepo { return &ExamScheduleRepo{db: db} }

// Create inserts a new schedule and populates the generated ID.
// Time-window and per-bench validation happens in the handler; the
// repository only persists.
func (r *ExamScheduleRepo) Create(ctx context.Context, s *model.ExamSchedule) error {
    const q = `INSERT INTO exam_schedules
	           (school_id, exam_type, subject, department, class_name, room_id, exam_date, start_time, end_time, students_per_bench, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        s.SchoolID, s.ExamType, s.Subject, s.Department, s.ClassName, s.RoomID,
        s.ExamDate, s.StartTime, s.EndTime, s.StudentsPerBench, s.IsActive,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return nil
}

const scheduleColumns = `id, school_id, exam_type, subject, department, class_name, room_id,
	exam_date, start_time, end_time, students_per_bench, invigilator_id, is_active, created_at, updated_at`

func scanSchedule(row interface{ Scan(...any) error }) (*model.ExamSchedule, error) {
    var s model.ExamSchedule
    err := row.Scan(
        &s.ID, &s.SchoolID, &s.ExamType, &s.Subject, &s.Department, &s.ClassName, &s.RoomID,
        &s.ExamDate, &s.StartTime, &s.EndTime, &s.StudentsPerBench, &s.InvigilatorID,
        &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &s, nil
}

// GetByID retrieves a schedule by id within a school.
func (r *ExamScheduleRepo) GetByID(ctx context.Context, scheduleID, schoolID uint64) (*model.ExamSchedule, error) {
    const q = `SELECT ` + scheduleColumns + ` FROM exam_schedules WHERE id = ? AND school_id = ?`
    return scanSchedule(r.db.QueryRowContext(ctx, q, scheduleID, schoolID))
}

// ListBySchool returns schedules of a school, optionally filtered by
// exam type and/or exam date, newest sitting first.
func (r *ExamScheduleRepo) ListBySchool(ctx context.Context, schoolID uint64, examType string, examDate *time.Time) ([]model.ExamSchedule, error) {
    q := `SELECT ` + scheduleColumns + ` FROM exam_schedules WHERE school_id = ?`
    args := []interface{}{schoolID}
    if examType != "" {
        q += ` AND exam_type = ?`
        args = append(args, examType)
    }
    if examDate != nil {
        q += ` AND exam_date = ?`
        args = append(args, examDate.Format("2006-01-02"))
    }
    q += ` ORDER BY exam_date DESC, start_time DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.ExamSchedule, 0)
    for rows.Next() {
        s, err := scanSchedule(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, *s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// SetInvigilator attaches a supervising user to a schedule.  Role
// eligibility is the engine's job; the repository only guards the
// tenant boundary and existence.
func (r *ExamScheduleRepo) SetInvigilator(ctx context.Context, scheduleID, schoolID, invigilatorID uint64) error {
    const q = `UPDATE exam_schedules SET invigilator_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND school_id = ?`
    res, err := r.db.ExecContext(ctx, q, invigilatorID, scheduleID, schoolID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// Deactivate marks a schedule inactive (cancelled sitting).  New
// allocations against an inactive schedule are rejected upstream.
func (r *ExamScheduleRepo) Deactivate(ctx context.Context, scheduleID, schoolID uint64) error {
    const q = `UPDATE exam_schedules SET is_active = 0, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND school_id = ?`
    res, err := r.db.ExecContext(ctx, q, scheduleID, schoolID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}
