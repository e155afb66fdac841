package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// StudentRepo resolves student records for the engines.  The full
// student CRUD lives in the admin application; this service only
// reads the fields the allocation and booking flows need.
type StudentRepo struct {
    db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the given DB handle.
func NewStudentRepo(db *sql.DB) *StudentRepo {
    return &StudentRepo{db: db}
}

const studentColumns = `id, school_id, user_id, full_name, class_name, roll_number, gender, created_at, updated_at`

// GetByID retrieves a student by id within a school.
func (r *StudentRepo) GetByID(ctx context.Context, studentID, schoolID uint64) (*model.Student, error) {
    const q = `SELECT ` + studentColumns + ` FROM students WHERE id = ? AND school_id = ?`
    var s model.Student
    err := r.db.QueryRowContext(ctx, q, studentID, schoolID).Scan(
        &s.ID, &s.SchoolID, &s.UserID, &s.FullName, &s.ClassName,
        &s.RollNumber, &s.Gender, &s.CreatedAt, &s.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &s, nil
}

// GetByIDs resolves a batch of student IDs within a school in one
// query.  IDs that do not exist in the school are simply absent
// from the returned map; the engine treats them as skippable.
func (r *StudentRepo) GetByIDs(ctx context.Context, schoolID uint64, studentIDs []uint64) (map[uint64]model.Student, error) {
    result := make(map[uint64]model.Student, len(studentIDs))
    if len(studentIDs) == 0 {
        return result, nil
    }
    placeholders := make([]string, 0, len(studentIDs))
    args := make([]interface{}, 0, len(studentIDs)+1)
    args = append(args, schoolID)
    for _, id := range studentIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `SELECT ` + studentColumns + ` FROM students
	      WHERE school_id = ? AND id IN (` + strings.Join(placeholders, ",") + `)`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var s model.Student
        if err := rows.Scan(
            &s.ID, &s.SchoolID, &s.UserID, &s.FullName, &s.ClassName,
            &s.RollNumber, &s.Gender, &s.CreatedAt, &s.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        result[s.ID] = s
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// ListBySchool returns students of a school, optionally restricted
// to class names containing the department substring.  The match is
// case-sensitive containment, deliberately mirroring the filter the
// allocation engine applies.
func (r *StudentRepo) ListBySchool(ctx context.Context, schoolID uint64, department string) ([]model.Student, error) {
    q := `SELECT ` + studentColumns + ` FROM students WHERE school_id = ?`
    args := []interface{}{schoolID}
    if department != "" {
        q += ` AND class_name LIKE BINARY CONCAT('%', ?, '%')`
        args = append(args, department)
    }
    q += ` ORDER BY class_name, roll_number`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Student, 0)
    for rows.Next() {
        var s model.Student
        if err := rows.Scan(
            &s.ID, &s.SchoolID, &s.UserID, &s.FullName, &s.ClassName,
            &s.RollNumber, &s.Gender, &s.CreatedAt, &s.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        result = append(result, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}
