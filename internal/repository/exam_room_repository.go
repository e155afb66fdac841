package repository // repository defines data access for exam rooms

import (
    "context"      // context allows query cancellation and timeouts
    "database/sql" // sql provides DB primitives

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// ExamRoomRepo provides methods to work with exam rooms in the
// database.  Every query is scoped by school_id so that a tenant
// can never read or mutate another tenant's rooms.
type ExamRoomRepo struct {
    db *sql.DB
}

// NewExamRoomRepo constructs an ExamRoomRepo with the given DB handle.
func NewExamRoomRepo(db *sql.DB) *ExamRoomRepo {
    return &ExamRoomRepo{db: db}
}

// Create inserts a single exam room.  On success the room's ID is
// populated.  Capacity validation happens in the handler before the
// insert; the schema additionally enforces capacity > 0.
func (r *ExamRoomRepo) Create(ctx context.Context, room *model.ExamRoom) error {
    const q = `INSERT INTO exam_rooms (school_id, room_number, capacity, benches_per_row, is_active)
	           VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, room.SchoolID, room.RoomNumber, room.Capacity, room.BenchesPerRow, room.IsActive)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrConflict
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    room.ID = uint64(id)
    return nil
}

// GetByID retrieves a room by id within a school.  sql.ErrNoRows is
// returned both for missing rooms and for rooms of other schools so
// that cross-tenant probing is indistinguishable from not-found.
func (r *ExamRoomRepo) GetByID(ctx context.Context, roomID, schoolID uint64) (*model.ExamRoom, error) {
    const q = `SELECT id, school_id, room_number, capacity, benches_per_row, is_active, created_at, updated_at
	           FROM exam_rooms WHERE id = ? AND school_id = ?`
    var room model.ExamRoom
    err := r.db.QueryRowContext(ctx, q, roomID, schoolID).Scan(
        &room.ID, &room.SchoolID, &room.RoomNumber, &room.Capacity,
        &room.BenchesPerRow, &room.IsActive, &room.CreatedAt, &room.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &room, nil
}

// ListBySchool returns all rooms of a school ordered by room number.
// When activeOnly is set, inactive rooms are filtered out.
func (r *ExamRoomRepo) ListBySchool(ctx context.Context, schoolID uint64, activeOnly bool) ([]model.ExamRoom, error) {
    q := `SELECT id, school_id, room_number, capacity, benches_per_row, is_active, created_at, updated_at
	      FROM exam_rooms WHERE school_id = ?`
    if activeOnly {
        q += ` AND is_active = 1`
    }
    q += ` ORDER BY room_number`
    rows, err := r.db.QueryContext(ctx, q, schoolID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    result := make([]model.ExamRoom, 0)
    for rows.Next() {
        var room model.ExamRoom
        if err := rows.Scan(
            &room.ID, &room.SchoolID, &room.RoomNumber, &room.Capacity,
            &room.BenchesPerRow, &room.IsActive, &room.CreatedAt, &room.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        result = append(result, room)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// SetActive flips a room's is_active flag within a school.  It
// returns sql.ErrNoRows when the room does not exist in the school.
func (r *ExamRoomRepo) SetActive(ctx context.Context, roomID, schoolID uint64, active bool) error {
    const q = `UPDATE exam_rooms SET is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND school_id = ?`
    res, err := r.db.ExecContext(ctx, q, active, roomID, schoolID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}
