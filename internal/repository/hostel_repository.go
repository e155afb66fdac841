package repository

import (
    "context"
    "database/sql"

    "github.com/campusgrid/school-seat-reservation/internal/booking"
    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// HostelRepo covers hostel rooms and their cots.  Creating a room
// eagerly creates capacity cot rows numbered 1..capacity, mirroring
// how bus seats are generated.
type HostelRepo struct {
    db *sql.DB
}

// NewHostelRepo constructs a HostelRepo with the given DB handle.
func NewHostelRepo(db *sql.DB) *HostelRepo {
    return &HostelRepo{db: db}
}

// CreateRoom inserts a hostel room and its cots.  The room insert
// and the cot bulk insert run inside one transaction so a room can
// never exist half-furnished.
func (r *HostelRepo) CreateRoom(ctx context.Context, room *model.HostelRoom) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    const q = `INSERT INTO hostel_rooms (school_id, name, capacity, gender, is_active)
	           VALUES (?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, room.SchoolID, room.Name, room.Capacity, room.Gender, room.IsActive)
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
    if room.Capacity > 0 {
        query := `INSERT INTO hostel_cots (room_id, cot_number, is_available) VALUES `
        args := make([]interface{}, 0, int(room.Capacity)*3)
        for n := uint32(1); n <= room.Capacity; n++ {
            if n > 1 {
                query += ","
            }
            query += "(?, ?, 1)"
            args = append(args, room.ID, n)
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// GetRoomByID retrieves a hostel room by id within a school.
func (r *HostelRepo) GetRoomByID(ctx context.Context, roomID, schoolID uint64) (*model.HostelRoom, error) {
    const q = `SELECT id, school_id, name, capacity, gender, is_active, created_at, updated_at
	           FROM hostel_rooms WHERE id = ? AND school_id = ?`
    var room model.HostelRoom
    err := r.db.QueryRowContext(ctx, q, roomID, schoolID).Scan(
        &room.ID, &room.SchoolID, &room.Name, &room.Capacity,
        &room.Gender, &room.IsActive, &room.CreatedAt, &room.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &room, nil
}

// ListRooms returns hostel rooms of a school, optionally filtered
// by gender policy.
func (r *HostelRepo) ListRooms(ctx context.Context, schoolID uint64, gender string) ([]model.HostelRoom, error) {
    q := `SELECT id, school_id, name, capacity, gender, is_active, created_at, updated_at
	      FROM hostel_rooms WHERE school_id = ?`
    args := []interface{}{schoolID}
    if gender != "" {
        q += ` AND gender = ?`
        args = append(args, gender)
    }
    q += ` ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.HostelRoom, 0)
    for rows.Next() {
        var room model.HostelRoom
        if err := rows.Scan(
            &room.ID, &room.SchoolID, &room.Name, &room.Capacity,
            &room.Gender, &room.IsActive, &room.CreatedAt, &room.UpdatedAt,
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

// GetCotByID retrieves a cot by id, re-verifying the school through
// the owning room.
func (r *HostelRepo) GetCotByID(ctx context.Context, cotID, schoolID uint64) (*model.HostelCot, error) {
    const q = `SELECT c.id, c.room_id, c.cot_number, c.is_available, c.created_at, c.updated_at
	           FROM hostel_cots c
	           JOIN hostel_rooms hr ON hr.id = c.room_id
	           WHERE c.id = ? AND hr.school_id = ?`
    var cot model.HostelCot
    err := r.db.QueryRowContext(ctx, q, cotID, schoolID).Scan(
        &cot.ID, &cot.RoomID, &cot.CotNumber, &cot.IsAvailable, &cot.CreatedAt, &cot.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &cot, nil
}

// ListCotsByRoom returns all cots of a room ordered by cot number.
// When availableOnly is set, occupied cots are filtered out.
func (r *HostelRepo) ListCotsByRoom(ctx context.Context, roomID, schoolID uint64, availableOnly bool) ([]model.HostelCot, error) {
    q := `SELECT c.id, c.room_id, c.cot_number, c.is_available, c.created_at, c.updated_at
	      FROM hostel_cots c
	      JOIN hostel_rooms hr ON hr.id = c.room_id
	      WHERE c.room_id = ? AND hr.school_id = ?`
    if availableOnly {
        q += ` AND c.is_available = 1`
    }
    q += ` ORDER BY c.cot_number`
    rows, err := r.db.QueryContext(ctx, q, roomID, schoolID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.HostelCot, 0)
    for rows.Next() {
        var cot model.HostelCot
        if err := rows.Scan(&cot.ID, &cot.RoomID, &cot.CotNumber, &cot.IsAvailable, &cot.CreatedAt, &cot.UpdatedAt); err != nil {
            return nil, err
        }
        result = append(result, cot)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// Reserve flips a cot to unavailable only while it is available.
// Zero rows affected means another request won the cot first; that
// is reported as booking.ErrCotUnavailable so the caller can retry
// with a different cot.
func (r *HostelRepo) Reserve(ctx context.Context, cotID uint64) error {
    const q = `UPDATE hostel_cots SET is_available = 0, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND is_available = 1`
    res, err := r.db.ExecContext(ctx, q, cotID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return booking.ErrCotUnavailable
    }
    return nil
}

// Release flips a cot back to available.  Releasing an already
// available cot is a no-op, which keeps cancellation idempotent at
// the storage level.
func (r *HostelRepo) Release(ctx context.Context, cotID uint64) error {
    const q = `UPDATE hostel_cots SET is_available = 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, cotID)
    return err
}

// RoomOccupancy summarizes cot availability for one room.
type RoomOccupancy struct {
    TotalCots     uint32 `json:"total_cots"`
    AvailableCots uint32 `json:"available_cots"`
    OccupiedCots  uint32 `json:"occupied_cots"`
}

// Occupancy returns the availability summary for a room within a
// school.  sql.ErrNoRows is returned when the room does not exist
// in the school.
func (r *HostelRepo) Occupancy(ctx context.Context, roomID, schoolID uint64) (*RoomOccupancy, error) {
    if _, err := r.GetRoomByID(ctx, roomID, schoolID); err != nil {
        return nil, err
    }
    const q = `SELECT COUNT(*), COALESCE(SUM(is_available), 0)
	           FROM hostel_cots WHERE room_id = ?`
    var total, available uint32
    if err := r.db.QueryRowContext(ctx, q, roomID).Scan(&total, &available); err != nil {
        return nil, err
    }
    return &RoomOccupancy{
        TotalCots:     total,
        AvailableCots: available,
        OccupiedCots:  total - available,
    }, nil
}
