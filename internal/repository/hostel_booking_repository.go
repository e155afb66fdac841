package repository

import (
    "context"
    "database/sql"

    "github.com/campusgrid/school-seat-reservation/internal/booking"
    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// HostelBookingRepo persists hostel bookings.  The status column is
// only ever changed through UpdateStatus, which carries the
// expected current status in its WHERE clause so that two racing
// cancellations cannot both free the cot.
type HostelBookingRepo struct {
    db *sql.DB
}

// NewHostelBookingRepo returns a new HostelBookingRepo bound to the given database.
func NewHostelBookingRepo(db *sql.DB) *HostelBookingRepo { return &HostelBookingRepo{db: db} }

// Create inserts a booking and populates the generated ID.
func (r *HostelBookingRepo) Create(ctx context.Context, b *model.HostelBooking) error {
    const q = `INSERT INTO hostel_bookings (booking_ref, student_id, room_id, cot_id, check_in_date, check_out_date, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        b.BookingRef, b.StudentID, b.RoomID, b.CotID, b.CheckInDate, b.CheckOutDate, string(b.Status),
    )
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
    b.ID = uint64(id)
    return nil
}

const hostelBookingColumns = `b.id, b.booking_ref, b.student_id, b.room_id, b.cot_id,
	b.check_in_date, b.check_out_date, b.status, b.created_at, b.updated_at`

func scanHostelBooking(row interface{ Scan(...any) error }) (*model.HostelBooking, error) {
    var b model.HostelBooking
    var status string
    err := row.Scan(
        &b.ID, &b.BookingRef, &b.StudentID, &b.RoomID, &b.CotID,
        &b.CheckInDate, &b.CheckOutDate, &status, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    b.Status = model.BookingStatus(status)
    return &b, nil
}

// GetByID retrieves a booking by id, re-verifying the school
// through the owning room.
func (r *HostelBookingRepo) GetByID(ctx context.Context, bookingID, schoolID uint64) (*model.HostelBooking, error) {
    const q = `SELECT ` + hostelBookingColumns + `
	           FROM hostel_bookings b
	           JOIN hostel_rooms hr ON hr.id = b.room_id
	           WHERE b.id = ? AND hr.school_id = ?`
    return scanHostelBooking(r.db.QueryRowContext(ctx, q, bookingID, schoolID))
}

// ActiveByStudent returns the student's ACTIVE booking if one
// exists, or sql.ErrNoRows.  The single-active-booking rule is
// system-wide, so no room or school filter applies here.
func (r *HostelBookingRepo) ActiveByStudent(ctx context.Context, studentID uint64) (*model.HostelBooking, error) {
    const q = `SELECT ` + hostelBookingColumns + `
	           FROM hostel_bookings b
	           WHERE b.student_id = ? AND b.status = 'ACTIVE'
	           LIMIT 1`
    return scanHostelBooking(r.db.QueryRowContext(ctx, q, studentID))
}

// ListByStudent returns all bookings of a student within a school,
// newest first.
func (r *HostelBookingRepo) ListByStudent(ctx context.Context, studentID, schoolID uint64) ([]model.HostelBooking, error) {
    const q = `SELECT ` + hostelBookingColumns + `
	           FROM hostel_bookings b
	           JOIN hostel_rooms hr ON hr.id = b.room_id
	           WHERE b.student_id = ? AND hr.school_id = ?
	           ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, studentID, schoolID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.HostelBooking, 0)
    for rows.Next() {
        b, err := scanHostelBooking(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// UpdateStatus transitions a booking from one status to another.
// The expected current status rides in the WHERE clause; zero rows
// affected means the booking was not in that status any more and
// is reported as booking.ErrNotActive.  Completing a booking also
// stamps the check-out date.
func (r *HostelBookingRepo) UpdateStatus(ctx context.Context, bookingID uint64, from, to model.BookingStatus) error {
    q := `UPDATE hostel_bookings SET status = ?, updated_at = CURRENT_TIMESTAMP`
    if to == model.BookingCompleted {
        q += `, check_out_date = CURRENT_TIMESTAMP`
    }
    q += ` WHERE id = ? AND status = ?`
    res, err := r.db.ExecContext(ctx, q, string(to), bookingID, string(from))
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return booking.ErrNotActive
    }
    return nil
}
