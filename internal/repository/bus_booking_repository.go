package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/campusgrid/school-seat-reservation/internal/booking"
    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// BusBookingRepo persists bus bookings with the same status
// discipline as HostelBookingRepo.
type BusBookingRepo struct {
    db *sql.DB
}

// NewBusBookingRepo returns a new BusBookingRepo bound to the given database.
func NewBusBookingRepo(db *sql.DB) *BusBookingRepo { return &BusBookingRepo{db: db} }

// Create inserts a booking and populates the generated ID.
func (r *BusBookingRepo) Create(ctx context.Context, b *model.BusBooking) error {
    const q = `INSERT INTO bus_bookings (booking_ref, student_id, bus_id, seat_id, travel_date, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        b.BookingRef, b.StudentID, b.BusID, b.SeatID, b.TravelDate.Format("2006-01-02"), string(b.Status),
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

const busBookingColumns = `b.id, b.booking_ref, b.student_id, b.bus_id, b.seat_id,
	b.travel_date, b.status, b.created_at, b.updated_at`

func scanBusBooking(row interface{ Scan(...any) error }) (*model.BusBooking, error) {
    var b model.BusBooking
    var status string
    err := row.Scan(
        &b.ID, &b.BookingRef, &b.StudentID, &b.BusID, &b.SeatID,
        &b.TravelDate, &status, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    b.Status = model.BookingStatus(status)
    return &b, nil
}

// GetByID retrieves a booking by id, re-verifying the school
// through the owning bus.
func (r *BusBookingRepo) GetByID(ctx context.Context, bookingID, schoolID uint64) (*model.BusBooking, error) {
    const q = `SELECT ` + busBookingColumns + `
	           FROM bus_bookings b
	           JOIN buses bu ON bu.id = b.bus_id
	           WHERE b.id = ? AND bu.school_id = ?`
    return scanBusBooking(r.db.QueryRowContext(ctx, q, bookingID, schoolID))
}

// ActiveOnBusAndDate returns the student's ACTIVE booking on the
// given bus and travel date, or sql.ErrNoRows.  Bookings on other
// buses or other dates never match.
func (r *BusBookingRepo) ActiveOnBusAndDate(ctx context.Context, studentID, busID uint64, travelDate time.Time) (*model.BusBooking, error) {
    const q = `SELECT ` + busBookingColumns + `
	           FROM bus_bookings b
	           WHERE b.student_id = ? AND b.bus_id = ? AND b.travel_date = ? AND b.status = 'ACTIVE'
	           LIMIT 1`
    return scanBusBooking(r.db.QueryRowContext(ctx, q, studentID, busID, travelDate.Format("2006-01-02")))
}

// ListByStudent returns all bookings of a student within a school,
// newest first.
func (r *BusBookingRepo) ListByStudent(ctx context.Context, studentID, schoolID uint64) ([]model.BusBooking, error) {
    const q = `SELECT ` + busBookingColumns + `
	           FROM bus_bookings b
	           JOIN buses bu ON bu.id = b.bus_id
	           WHERE b.student_id = ? AND bu.school_id = ?
	           ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, studentID, schoolID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.BusBooking, 0)
    for rows.Next() {
        b, err := scanBusBooking(rows)
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

// UpdateStatus transitions a booking from one status to another
// with the expected current status in the WHERE clause.  Zero rows
// affected is reported as booking.ErrNotActive.
func (r *BusBookingRepo) UpdateStatus(ctx context.Context, bookingID uint64, from, to model.BookingStatus) error {
    const q = `UPDATE bus_bookings SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
    res, err := r.db.ExecContext(ctx, q, string(to), bookingID, string(from))
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return booking.ErrNotActive
    }
    return nil
}
