package repository

import (
    "context"
    "database/sql"

    "github.com/campusgrid/school-seat-reservation/internal/booking"
    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// BusRepo covers buses, their seats and their schedules.  Creating
// a bus eagerly creates capacity seat rows numbered 1..capacity
// with the fixed WINDOW/AISLE alternation.
type BusRepo struct {
    db *sql.DB
}

// NewBusRepo constructs a BusRepo with the given DB handle.
func NewBusRepo(db *sql.DB) *BusRepo {
    return &BusRepo{db: db}
}

// CreateBus inserts a bus and its seats inside one transaction.
func (r *BusRepo) CreateBus(ctx context.Context, bus *model.Bus) error {
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
    const q = `INSERT INTO buses (school_id, bus_number, route_name, capacity, is_active)
	           VALUES (?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, bus.SchoolID, bus.BusNumber, bus.RouteName, bus.Capacity, bus.IsActive)
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
    bus.ID = uint64(id)
    if bus.Capacity > 0 {
        query := `INSERT INTO bus_seats (bus_id, seat_number, seat_type, is_available) VALUES `
        args := make([]interface{}, 0, int(bus.Capacity)*3)
        for n := uint32(1); n <= bus.Capacity; n++ {
            if n > 1 {
                query += ","
            }
            query += "(?, ?, ?, 1)"
            args = append(args, bus.ID, n, model.SeatTypeForNumber(n))
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

// GetBusByID retrieves a bus by id within a school.
func (r *BusRepo) GetBusByID(ctx context.Context, busID, schoolID uint64) (*model.Bus, error) {
    const q = `SELECT id, school_id, bus_number, route_name, capacity, is_active, created_at, updated_at
	           FROM buses WHERE id = ? AND school_id = ?`
    var bus model.Bus
    err := r.db.QueryRowContext(ctx, q, busID, schoolID).Scan(
        &bus.ID, &bus.SchoolID, &bus.BusNumber, &bus.RouteName,
        &bus.Capacity, &bus.IsActive, &bus.CreatedAt, &bus.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &bus, nil
}

// ListBuses returns buses of a school ordered by bus number.  When
// activeOnly is set, inactive buses are filtered out.
func (r *BusRepo) ListBuses(ctx context.Context, schoolID uint64, activeOnly bool) ([]model.Bus, error) {
    q := `SELECT id, school_id, bus_number, route_name, capacity, is_active, created_at, updated_at
	      FROM buses WHERE school_id = ?`
    if activeOnly {
        q += ` AND is_active = 1`
    }
    q += ` ORDER BY bus_number`
    rows, err := r.db.QueryContext(ctx, q, schoolID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Bus, 0)
    for rows.Next() {
        var bus model.Bus
        if err := rows.Scan(
            &bus.ID, &bus.SchoolID, &bus.BusNumber, &bus.RouteName,
            &bus.Capacity, &bus.IsActive, &bus.CreatedAt, &bus.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        result = append(result, bus)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// GetSeatByID retrieves a seat by id, re-verifying the school
// through the owning bus.
func (r *BusRepo) GetSeatByID(ctx context.Context, seatID, schoolID uint64) (*model.BusSeat, error) {
    const q = `SELECT s.id, s.bus_id, s.seat_number, s.seat_type, s.is_available, s.created_at, s.updated_at
	           FROM bus_seats s
	           JOIN buses b ON b.id = s.bus_id
	           WHERE s.id = ? AND b.school_id = ?`
    var seat model.BusSeat
    err := r.db.QueryRowContext(ctx, q, seatID, schoolID).Scan(
        &seat.ID, &seat.BusID, &seat.SeatNumber, &seat.SeatType,
        &seat.IsAvailable, &seat.CreatedAt, &seat.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &seat, nil
}

// ListSeatsByBus returns all seats of a bus ordered by seat number.
// When availableOnly is set, occupied seats are filtered out.
func (r *BusRepo) ListSeatsByBus(ctx context.Context, busID, schoolID uint64, availableOnly bool) ([]model.BusSeat, error) {
    q := `SELECT s.id, s.bus_id, s.seat_number, s.seat_type, s.is_available, s.created_at, s.updated_at
	      FROM bus_seats s
	      JOIN buses b ON b.id = s.bus_id
	      WHERE s.bus_id = ? AND b.school_id = ?`
    if availableOnly {
        q += ` AND s.is_available = 1`
    }
    q += ` ORDER BY s.seat_number`
    rows, err := r.db.QueryContext(ctx, q, busID, schoolID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.BusSeat, 0)
    for rows.Next() {
        var seat model.BusSeat
        if err := rows.Scan(
            &seat.ID, &seat.BusID, &seat.SeatNumber, &seat.SeatType,
            &seat.IsAvailable, &seat.CreatedAt, &seat.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        result = append(result, seat)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// Reserve flips a seat to unavailable only while it is available.
// Zero rows affected is reported as booking.ErrSeatUnavailable.
func (r *BusRepo) Reserve(ctx context.Context, seatID uint64) error {
    const q = `UPDATE bus_seats SET is_available = 0, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND is_available = 1`
    res, err := r.db.ExecContext(ctx, q, seatID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return booking.ErrSeatUnavailable
    }
    return nil
}

// Release flips a seat back to available.
func (r *BusRepo) Release(ctx context.Context, seatID uint64) error {
    const q = `UPDATE bus_seats SET is_available = 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, seatID)
    return err
}

// CreateSchedule inserts a departure window for a bus.
func (r *BusRepo) CreateSchedule(ctx context.Context, s *model.BusSchedule) error {
    const q = `INSERT INTO bus_schedules (bus_id, departure_time, arrival_time, is_active)
	           VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, s.BusID, s.DepartureTime, s.ArrivalTime, s.IsActive)
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

// ListSchedulesByBus returns the departures of a bus, soonest first.
func (r *BusRepo) ListSchedulesByBus(ctx context.Context, busID, schoolID uint64) ([]model.BusSchedule, error) {
    const q = `SELECT s.id, s.bus_id, s.departure_time, s.arrival_time, s.is_active, s.created_at, s.updated_at
	           FROM bus_schedules s
	           JOIN buses b ON b.id = s.bus_id
	           WHERE s.bus_id = ? AND b.school_id = ?
	           ORDER BY s.departure_time`
    rows, err := r.db.QueryContext(ctx, q, busID, schoolID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.BusSchedule, 0)
    for rows.Next() {
        var s model.BusSchedule
        if err := rows.Scan(&s.ID, &s.BusID, &s.DepartureTime, &s.ArrivalTime, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
            return nil, err
        }
        result = append(result, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// SeatOccupancy summarizes seat availability for one bus.
type SeatOccupancy struct {
    TotalSeats     uint32 `json:"total_seats"`
    AvailableSeats uint32 `json:"available_seats"`
    OccupiedSeats  uint32 `json:"occupied_seats"`
}

// Occupancy returns the availability summary for a bus within a
// school.
func (r *BusRepo) Occupancy(ctx context.Context, busID, schoolID uint64) (*SeatOccupancy, error) {
    if _, err := r.GetBusByID(ctx, busID, schoolID); err != nil {
        return nil, err
    }
    const q = `SELECT COUNT(*), COALESCE(SUM(is_available), 0)
	           FROM bus_seats WHERE bus_id = ?`
    var total, available uint32
    if err := r.db.QueryRowContext(ctx, q, busID).Scan(&total, &available); err != nil {
        return nil, err
    }
    return &SeatOccupancy{
        TotalSeats:     total,
        AvailableSeats: available,
        OccupiedSeats:  total - available,
    }, nil
}
