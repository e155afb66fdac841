package model

import "time"

// Seat types on a bus.  The type is assigned by a fixed heuristic
// when the seats are generated: odd seat numbers face the window,
// even seat numbers sit on the aisle.
const (
    SeatTypeWindow = "WINDOW"
    SeatTypeAisle  = "AISLE"
)

// Bus represents a transport bus owned by a school.  Creating a bus
// eagerly creates Capacity seat rows numbered 1..Capacity.
//
// Fields:
//  ID           – primary key identifier.
//  SchoolID     – tenant the bus belongs to.
//  BusNumber    – registration/label unique within the school.
//  RouteName    – human-readable route description.
//  Capacity     – number of seats.
//  IsActive     – whether the bus accepts bookings.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Bus struct {
    ID        uint64    // buses.id
    SchoolID  uint64    // buses.school_id
    BusNumber string    // buses.bus_number
    RouteName string    // buses.route_name
    Capacity  uint32    // buses.capacity
    IsActive  bool      // buses.is_active
    CreatedAt time.Time // buses.created_at
    UpdatedAt time.Time // buses.updated_at
}

// BusSeat represents one seat on a bus.  IsAvailable mirrors the
// hostel cot flag: false exactly while an ACTIVE booking for some
// travel date references the seat.
//
// Fields:
//  ID          – primary key identifier.
//  BusID       – bus the seat belongs to.
//  SeatNumber  – 1-based number within the bus.
//  SeatType    – WINDOW or AISLE.
//  IsAvailable – whether the seat may be booked.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type BusSeat struct {
    ID          uint64    // bus_seats.id
    BusID       uint64    // bus_seats.bus_id
    SeatNumber  uint32    // bus_seats.seat_number
    SeatType    string    // bus_seats.seat_type
    IsAvailable bool      // bus_seats.is_available
    CreatedAt   time.Time // bus_seats.created_at
    UpdatedAt   time.Time // bus_seats.updated_at
}

// CanBeBooked reports whether the seat is currently free.
func (s *BusSeat) CanBeBooked() bool { return s.IsAvailable }

// SeatTypeForNumber returns the fixed WINDOW/AISLE assignment for a
// 1-based seat number.
func SeatTypeForNumber(n uint32) string {
    if n%2 == 1 {
        return SeatTypeWindow
    }
    return SeatTypeAisle
}

// BusSchedule represents a recurring or dated departure of a bus.
// Bookings are made against a bus and travel date; the schedule
// captures the departure window shown to students.
//
// Fields:
//  ID            – primary key identifier.
//  BusID         – bus operating the departure.
//  DepartureTime – when the bus leaves.
//  ArrivalTime   – when the bus arrives (after DepartureTime).
//  IsActive      – whether the departure is live.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type BusSchedule struct {
    ID            uint64    // bus_schedules.id
    BusID         uint64    // bus_schedules.bus_id
    DepartureTime time.Time // bus_schedules.departure_time
    ArrivalTime   time.Time // bus_schedules.arrival_time
    IsActive      bool      // bus_schedules.is_active
    CreatedAt     time.Time // bus_schedules.created_at
    UpdatedAt     time.Time // bus_schedules.updated_at
}

// BusBooking records a student occupying a seat for a travel date.
// A student may hold ACTIVE bookings on different buses or dates
// concurrently, but never two on the same bus for the same date.
//
// Fields:
//  ID         – primary key identifier.
//  BookingRef – opaque reference returned to clients.
//  StudentID  – student occupying the seat.
//  BusID      – bus of the seat at booking time.
//  SeatID     – booked seat.
//  TravelDate – calendar date of travel.
//  Status     – ACTIVE, COMPLETED or CANCELLED.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type BusBooking struct {
    ID         uint64        // bus_bookings.id
    BookingRef string        // bus_bookings.booking_ref
    StudentID  uint64        // bus_bookings.student_id
    BusID      uint64        // bus_bookings.bus_id
    SeatID     uint64        // bus_bookings.seat_id
    TravelDate time.Time     // bus_bookings.travel_date
    Status     BookingStatus // bus_bookings.status
    CreatedAt  time.Time     // bus_bookings.created_at
    UpdatedAt  time.Time     // bus_bookings.updated_at
}

// CanBeCancelled reports whether the booking may be cancelled.
func (b *BusBooking) CanBeCancelled() bool { return b.Status == BookingActive }

// CanBeCompleted reports whether the booking may be marked completed.
func (b *BusBooking) CanBeCompleted() bool { return b.Status == BookingActive }
