package model

import "time"

// HostelRoom represents a hostel room that contains a fixed number
// of cots.  Rooms carry a gender policy; OTHER rooms accept any
// student.
//
// Fields:
//  ID        – primary key identifier.
//  SchoolID  – tenant the room belongs to.
//  Name      – room label unique within the school.
//  Capacity  – number of cots created for the room.
//  Gender    – MALE, FEMALE or OTHER.
//  IsActive  – whether the room accepts bookings.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type HostelRoom struct {
    ID        uint64    // hostel_rooms.id
    SchoolID  uint64    // hostel_rooms.school_id
    Name      string    // hostel_rooms.name
    Capacity  uint32    // hostel_rooms.capacity
    Gender    string    // hostel_rooms.gender
    IsActive  bool      // hostel_rooms.is_active
    CreatedAt time.Time // hostel_rooms.created_at
    UpdatedAt time.Time // hostel_rooms.updated_at
}

// AcceptsGender reports whether a student of the given gender may
// book a cot in this room.  OTHER rooms accept everyone.
func (r *HostelRoom) AcceptsGender(gender string) bool {
    return r.Gender == GenderOther || r.Gender == gender
}

// HostelCot represents one cot inside a hostel room.  IsAvailable
// is false exactly while an ACTIVE booking references the cot; the
// flag is only ever flipped by the repository call that creates or
// closes the booking.
//
// Fields:
//  ID          – primary key identifier.
//  RoomID      – room the cot belongs to.
//  CotNumber   – 1-based number within the room.
//  IsAvailable – whether the cot may be booked.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type HostelCot struct {
    ID          uint64    // hostel_cots.id
    RoomID      uint64    // hostel_cots.room_id
    CotNumber   uint32    // hostel_cots.cot_number
    IsAvailable bool      // hostel_cots.is_available
    CreatedAt   time.Time // hostel_cots.created_at
    UpdatedAt   time.Time // hostel_cots.updated_at
}

// CanBeBooked reports whether the cot is currently free.
func (c *HostelCot) CanBeBooked() bool { return c.IsAvailable }

// HostelBooking records a student occupying a cot.  A student holds
// at most one ACTIVE hostel booking system-wide.
//
// Fields:
//  ID           – primary key identifier.
//  BookingRef   – opaque reference returned to clients.
//  StudentID    – student occupying the cot.
//  RoomID       – room of the cot at booking time.
//  CotID        – booked cot.
//  CheckInDate  – start of the stay.
//  CheckOutDate – end of the stay, nil while open-ended.
//  Status       – ACTIVE, COMPLETED or CANCELLED.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type HostelBooking struct {
    ID           uint64        // hostel_bookings.id
    BookingRef   string        // hostel_bookings.booking_ref
    StudentID    uint64        // hostel_bookings.student_id
    RoomID       uint64        // hostel_bookings.room_id
    CotID        uint64        // hostel_bookings.cot_id
    CheckInDate  time.Time     // hostel_bookings.check_in_date
    CheckOutDate *time.Time    // hostel_bookings.check_out_date (nullable)
    Status       BookingStatus // hostel_bookings.status
    CreatedAt    time.Time     // hostel_bookings.created_at
    UpdatedAt    time.Time     // hostel_bookings.updated_at
}

// CanBeCancelled reports whether the booking may be cancelled.
func (b *HostelBooking) CanBeCancelled() bool { return b.Status == BookingActive }

// CanBeCompleted reports whether the booking may be marked completed.
func (b *HostelBooking) CanBeCompleted() bool { return b.Status == BookingActive }
