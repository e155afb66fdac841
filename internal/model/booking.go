package model

// BookingStatus tracks the lifecycle of hostel and bus bookings.
// ACTIVE is the only state a booking can leave; COMPLETED and
// CANCELLED are terminal.
type BookingStatus string

const (
    BookingActive    BookingStatus = "ACTIVE"
    BookingCompleted BookingStatus = "COMPLETED"
    BookingCancelled BookingStatus = "CANCELLED"
)

// CanTransitionTo reports whether a booking in status s may move to
// the target status.  Both terminal states free the underlying unit
// but differ in meaning, so neither may be re-entered or left.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
    if s != BookingActive {
        return false
    }
    return target == BookingCompleted || target == BookingCancelled
}
