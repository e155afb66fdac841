// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names.  Routing key equals queue name on the default
// exchange, matching how the publisher and consumer declare them.
const (
    BookingQueueName    = "booking.lifecycle"
    AllocationQueueName = "allocation.completed"
)

// BookingEvent is published when a hostel or bus booking is
// confirmed or released.  It carries enough for downstream
// consumers to log or notify without querying the primary database.
type BookingEvent struct {
    Kind       string `json:"kind"`   // "hostel" or "bus"
    Action     string `json:"action"` // "confirmed" or "released"
    BookingID  uint64 `json:"booking_id"`
    StudentID  uint64 `json:"student_id"`
    OccurredAt string `json:"occurred_at"`
}

// AllocationCompletedEvent is published after an exam seat
// allocation batch is persisted.
type AllocationCompletedEvent struct {
    ScheduleID  uint64 `json:"schedule_id"`
    RoomID      uint64 `json:"room_id"`
    Allocated   int    `json:"allocated"`
    Skipped     int    `json:"skipped"`
    Unallocated int    `json:"unallocated"`
    CompletedAt string `json:"completed_at"`
}
