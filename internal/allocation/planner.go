package allocation

import (
    "errors"
    "fmt"
    "strconv"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// ErrCapacityExceeded is returned when a roster does not fit into
// the free bench slots of a room.  Handlers translate this into a
// 400-class state error.
var ErrCapacityExceeded = errors.New("room capacity exceeded")

// Seat identifies one bench slot produced by the planner.  Position
// is nil on single-occupancy schedules.
type Seat struct {
    StudentID   uint64
    BenchNumber string
    Position    *string
}

// SlotKey builds the occupancy key for a bench slot.  Single
// occupancy keys on the bench number alone ("3"); double occupancy
// appends the position ("3-LEFT").  Repositories use the same keys
// when loading existing allocations so the planner never reuses an
// occupied slot.
func SlotKey(benchNumber string, position *string) string {
    if position == nil {
        return benchNumber
    }
    return fmt.Sprintf("%s-%s", benchNumber, *position)
}

// freeSlots walks benches 1..capacity in order and collects every
// slot key that is not already occupied.  For two-per-bench rooms
// the walk alternates LEFT then RIGHT within a bench before moving
// to the next bench, which yields the 1-LEFT, 1-RIGHT, 2-LEFT, ...
// fill order invigilators expect.
func freeSlots(capacity uint32, perBench uint8, occupied map[string]struct{}) []Seat {
    slots := make([]Seat, 0, int(capacity)*int(perBench))
    for bench := uint32(1); bench <= capacity; bench++ {
        benchNumber := strconv.FormatUint(uint64(bench), 10)
        if perBench == 1 {
            if _, taken := occupied[SlotKey(benchNumber, nil)]; !taken {
                slots = append(slots, Seat{BenchNumber: benchNumber})
            }
            continue
        }
        for _, pos := range []string{model.SeatLeft, model.SeatRight} {
            p := pos
            if _, taken := occupied[SlotKey(benchNumber, &p)]; !taken {
                slots = append(slots, Seat{BenchNumber: benchNumber, Position: &p})
            }
        }
    }
    return slots
}

// Plan assigns each student a free bench slot in input order.  It
// never reorders the roster; callers wanting deterministic charts
// must pre-sort studentIDs themselves.  The occupied set carries
// the slot keys already allocated for the schedule and room.
//
// When the roster does not fit, Plan still returns the seats for
// the prefix that fits together with the IDs left over, and
// ErrCapacityExceeded.  Callers choose between failing the whole
// batch and keeping the partial prefix.
func Plan(capacity uint32, perBench uint8, occupied map[string]struct{}, studentIDs []uint64) ([]Seat, []uint64, error) {
    if perBench != 1 && perBench != 2 {
        return nil, nil, fmt.Errorf("students per bench must be 1 or 2, got %d", perBench)
    }
    free := freeSlots(capacity, perBench, occupied)
    seats := make([]Seat, 0, len(studentIDs))
    for i, studentID := range studentIDs {
        if i >= len(free) {
            return seats, studentIDs[i:], ErrCapacityExceeded
        }
        seat := free[i]
        seat.StudentID = studentID
        seats = append(seats, seat)
    }
    return seats, nil, nil
}
