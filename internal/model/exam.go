package model

import "time"

// Exam types accepted on schedules.
const (
    ExamSemester = "SEMESTER"
    ExamMidTerm  = "MID_TERM"
    ExamFinal    = "FINAL"
    ExamUnitTest = "UNIT_TEST"
)

// Seat positions on a bench when a schedule seats two students per
// bench.  Single-occupancy schedules store no position at all.
const (
    SeatLeft  = "LEFT"
    SeatRight = "RIGHT"
)

// ExamRoom represents a physical examination room.  Capacity counts
// benches, not students; the number of students a room can hold for
// a schedule is capacity multiplied by the schedule's per-bench
// occupancy.
//
// Fields:
//  ID            – primary key identifier.
//  SchoolID      – tenant the room belongs to.
//  RoomNumber    – room label unique within the school.
//  Capacity      – number of benches (always > 0).
//  BenchesPerRow – layout hint for seating charts.
//  IsActive      – whether the room can be scheduled.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type ExamRoom struct {
    ID            uint64    // exam_rooms.id
    SchoolID      uint64    // exam_rooms.school_id
    RoomNumber    string    // exam_rooms.room_number
    Capacity      uint32    // exam_rooms.capacity
    BenchesPerRow uint32    // exam_rooms.benches_per_row
    IsActive      bool      // exam_rooms.is_active
    CreatedAt     time.Time // exam_rooms.created_at
    UpdatedAt     time.Time // exam_rooms.updated_at
}

// ExamSchedule represents a single sitting of an exam in a room.
// Allocations reference the schedule, and the schedule's
// StudentsPerBench decides whether bench slots carry a LEFT/RIGHT
// position.
//
// Fields:
//  ID               – primary key identifier.
//  SchoolID         – tenant the schedule belongs to.
//  ExamType         – SEMESTER, MID_TERM, FINAL or UNIT_TEST.
//  Subject          – subject being examined.
//  Department       – optional department label.
//  ClassName        – optional class restriction.
//  RoomID           – room the sitting takes place in.
//  ExamDate         – calendar date of the exam.
//  StartTime        – start of the sitting (must precede EndTime).
//  EndTime          – end of the sitting.
//  StudentsPerBench – 1 or 2.
//  InvigilatorID    – supervising user, if assigned.
//  IsActive         – false once the sitting is cancelled.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type ExamSchedule struct {
    ID               uint64    // exam_schedules.id
    SchoolID         uint64    // exam_schedules.school_id
    ExamType         string    // exam_schedules.exam_type
    Subject          string    // exam_schedules.subject
    Department       *string   // exam_schedules.department (nullable)
    ClassName        *string   // exam_schedules.class_name (nullable)
    RoomID           uint64    // exam_schedules.room_id
    ExamDate         time.Time // exam_schedules.exam_date
    StartTime        time.Time // exam_schedules.start_time
    EndTime          time.Time // exam_schedules.end_time
    StudentsPerBench uint8     // exam_schedules.students_per_bench
    InvigilatorID    *uint64   // exam_schedules.invigilator_id (nullable)
    IsActive         bool      // exam_schedules.is_active
    CreatedAt        time.Time // exam_schedules.created_at
    UpdatedAt        time.Time // exam_schedules.updated_at
}

// IsActiveSchedule reports whether students may still be allocated
// to this sitting.
func (s *ExamSchedule) IsActiveSchedule() bool { return s.IsActive }

// ExamAllocation assigns one student to one bench slot for a
// schedule.  For a given schedule and room the pair of bench number
// and seat position is unique, and a student holds at most one
// allocation per schedule.  BenchNumber is stored as a string to
// match the seating-chart labels printed for invigilators.
//
// Fields:
//  ID           – primary key identifier.
//  ScheduleID   – schedule the allocation belongs to.
//  StudentID    – allocated student.
//  RoomID       – room of the schedule at allocation time.
//  BenchNumber  – numeric-like bench label ("1", "2", ...).
//  SeatPosition – LEFT or RIGHT, nil on single-occupancy benches.
//  RollNumber   – student roll number snapshot for the chart.
//  CreatedAt    – creation timestamp.
type ExamAllocation struct {
    ID           uint64    // exam_allocations.id
    ScheduleID   uint64    // exam_allocations.schedule_id
    StudentID    uint64    // exam_allocations.student_id
    RoomID       uint64    // exam_allocations.room_id
    BenchNumber  string    // exam_allocations.bench_number
    SeatPosition *string   // exam_allocations.seat_position (nullable)
    RollNumber   *string   // exam_allocations.roll_number (nullable)
    CreatedAt    time.Time // exam_allocations.created_at
}
