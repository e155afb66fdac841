package model

import "time"

// School represents a tenant of the platform.  Every room, bus,
// student and booking in the system hangs off exactly one school,
// and repositories re-verify the school on every query so that
// cross-tenant references can never occur.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the school.
//  Subdomain – unique subdomain the tenant is reached under.
//  IsActive  – whether the tenant is active.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type School struct {
    ID        uint64    // schools.id
    Name      string    // schools.name
    Subdomain string    // schools.subdomain
    IsActive  bool      // schools.is_active
    CreatedAt time.Time // schools.created_at
    UpdatedAt time.Time // schools.updated_at
}

// Gender values used for students and hostel rooms.
const (
    GenderMale   = "MALE"
    GenderFemale = "FEMALE"
    GenderOther  = "OTHER"
)

// Student represents a student record as consumed by the allocation
// and booking engines.  The full student CRUD lives outside this
// service; the engines only need gender, class and roll number.
//
// Fields:
//  ID         – primary key identifier.
//  SchoolID   – tenant the student belongs to.
//  UserID     – login account for this student, if any.
//  FullName   – display name.
//  ClassName  – class/section label, e.g. "CS-3A".  Department
//               filtering matches on this value.
//  RollNumber – roll number within the class.
//  Gender     – MALE, FEMALE or OTHER.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Student struct {
    ID         uint64    // students.id
    SchoolID   uint64    // students.school_id
    UserID     *uint64   // students.user_id (nullable)
    FullName   string    // students.full_name
    ClassName  string    // students.class_name
    RollNumber string    // students.roll_number
    Gender     string    // students.gender
    CreatedAt  time.Time // students.created_at
    UpdatedAt  time.Time // students.updated_at
}
