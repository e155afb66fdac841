package model

import "time"

// Role names stored in the users table and embedded into JWT claims.
// HOD is not a login surface of its own but heads of department are
// eligible invigilators, so the role participates in authorization.
const (
    RoleSuperAdmin = "SUPERADMIN"
    RoleAdmin      = "ADMIN"
    RoleTeacher    = "TEACHER"
    RoleStudent    = "STUDENT"
    RoleParent     = "PARENT"
    RoleExaminer   = "EXAMINER"
    RoleHOD        = "HOD"
)

// User represents an application user record as stored in the
// `users` table.  Every user belongs to exactly one school; the
// SchoolID is embedded into issued tokens so that handlers can
// scope all queries to the caller's tenant.  The json tags are
// omitted because these structs are used internally by the
// repository layer; handlers define separate response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  SchoolID     – tenant the user belongs to.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (SUPERADMIN, ADMIN, TEACHER, STUDENT,
//                 PARENT, EXAMINER, HOD).
//  FullName     – display name.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    SchoolID     uint64    // users.school_id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    FullName     string    // users.full_name
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// CanInvigilate reports whether the user's role makes them eligible
// to supervise an exam schedule.
func (u *User) CanInvigilate() bool {
    switch u.Role {
    case RoleTeacher, RoleExaminer, RoleHOD:
        return true
    }
    return false
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
