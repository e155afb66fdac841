// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values allow higher layers
// such as handlers to distinguish between different failure
// scenarios.  ErrForbidden indicates that the current tenant does
// not own a resource, while ErrConflict signals that a write lost
// to a database uniqueness guarantee (for example two racing
// allocation batches landing on the same bench slot).
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation on
// a resource owned by a different school.  Handlers should
// translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because
// of conflicting state, such as a duplicate-key rejection on the
// allocations table under concurrent batches.  Handlers should
// translate this into an HTTP 409 response; the request is safe to
// retry.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate-entry
// error (1062).  The schema's unique keys are the last line of
// defence for the no-double-booking invariants, so violations are
// mapped to ErrConflict rather than bubbled up raw.
func isDuplicateKey(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}
