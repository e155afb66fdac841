package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/campusgrid/school-seat-reservation/internal/model"
    "github.com/campusgrid/school-seat-reservation/internal/utils"
)

// UserRepo persists user accounts.  Users are tenant-scoped like
// every other entity; GetByEmail is the only lookup that crosses
// tenants because login happens before the tenant is known.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userColumns = `id, school_id, email, password_hash, role, full_name, is_active, created_at, updated_at`

// Create hashes the password and inserts the user, returning its ID.
func (r *UserRepo) Create(ctx context.Context, schoolID uint64, email, password, role, fullName string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (school_id, email, password_hash, role, full_name) VALUES (?,?,?,?,?)",
        schoolID, email, hash, role, fullName)
    if err != nil {
        if isDuplicateKey(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
        email).Scan(&u.ID, &u.SchoolID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// GetByID fetches a user by id within a school.
func (r *UserRepo) GetByID(ctx context.Context, id, schoolID uint64) (*model.User, error) {
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE id=? AND school_id=? LIMIT 1",
        id, schoolID).Scan(&u.ID, &u.SchoolID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &u, nil
}
