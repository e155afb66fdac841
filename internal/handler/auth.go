package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/config"
    "github.com/campusgrid/school-seat-reservation/internal/model"
    "github.com/campusgrid/school-seat-reservation/internal/repository"
    "github.com/campusgrid/school-seat-reservation/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg    config.Config
    Users  *repository.UserRepo
    Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
    SchoolID uint64 `json:"school_id" validate:"required"`
    Email    string `json:"email" validate:"required,email"`
    Password string `json:"password" validate:"required,min=8"`
    FullName string `json:"full_name"`
    Role     string `json:"role"`
}
type loginReq struct {
    Email    string `json:"email" validate:"required,email"`
    Password string `json:"password" validate:"required"`
}
type refreshReq struct {
    RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type userPart struct {
    ID       uint64 `json:"id"`
    SchoolID uint64 `json:"school_id"`
    Email    string `json:"email"`
    Role     string `json:"role"`
}
type authResp struct {
    User    userPart  `json:"user"`
    Access  tokenPart `json:"access"`
    Refresh tokenPart `json:"refresh"`
}

// registrableRoles are the roles a caller may self-assign at
// registration.  SUPERADMIN accounts are provisioned out of band.
var registrableRoles = map[string]bool{
    model.RoleAdmin:    true,
    model.RoleTeacher:  true,
    model.RoleStudent:  true,
    model.RoleParent:   true,
    model.RoleExaminer: true,
    model.RoleHOD:      true,
}

// Register creates a user inside a school and returns a token pair
// immediately.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    role := strings.ToUpper(strings.TrimSpace(req.Role))
    if role == "" {
        role = model.RoleStudent
    }
    if !registrableRoles[role] {
        return badRequest(c, "role not allowed")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.SchoolID, req.Email, req.Password, role, req.FullName, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return respond(c, http.StatusConflict, "email already exists", nil)
        }
        return failure(c, err)
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, req.SchoolID, role, h.Cfg.AccessTTLMin)
    if err != nil {
        return failure(c, err)
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return failure(c, err)
    }
    if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return failure(c, err)
    }

    return respond(c, http.StatusCreated, "registered", authResp{
        User:    userPart{ID: uid, SchoolID: req.SchoolID, Email: req.Email, Role: role},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
    })
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusUnauthorized, "invalid credentials", nil)
        }
        return failure(c, err)
    }
    if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return respond(c, http.StatusUnauthorized, "invalid credentials", nil)
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.SchoolID, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return failure(c, err)
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return failure(c, err)
    }
    if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return failure(c, err)
    }

    return respond(c, http.StatusOK, "logged in", authResp{
        User:    userPart{ID: u.ID, SchoolID: u.SchoolID, Email: u.Email, Role: u.Role},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
    })
}

// Refresh validates a refresh token by hash, revokes it and issues a
// fresh pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return badRequest(c, "refresh_token required")
    }
    raw := strings.TrimSpace(req.RefreshToken)
    hash := utils.HashRefreshRaw(raw)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        return respond(c, http.StatusUnauthorized, "invalid refresh", nil)
    }
    _ = h.Tokens.RevokeByHash(ctx, hash)

    // School scoping is carried in the token claims, so load the user
    // without a tenant filter via the email-free lookup below.
    var u model.User
    err = h.Users.DB.QueryRowContext(ctx,
        "SELECT id, school_id, email, role FROM users WHERE id=? LIMIT 1", userID).
        Scan(&u.ID, &u.SchoolID, &u.Email, &u.Role)
    if err != nil {
        return failure(c, err)
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.SchoolID, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return failure(c, err)
    }
    newRef, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return failure(c, err)
    }
    if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(newRef.Raw), newRef.Exp); err != nil {
        return failure(c, err)
    }

    return respond(c, http.StatusOK, "refreshed", authResp{
        User:    userPart{ID: u.ID, SchoolID: u.SchoolID, Email: u.Email, Role: u.Role},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: newRef.Raw, Expires: newRef.Exp},
    })
}

// Logout revokes the presented refresh token.  Access tokens simply
// expire.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return badRequest(c, "refresh_token required")
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))); err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
    uid, ok := userIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    sid, _ := schoolIDFrom(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, uid, sid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "user not found", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "ok", userPart{ID: u.ID, SchoolID: u.SchoolID, Email: u.Email, Role: u.Role})
}
