package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/allocation"
    "github.com/campusgrid/school-seat-reservation/internal/model"
    "github.com/campusgrid/school-seat-reservation/internal/repository"
)

// ExamHandler bundles the exam room, schedule and allocation
// endpoints.  The allocation engine carries the seating rules; the
// handler only binds, validates and translates errors.
type ExamHandler struct {
    Rooms     *repository.ExamRoomRepo
    Schedules *repository.ExamScheduleRepo
    Allocs    *repository.ExamAllocationRepo
    Engine    *allocation.Engine
}

func NewExamHandler(rooms *repository.ExamRoomRepo, schedules *repository.ExamScheduleRepo, allocs *repository.ExamAllocationRepo, engine *allocation.Engine) *ExamHandler {
    return &ExamHandler{Rooms: rooms, Schedules: schedules, Allocs: allocs, Engine: engine}
}

type createRoomReq struct {
    RoomNumber    string `json:"room_number" validate:"required"`
    Capacity      uint32 `json:"capacity" validate:"required,gt=0"`
    BenchesPerRow uint32 `json:"benches_per_row"`
}

type roomResp struct {
    ID            uint64 `json:"id"`
    RoomNumber    string `json:"room_number"`
    Capacity      uint32 `json:"capacity"`
    BenchesPerRow uint32 `json:"benches_per_row"`
    IsActive      bool   `json:"is_active"`
}

func toRoomResp(r *model.ExamRoom) roomResp {
    return roomResp{ID: r.ID, RoomNumber: r.RoomNumber, Capacity: r.Capacity, BenchesPerRow: r.BenchesPerRow, IsActive: r.IsActive}
}

// CreateRoom handles POST /v1/exam/rooms.
func (h *ExamHandler) CreateRoom(c echo.Context) error {
    sid, ok := schoolIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    var req createRoomReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    room := &model.ExamRoom{
        SchoolID:      sid,
        RoomNumber:    req.RoomNumber,
        Capacity:      req.Capacity,
        BenchesPerRow: req.BenchesPerRow,
        IsActive:      true,
    }
    if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return respond(c, http.StatusConflict, "room number already exists", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusCreated, "room created", toRoomResp(room))
}

// GetRoom handles GET /v1/exam/rooms/:id.
func (h *ExamHandler) GetRoom(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    room, err := h.Rooms.GetByID(c.Request().Context(), id, sid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "room not found", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "ok", toRoomResp(room))
}

// ListRooms handles GET /v1/exam/rooms.  ?active=true filters out
// deactivated rooms.
func (h *ExamHandler) ListRooms(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    activeOnly := c.QueryParam("active") == "true"
    rooms, err := h.Rooms.ListBySchool(c.Request().Context(), sid, activeOnly)
    if err != nil {
        return failure(c, err)
    }
    out := make([]roomResp, 0, len(rooms))
    for i := range rooms {
        out = append(out, toRoomResp(&rooms[i]))
    }
    return respond(c, http.StatusOK, "ok", out)
}

// SetRoomActive handles PATCH /v1/exam/rooms/:id/active.
func (h *ExamHandler) SetRoomActive(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    var req struct {
        Active *bool `json:"active" validate:"required"`
    }
    if err := c.Bind(&req); err != nil || req.Active == nil {
        return badRequest(c, "active required")
    }
    if err := h.Rooms.SetActive(c.Request().Context(), id, sid, *req.Active); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "room not found", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "room updated", nil)
}
