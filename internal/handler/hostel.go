package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/booking"
    "github.com/campusgrid/school-seat-reservation/internal/model"
    "github.com/campusgrid/school-seat-reservation/internal/repository"
)

// HostelHandler bundles the hostel room, cot and booking endpoints.
type HostelHandler struct {
    Rooms    *repository.HostelRepo
    Bookings *repository.HostelBookingRepo
    Engine   *booking.HostelEngine
}

func NewHostelHandler(rooms *repository.HostelRepo, bookings *repository.HostelBookingRepo, engine *booking.HostelEngine) *HostelHandler {
    return &HostelHandler{Rooms: rooms, Bookings: bookings, Engine: engine}
}

type createHostelRoomReq struct {
    Name     string `json:"name" validate:"required"`
    Capacity uint32 `json:"capacity" validate:"required,gt=0"`
    Gender   string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
}

type hostelRoomResp struct {
    ID       uint64 `json:"id"`
    Name     string `json:"name"`
    Capacity uint32 `json:"capacity"`
    Gender   string `json:"gender"`
    IsActive bool   `json:"is_active"`
}

func toHostelRoomResp(r *model.HostelRoom) hostelRoomResp {
    return hostelRoomResp{ID: r.ID, Name: r.Name, Capacity: r.Capacity, Gender: r.Gender, IsActive: r.IsActive}
}

type cotResp struct {
    ID          uint64 `json:"id"`
    RoomID      uint64 `json:"room_id"`
    CotNumber   uint32 `json:"cot_number"`
    IsAvailable bool   `json:"is_available"`
}

// CreateRoom handles POST /v1/hostel/rooms.  The room's cots are
// created eagerly, numbered 1..capacity.
func (h *HostelHandler) CreateRoom(c echo.Context) error {
    sid, ok := schoolIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    var req createHostelRoomReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    room := &model.HostelRoom{
        SchoolID: sid,
        Name:     req.Name,
        Capacity: req.Capacity,
        Gender:   req.Gender,
        IsActive: true,
    }
    if err := h.Rooms.CreateRoom(c.Request().Context(), room); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return respond(c, http.StatusConflict, "room name already exists", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusCreated, "room created", toHostelRoomResp(room))
}

// ListRooms handles GET /v1/hostel/rooms with optional ?gender=.
func (h *HostelHandler) ListRooms(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    gender := c.QueryParam("gender")
    rooms, err := h.Rooms.ListRooms(c.Request().Context(), sid, gender)
    if err != nil {
        return failure(c, err)
    }
    out := make([]hostelRoomResp, 0, len(rooms))
    for i := range rooms {
        out = append(out, toHostelRoomResp(&rooms[i]))
    }
    return respond(c, http.StatusOK, "ok", out)
}

// ListCots handles GET /v1/hostel/rooms/:id/cots.  ?available=true
// filters to bookable cots only.
func (h *HostelHandler) ListCots(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    roomID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    cots, err := h.Rooms.ListCotsByRoom(c.Request().Context(), roomID, sid, c.QueryParam("available") == "true")
    if err != nil {
        return failure(c, err)
    }
    out := make([]cotResp, 0, len(cots))
    for _, cot := range cots {
        out = append(out, cotResp{ID: cot.ID, RoomID: cot.RoomID, CotNumber: cot.CotNumber, IsAvailable: cot.IsAvailable})
    }
    return respond(c, http.StatusOK, "ok", out)
}

// Occupancy handles GET /v1/hostel/rooms/:id/occupancy.
func (h *HostelHandler) Occupancy(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    roomID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    occ, err := h.Rooms.Occupancy(c.Request().Context(), roomID, sid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "room not found", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "ok", occ)
}
