package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/booking"
    "github.com/campusgrid/school-seat-reservation/internal/model"
    "github.com/campusgrid/school-seat-reservation/internal/repository"
)

// BusHandler bundles the bus, seat, schedule and booking endpoints.
type BusHandler struct {
    Buses    *repository.BusRepo
    Bookings *repository.BusBookingRepo
    Engine   *booking.BusEngine
}

func NewBusHandler(buses *repository.BusRepo, bookings *repository.BusBookingRepo, engine *booking.BusEngine) *BusHandler {
    return &BusHandler{Buses: buses, Bookings: bookings, Engine: engine}
}

type createBusReq struct {
    BusNumber string `json:"bus_number" validate:"required"`
    RouteName string `json:"route_name" validate:"required"`
    Capacity  uint32 `json:"capacity" validate:"required,gt=0"`
}

type busResp struct {
    ID        uint64 `json:"id"`
    BusNumber string `json:"bus_number"`
    RouteName string `json:"route_name"`
    Capacity  uint32 `json:"capacity"`
    IsActive  bool   `json:"is_active"`
}

func toBusResp(b *model.Bus) busResp {
    return busResp{ID: b.ID, BusNumber: b.BusNumber, RouteName: b.RouteName, Capacity: b.Capacity, IsActive: b.IsActive}
}

type busSeatResp struct {
    ID          uint64 `json:"id"`
    BusID       uint64 `json:"bus_id"`
    SeatNumber  uint32 `json:"seat_number"`
    SeatType    string `json:"seat_type"`
    IsAvailable bool   `json:"is_available"`
}

// CreateBus handles POST /v1/buses.  Seats are created eagerly with
// the WINDOW/AISLE assignment derived from the seat number.
func (h *BusHandler) CreateBus(c echo.Context) error {
    sid, ok := schoolIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    var req createBusReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    bus := &model.Bus{
        SchoolID:  sid,
        BusNumber: req.BusNumber,
        RouteName: req.RouteName,
        Capacity:  req.Capacity,
        IsActive:  true,
    }
    if err := h.Buses.CreateBus(c.Request().Context(), bus); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return respond(c, http.StatusConflict, "bus number already exists", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusCreated, "bus created", toBusResp(bus))
}

// ListBuses handles GET /v1/buses.  ?active=true filters out
// inactive buses.
func (h *BusHandler) ListBuses(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    buses, err := h.Buses.ListBuses(c.Request().Context(), sid, c.QueryParam("active") == "true")
    if err != nil {
        return failure(c, err)
    }
    out := make([]busResp, 0, len(buses))
    for i := range buses {
        out = append(out, toBusResp(&buses[i]))
    }
    return respond(c, http.StatusOK, "ok", out)
}

// ListSeats handles GET /v1/buses/:id/seats.  ?available=true
// filters to bookable seats only.
func (h *BusHandler) ListSeats(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    busID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    seats, err := h.Buses.ListSeatsByBus(c.Request().Context(), busID, sid, c.QueryParam("available") == "true")
    if err != nil {
        return failure(c, err)
    }
    out := make([]busSeatResp, 0, len(seats))
    for _, s := range seats {
        out = append(out, busSeatResp{ID: s.ID, BusID: s.BusID, SeatNumber: s.SeatNumber, SeatType: s.SeatType, IsAvailable: s.IsAvailable})
    }
    return respond(c, http.StatusOK, "ok", out)
}

// Occupancy handles GET /v1/buses/:id/occupancy.
func (h *BusHandler) Occupancy(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    busID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    occ, err := h.Buses.Occupancy(c.Request().Context(), busID, sid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "bus not found", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "ok", occ)
}

type createBusScheduleReq struct {
    DepartureTime string `json:"departure_time" validate:"required"`
    ArrivalTime   string `json:"arrival_time" validate:"required"`
}

type busScheduleResp struct {
    ID            uint64 `json:"id"`
    BusID         uint64 `json:"bus_id"`
    DepartureTime string `json:"departure_time"`
    ArrivalTime   string `json:"arrival_time"`
    IsActive      bool   `json:"is_active"`
}

func toBusScheduleResp(s *model.BusSchedule) busScheduleResp {
    return busScheduleResp{
        ID:            s.ID,
        BusID:         s.BusID,
        DepartureTime: s.DepartureTime.UTC().Format(time.RFC3339),
        ArrivalTime:   s.ArrivalTime.UTC().Format(time.RFC3339),
        IsActive:      s.IsActive,
    }
}

// CreateSchedule handles POST /v1/buses/:id/schedules.
func (h *BusHandler) CreateSchedule(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    busID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    var req createBusScheduleReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    dep, err := time.Parse(time.RFC3339, req.DepartureTime)
    if err != nil {
        return badRequest(c, "departure_time must be RFC3339")
    }
    arr, err := time.Parse(time.RFC3339, req.ArrivalTime)
    if err != nil {
        return badRequest(c, "arrival_time must be RFC3339")
    }
    if !arr.After(dep) {
        return badRequest(c, "arrival_time must be after departure_time")
    }
    if _, err := h.Buses.GetBusByID(c.Request().Context(), busID, sid); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "bus not found", nil)
        }
        return failure(c, err)
    }
    s := &model.BusSchedule{BusID: busID, DepartureTime: dep.UTC(), ArrivalTime: arr.UTC(), IsActive: true}
    if err := h.Buses.CreateSchedule(c.Request().Context(), s); err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusCreated, "schedule created", toBusScheduleResp(s))
}

// ListSchedules handles GET /v1/buses/:id/schedules.
func (h *BusHandler) ListSchedules(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    busID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    schedules, err := h.Buses.ListSchedulesByBus(c.Request().Context(), busID, sid)
    if err != nil {
        return failure(c, err)
    }
    out := make([]busScheduleResp, 0, len(schedules))
    for i := range schedules {
        out = append(out, toBusScheduleResp(&schedules[i]))
    }
    return respond(c, http.StatusOK, "ok", out)
}
