package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/allocation"
    "github.com/campusgrid/school-seat-reservation/internal/model"
    "github.com/campusgrid/school-seat-reservation/internal/queue"
    queue_publisher "github.com/campusgrid/school-seat-reservation/internal/service"
)

type allocateReq struct {
    StudentIDs []uint64 `json:"student_ids" validate:"required,min=1"`
    Department string   `json:"department"`
    Partial    bool     `json:"partial"`
}

type allocationResp struct {
    StudentID    uint64  `json:"student_id"`
    BenchNumber  string  `json:"bench_number"`
    SeatPosition *string `json:"seat_position,omitempty"`
    RollNumber   *string `json:"roll_number,omitempty"`
}

type allocateResp struct {
    Allocated   []allocationResp `json:"allocated"`
    Skipped     []uint64         `json:"skipped"`
    Unallocated []uint64         `json:"unallocated"`
}

func toAllocationResp(allocs []model.ExamAllocation) []allocationResp {
    out := make([]allocationResp, 0, len(allocs))
    for _, a := range allocs {
        out = append(out, allocationResp{
            StudentID:    a.StudentID,
            BenchNumber:  a.BenchNumber,
            SeatPosition: a.SeatPosition,
            RollNumber:   a.RollNumber,
        })
    }
    return out
}

// Allocate handles POST /v1/exam/schedules/:id/allocations.  The
// roster is seated in request order; re-sending an overlapping
// roster only seats the students not yet allocated.
func (h *ExamHandler) Allocate(c echo.Context) error {
    sid, ok := schoolIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    scheduleID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    var req allocateReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }

    res, err := h.Engine.Allocate(c.Request().Context(), allocation.Request{
        SchoolID:   sid,
        ScheduleID: scheduleID,
        StudentIDs: req.StudentIDs,
        Department: req.Department,
        Partial:    req.Partial,
    })
    if err != nil {
        return failure(c, err)
    }

    if len(res.Allocations) > 0 {
        // best-effort audit event; failures never fail the request
        _ = queue_publisher.PublishAllocationCompleted(c.Request().Context(), queue.AllocationCompletedEvent{
            ScheduleID:  scheduleID,
            RoomID:      res.Allocations[0].RoomID,
            Allocated:   len(res.Allocations),
            Skipped:     len(res.Skipped),
            Unallocated: len(res.Unallocated),
            CompletedAt: time.Now().UTC().Format(time.RFC3339),
        })
    }

    out := allocateResp{
        Allocated:   toAllocationResp(res.Allocations),
        Skipped:     res.Skipped,
        Unallocated: res.Unallocated,
    }
    if out.Skipped == nil {
        out.Skipped = []uint64{}
    }
    if out.Unallocated == nil {
        out.Unallocated = []uint64{}
    }
    return respond(c, http.StatusCreated, "allocation completed", out)
}

// ListAllocations handles GET /v1/exam/schedules/:id/allocations and
// returns the seating chart for the schedule.
func (h *ExamHandler) ListAllocations(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    scheduleID, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    details, err := h.Allocs.ListBySchedule(c.Request().Context(), scheduleID, sid)
    if err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "ok", details)
}
