package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

type createScheduleReq struct {
    ExamType         string  `json:"exam_type" validate:"required,oneof=SEMESTER MID_TERM FINAL UNIT_TEST"`
    Subject          string  `json:"subject" validate:"required"`
    Department       *string `json:"department"`
    ClassName        *string `json:"class_name"`
    RoomID           uint64  `json:"room_id" validate:"required"`
    ExamDate         string  `json:"exam_date" validate:"required"`
    StartTime        string  `json:"start_time" validate:"required"`
    EndTime          string  `json:"end_time" validate:"required"`
    StudentsPerBench uint8   `json:"students_per_bench" validate:"omitempty,oneof=1 2"`
}

type scheduleResp struct {
    ID               uint64  `json:"id"`
    ExamType         string  `json:"exam_type"`
    Subject          string  `json:"subject"`
    Department       *string `json:"department,omitempty"`
    ClassName        *string `json:"class_name,omitempty"`
    RoomID           uint64  `json:"room_id"`
    ExamDate         string  `json:"exam_date"`
    StartTime        string  `json:"start_time"`
    EndTime          string  `json:"end_time"`
    StudentsPerBench uint8   `json:"students_per_bench"`
    InvigilatorID    *uint64 `json:"invigilator_id,omitempty"`
    IsActive         bool    `json:"is_active"`
}

func toScheduleResp(s *model.ExamSchedule) scheduleResp {
    return scheduleResp{
        ID:               s.ID,
        ExamType:         s.ExamType,
        Subject:          s.Subject,
        Department:       s.Department,
        ClassName:        s.ClassName,
        RoomID:           s.RoomID,
        ExamDate:         s.ExamDate.Format("2006-01-02"),
        StartTime:        s.StartTime.UTC().Format(time.RFC3339),
        EndTime:          s.EndTime.UTC().Format(time.RFC3339),
        StudentsPerBench: s.StudentsPerBench,
        InvigilatorID:    s.InvigilatorID,
        IsActive:         s.IsActive,
    }
}

// CreateSchedule handles POST /v1/exam/schedules.  The referenced
// room must exist, be active and belong to the caller's school, and
// the sitting window must be well-formed.
func (h *ExamHandler) CreateSchedule(c echo.Context) error {
    sid, ok := schoolIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    var req createScheduleReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }

    examDate, err := time.Parse("2006-01-02", req.ExamDate)
    if err != nil {
        return badRequest(c, "exam_date must be YYYY-MM-DD")
    }
    start, err := time.Parse(time.RFC3339, req.StartTime)
    if err != nil {
        return badRequest(c, "start_time must be RFC3339")
    }
    end, err := time.Parse(time.RFC3339, req.EndTime)
    if err != nil {
        return badRequest(c, "end_time must be RFC3339")
    }
    if !end.After(start) {
        return badRequest(c, "end_time must be after start_time")
    }
    perBench := req.StudentsPerBench
    if perBench == 0 {
        perBench = 1
    }

    room, err := h.Rooms.GetByID(c.Request().Context(), req.RoomID, sid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "room not found", nil)
        }
        return failure(c, err)
    }
    if !room.IsActive {
        return badRequest(c, "room is not active")
    }

    s := &model.ExamSchedule{
        SchoolID:         sid,
        ExamType:         req.ExamType,
        Subject:          req.Subject,
        Department:       req.Department,
        ClassName:        req.ClassName,
        RoomID:           req.RoomID,
        ExamDate:         examDate,
        StartTime:        start.UTC(),
        EndTime:          end.UTC(),
        StudentsPerBench: perBench,
        IsActive:         true,
    }
    if err := h.Schedules.Create(c.Request().Context(), s); err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusCreated, "schedule created", toScheduleResp(s))
}

// GetSchedule handles GET /v1/exam/schedules/:id.
func (h *ExamHandler) GetSchedule(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    s, err := h.Schedules.GetByID(c.Request().Context(), id, sid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "schedule not found", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "ok", toScheduleResp(s))
}

// ListSchedules handles GET /v1/exam/schedules with optional
// ?exam_type= and ?exam_date=YYYY-MM-DD filters.
func (h *ExamHandler) ListSchedules(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    examType := c.QueryParam("exam_type")
    var examDate *time.Time
    if v := c.QueryParam("exam_date"); v != "" {
        d, err := time.Parse("2006-01-02", v)
        if err != nil {
            return badRequest(c, "exam_date must be YYYY-MM-DD")
        }
        examDate = &d
    }
    schedules, err := h.Schedules.ListBySchool(c.Request().Context(), sid, examType, examDate)
    if err != nil {
        return failure(c, err)
    }
    out := make([]scheduleResp, 0, len(schedules))
    for i := range schedules {
        out = append(out, toScheduleResp(&schedules[i]))
    }
    return respond(c, http.StatusOK, "ok", out)
}

// AssignInvigilator handles PUT /v1/exam/schedules/:id/invigilator.
// Only TEACHER, EXAMINER and HOD users may be assigned.
func (h *ExamHandler) AssignInvigilator(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    var req struct {
        InvigilatorID uint64 `json:"invigilator_id" validate:"required"`
    }
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    if err := h.Engine.AssignInvigilator(c.Request().Context(), sid, id, req.InvigilatorID); err != nil {
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "invigilator assigned", nil)
}

// DeactivateSchedule handles DELETE /v1/exam/schedules/:id.  The
// sitting is cancelled, not erased; existing allocations remain for
// the record.
func (h *ExamHandler) DeactivateSchedule(c echo.Context) error {
    sid, _ := schoolIDFrom(c)
    id, err := pathID(c, "id")
    if err != nil {
        return badRequest(c, "invalid id")
    }
    if err := h.Schedules.Deactivate(c.Request().Context(), id, sid); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respond(c, http.StatusNotFound, "schedule not found", nil)
        }
        return failure(c, err)
    }
    return respond(c, http.StatusOK, "schedule deactivated", nil)
}
