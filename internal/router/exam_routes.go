package router

import (
    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/handler"
    "github.com/campusgrid/school-seat-reservation/internal/middleware"
    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// RegisterExam registers the exam room, schedule and allocation
// endpoints under /v1/exam.  Mutations are restricted to staff;
// reads are open to any authenticated user of the school so teachers
// and students can look up seating charts.
func RegisterExam(e *echo.Echo, h *handler.ExamHandler, jwtSecret string, cached echo.MiddlewareFunc) {
    g := e.Group("/v1/exam", middleware.JWTAuth(jwtSecret))

    staff := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin, model.RoleExaminer)

    // ---- Rooms ----
    g.POST("/rooms", h.CreateRoom, staff)
    g.GET("/rooms", h.ListRooms)
    g.GET("/rooms/:id", h.GetRoom)
    g.PATCH("/rooms/:id/active", h.SetRoomActive, staff)

    // ---- Schedules ----
    g.POST("/schedules", h.CreateSchedule, staff)
    g.GET("/schedules", h.ListSchedules)
    g.GET("/schedules/:id", h.GetSchedule)
    g.PUT("/schedules/:id/invigilator", h.AssignInvigilator, staff)
    g.DELETE("/schedules/:id", h.DeactivateSchedule, staff)

    // ---- Allocations ----
    g.POST("/schedules/:id/allocations", h.Allocate, staff)
    g.GET("/schedules/:id/allocations", h.ListAllocations, cached)
}
