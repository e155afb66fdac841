package router

import (
    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/handler"
    "github.com/campusgrid/school-seat-reservation/internal/middleware"
    "github.com/campusgrid/school-seat-reservation/internal/model"
)

// bookers are the roles that may create and close bookings: students
// book for themselves, parents on their behalf, admins for anyone.
var bookers = []string{model.RoleSuperAdmin, model.RoleAdmin, model.RoleStudent, model.RoleParent}

// RegisterHostel registers the hostel endpoints under /v1/hostel.
// Room management is admin-only; availability reads run behind the
// response cache.
func RegisterHostel(e *echo.Echo, h *handler.HostelHandler, jwtSecret string, cached echo.MiddlewareFunc) {
    g := e.Group("/v1/hostel", middleware.JWTAuth(jwtSecret))

    admin := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin)
    book := middleware.RequireRole(bookers...)

    g.POST("/rooms", h.CreateRoom, admin)
    g.GET("/rooms", h.ListRooms)
    g.GET("/rooms/:id/cots", h.ListCots, cached)
    g.GET("/rooms/:id/occupancy", h.Occupancy, cached)

    g.POST("/bookings", h.Book, book)
    g.GET("/bookings/:id", h.GetBooking)
    g.POST("/bookings/:id/cancel", h.Cancel, book)
    g.POST("/bookings/:id/complete", h.Complete, admin)
    g.GET("/students/:id/bookings", h.ListStudentBookings)
}

// RegisterBus registers the bus endpoints under /v1/bus.
func RegisterBus(e *echo.Echo, h *handler.BusHandler, jwtSecret string, cached echo.MiddlewareFunc) {
    g := e.Group("/v1/bus", middleware.JWTAuth(jwtSecret))

    admin := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin)
    book := middleware.RequireRole(bookers...)

    g.POST("/buses", h.CreateBus, admin)
    g.GET("/buses", h.ListBuses)
    g.GET("/buses/:id/seats", h.ListSeats, cached)
    g.GET("/buses/:id/occupancy", h.Occupancy, cached)
    g.POST("/buses/:id/schedules", h.CreateSchedule, admin)
    g.GET("/buses/:id/schedules", h.ListSchedules)

    g.POST("/bookings", h.Book, book)
    g.GET("/bookings/:id", h.GetBooking)
    g.POST("/bookings/:id/cancel", h.Cancel, book)
    g.POST("/bookings/:id/complete", h.Complete, admin)
    g.GET("/students/:id/bookings", h.ListStudentBookings)
}

// RegisterStudents registers the student directory under /v1.
func RegisterStudents(e *echo.Echo, h *handler.StudentHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    g.GET("/students", h.List, middleware.RequireRole(
        model.RoleSuperAdmin, model.RoleAdmin, model.RoleTeacher, model.RoleExaminer, model.RoleHOD,
    ))
}
