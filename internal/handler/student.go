package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/campusgrid/school-seat-reservation/internal/repository"
)

// StudentHandler exposes the read-only student directory used when
// composing allocation rosters.
type StudentHandler struct {
    Students *repository.StudentRepo
}

func NewStudentHandler(students *repository.StudentRepo) *StudentHandler {
    return &StudentHandler{Students: students}
}

type studentResp struct {
    ID         uint64 `json:"id"`
    FullName   string `json:"full_name"`
    ClassName  string `json:"class_name"`
    RollNumber string `json:"roll_number"`
    Gender     string `json:"gender"`
}

// List handles GET /v1/students.  ?department= restricts results to
// class names containing the value, with the same case-sensitive
// containment the allocation filter uses.
func (h *StudentHandler) List(c echo.Context) error {
    sid, ok := schoolIDFrom(c)
    if !ok {
        return respond(c, http.StatusUnauthorized, "unauthorized", nil)
    }
    students, err := h.Students.ListBySchool(c.Request().Context(), sid, c.QueryParam("department"))
    if err != nil {
        return failure(c, err)
    }
    out := make([]studentResp, 0, len(students))
    for _, s := range students {
        out = append(out, studentResp{ID: s.ID, FullName: s.FullName, ClassName: s.ClassName, RollNumber: s.RollNumber, Gender: s.Gender})
    }
    return respond(c, http.StatusOK, "ok", out)
}
