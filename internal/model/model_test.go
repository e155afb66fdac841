package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
    tests := []struct {
        name string
        from BookingStatus
        to   BookingStatus
        want bool
    }{
        {"active to completed", BookingActive, BookingCompleted, true},
        {"active to cancelled", BookingActive, BookingCancelled, true},
        {"completed is terminal", BookingCompleted, BookingCancelled, false},
        {"cancelled is terminal", BookingCancelled, BookingActive, false},
        {"no self transition", BookingActive, BookingActive, false},
        {"no resurrection", BookingCompleted, BookingActive, false},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
        })
    }
}

func TestSeatTypeForNumber(t *testing.T) {
    assert.Equal(t, SeatTypeWindow, SeatTypeForNumber(1))
    assert.Equal(t, SeatTypeAisle, SeatTypeForNumber(2))
    assert.Equal(t, SeatTypeWindow, SeatTypeForNumber(39))
    assert.Equal(t, SeatTypeAisle, SeatTypeForNumber(40))
}

func TestHostelRoomAcceptsGender(t *testing.T) {
    female := HostelRoom{Gender: GenderFemale}
    assert.True(t, female.AcceptsGender(GenderFemale))
    assert.False(t, female.AcceptsGender(GenderMale))

    mixed := HostelRoom{Gender: GenderOther}
    assert.True(t, mixed.AcceptsGender(GenderMale))
    assert.True(t, mixed.AcceptsGender(GenderFemale))
    assert.True(t, mixed.AcceptsGender(GenderOther))
}

func TestCanInvigilate(t *testing.T) {
    for _, role := range []string{RoleTeacher, RoleExaminer, RoleHOD} {
        u := User{Role: role}
        assert.True(t, u.CanInvigilate(), role)
    }
    for _, role := range []string{RoleStudent, RoleParent, RoleAdmin, RoleSuperAdmin} {
        u := User{Role: role}
        assert.False(t, u.CanInvigilate(), role)
    }
}
