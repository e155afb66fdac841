package allocation

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/campusgrid/school-seat-reservation/internal/model"
)

func slotKeys(seats []Seat) []string {
    keys := make([]string, 0, len(seats))
    for _, s := range seats {
        keys = append(keys, SlotKey(s.BenchNumber, s.Position))
    }
    return keys
}

func TestPlanSingleOccupancy(t *testing.T) {
    seats, leftover, err := Plan(5, 1, nil, []uint64{10, 11, 12})
    require.NoError(t, err)
    require.Nil(t, leftover)

    assert.Equal(t, []string{"1", "2", "3"}, slotKeys(seats))
    for i, id := range []uint64{10, 11, 12} {
        assert.Equal(t, id, seats[i].StudentID)
        assert.Nil(t, seats[i].Position)
    }
}

func TestPlanDoubleOccupancyAlternation(t *testing.T) {
    seats, leftover, err := Plan(3, 2, nil, []uint64{1, 2, 3, 4, 5})
    require.NoError(t, err)
    require.Nil(t, leftover)

    assert.Equal(t, []string{"1-LEFT", "1-RIGHT", "2-LEFT", "2-RIGHT", "3-LEFT"}, slotKeys(seats))
}

func TestPlanSkipsOccupiedSlots(t *testing.T) {
    left := model.SeatLeft
    occupied := map[string]struct{}{
        SlotKey("1", &left): {},
        SlotKey("2", nil):   {},
    }

    // single occupancy: bench 2 taken
    seats, _, err := Plan(3, 1, occupied, []uint64{7, 8})
    require.NoError(t, err)
    assert.Equal(t, []string{"1", "3"}, slotKeys(seats))

    // double occupancy: 1-LEFT taken, so the walk starts at 1-RIGHT
    seats, _, err = Plan(3, 2, occupied, []uint64{7, 8})
    require.NoError(t, err)
    assert.Equal(t, []string{"1-RIGHT", "2-LEFT"}, slotKeys(seats))
}

func TestPlanCapacityExceeded(t *testing.T) {
    seats, leftover, err := Plan(2, 1, nil, []uint64{1, 2, 3, 4})
    require.ErrorIs(t, err, ErrCapacityExceeded)

    // the fitting prefix is still returned for partial mode
    assert.Equal(t, []string{"1", "2"}, slotKeys(seats))
    assert.Equal(t, []uint64{3, 4}, leftover)
}

func TestPlanPreservesInputOrder(t *testing.T) {
    roster := []uint64{42, 7, 99, 1}
    seats, _, err := Plan(10, 1, nil, roster)
    require.NoError(t, err)
    for i, id := range roster {
        assert.Equal(t, id, seats[i].StudentID)
    }
}

func TestPlanRejectsBadPerBench(t *testing.T) {
    _, _, err := Plan(5, 3, nil, []uint64{1})
    require.Error(t, err)
    _, _, err = Plan(5, 0, nil, []uint64{1})
    require.Error(t, err)
}

func TestSlotKey(t *testing.T) {
    right := model.SeatRight
    assert.Equal(t, "4", SlotKey("4", nil))
    assert.Equal(t, "4-RIGHT", SlotKey("4", &right))
}
