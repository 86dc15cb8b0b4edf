package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/pkg/types"
)

func interval(t *testing.T, start string, minutes int) Interval {
	t.Helper()
	iv, err := NewInterval(types.TimeString(start), minutes)
	require.NoError(t, err)
	return iv
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        Interval
		b        Interval
		expected bool
	}{
		{
			name:     "полное пересечение",
			a:        Interval{Start: "10:00", End: "11:00"},
			b:        Interval{Start: "10:15", End: "10:45"},
			expected: true,
		},
		{
			name:     "частичное пересечение",
			a:        Interval{Start: "09:45", End: "10:15"},
			b:        Interval{Start: "10:00", End: "10:30"},
			expected: true,
		},
		{
			name:     "граничащие интервалы не пересекаются",
			a:        Interval{Start: "10:00", End: "11:00"},
			b:        Interval{Start: "11:00", End: "12:00"},
			expected: false,
		},
		{
			name:     "раздельные интервалы",
			a:        Interval{Start: "09:00", End: "09:30"},
			b:        Interval{Start: "14:00", End: "15:00"},
			expected: false,
		},
		{
			name:     "одинаковые интервалы",
			a:        Interval{Start: "10:00", End: "10:30"},
			b:        Interval{Start: "10:00", End: "10:30"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.a, tt.b))
			// Симметрия: conflict(A,B) == conflict(B,A)
			assert.Equal(t, Overlaps(tt.a, tt.b), Overlaps(tt.b, tt.a))
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []*domain.AppointmentSegment{
		{StartTime: "10:00", DurationMinutes: 30}, // 10:00-10:30
	}

	t.Run("слот до бронирования свободен", func(t *testing.T) {
		conflict, err := HasConflict(interval(t, "09:30", 30), existing)
		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("пересекающийся слот занят", func(t *testing.T) {
		conflict, err := HasConflict(interval(t, "09:45", 30), existing)
		require.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("слот сразу после бронирования свободен", func(t *testing.T) {
		conflict, err := HasConflict(interval(t, "10:30", 30), existing)
		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("пустой список сегментов", func(t *testing.T) {
		conflict, err := HasConflict(interval(t, "10:00", 60), nil)
		require.NoError(t, err)
		assert.False(t, conflict)
	})
}

func TestFirstConflict_ReturnsSegment(t *testing.T) {
	seg := &domain.AppointmentSegment{ID: 7, StartTime: "12:00", DurationMinutes: 45}
	segments := []*domain.AppointmentSegment{
		{ID: 3, StartTime: "09:00", DurationMinutes: 60},
		seg,
	}

	conflict, found, err := FirstConflict(interval(t, "12:30", 30), segments)
	require.NoError(t, err)
	assert.True(t, conflict)
	assert.Equal(t, seg, found)
}
