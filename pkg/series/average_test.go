package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var na = Raw("N/A")

func ints(values ...int64) []Value {
	result := make([]Value, 0, len(values))
	for _, v := range values {
		result = append(result, Int(v))
	}
	return result
}

func TestMovingAverages(t *testing.T) {
	visitors := ints(100000, 30000, 70000, 10000, 80000, 15000, 14000)

	tests := []struct {
		name     string
		data     []Value
		interval int
		want     []Value
	}{
		{
			name:     "interval 2",
			data:     visitors,
			interval: 2,
			want: []Value{
				na, Number(65000), Number(50000), Number(40000),
				Number(45000), Number(47500), Number(14500),
			},
		},
		{
			name:     "interval 3",
			data:     visitors,
			interval: 3,
			want: []Value{
				na, na, Number(66666.66666666667), Number(36666.66666666667),
				Number(53332.66666666667), Number(34998.66666666667), Number(36331.66666666667),
			},
		},
		{
			name:     "value that is not a number",
			data:     []Value{Int(100000), Int(30000), Int(70000), Raw("some string"), Int(80000), Int(15000), Int(14000)},
			interval: 3,
			want: []Value{
				na, na, Number(66666.66666666667), na, na, na, Number(36333.333333333336),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MovingAverages(tt.data, tt.interval, na)
			require.NoError(t, err)
			require.Len(t, got, len(tt.data))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMovingAverages_FloatInput(t *testing.T) {
	data := Coerce([]any{"100000", "30000", "70000", "10000", "80000"})

	got, err := MovingAverages(data, 3, na)
	require.NoError(t, err)

	// Float deltas are not floored.
	width := 3.0
	first := 200000.0 / width
	second := first + (10000.0-100000.0)/width
	third := second + (80000.0-30000.0)/width
	assert.Equal(t, []Value{na, na, Number(first), Number(second), Number(third)}, got)
}

func TestMovingAverages_IntervalOne(t *testing.T) {
	data := Coerce([]any{"4", "8", "x", "2"})

	got, err := MovingAverages(data, 1, na)
	require.NoError(t, err)
	assert.Equal(t, []Value{Number(4), Number(8), na, Number(2)}, got)
}

func TestMovingAverages_PlaceholderInput(t *testing.T) {
	data := []Value{Number(10), Number(20), na, Number(30), Number(40), Number(50)}

	got, err := MovingAverages(data, 2, na)
	require.NoError(t, err)
	assert.Equal(t, []Value{na, Number(15), na, na, Number(35), Number(45)}, got)
}

func TestMovingAverages_NumericPlaceholder(t *testing.T) {
	zero := Number(0)
	data := Coerce([]any{"1", "-1", "3", "5"})

	got, err := MovingAverages(data, 2, zero)
	require.NoError(t, err)
	// The average at index 1 equals the placeholder, so index 2 is recomputed.
	assert.Equal(t, []Value{zero, Number(0), Number(1), Number(4)}, got)
}

func TestMovingAverages_InvalidInterval(t *testing.T) {
	data := ints(1, 2, 3)

	for _, interval := range []int{0, -1, 3, 4} {
		got, err := MovingAverages(data, interval, na)
		assert.ErrorIs(t, err, ErrInvalidInterval, "interval %d", interval)
		assert.Nil(t, got)
	}

	_, err := MovingAverages(nil, 1, na)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestMovingAverages_Idempotent(t *testing.T) {
	data := []Value{Int(100000), Int(30000), Int(70000), Raw("some string"), Int(80000), Int(15000), Int(14000)}

	first, err := MovingAverages(data, 3, na)
	require.NoError(t, err)
	second, err := MovingAverages(data, 3, na)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Value{na, Number(10), Number(30), na, Number(20)})

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Computed)
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 30.0, s.Max)
	assert.Equal(t, 20.0, s.Mean)

	empty := Summarize([]Value{na, na})
	assert.Equal(t, Summary{Total: 2, Skipped: 2}, empty)
}
