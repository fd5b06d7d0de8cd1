package series

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	got := Coerce([]any{1, "2", "3.5", "abc", "7,8"})

	want := []Value{Number(1), Number(2), Number(3.5), Raw("abc"), Raw("7,8")}
	assert.Equal(t, want, got)
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{in: " 42 ", want: Number(42)},
		{in: "-1.5e3", want: Number(-1500)},
		{in: "+.5", want: Number(0.5)},
		{in: float64(7), want: Number(7)},
		{in: int64(-3), want: Number(-3)},
		{in: json.Number("12.25"), want: Number(12.25)},
		{in: "", want: Raw("")},
		{in: "0x10", want: Raw("0x10")},
		{in: "1_000", want: Raw("1_000")},
		{in: "1,000", want: Raw("1,000")},
		{in: "12 apples", want: Raw("12 apples")},
		{in: true, want: Raw(true)},
		{in: nil, want: Raw(nil)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CoerceValue(tt.in), "input %#v", tt.in)
	}
}

func TestCoerceValue_Special(t *testing.T) {
	f, ok := CoerceValue("inf").Float()
	assert.True(t, ok)
	assert.True(t, math.IsInf(f, 1))

	f, ok = CoerceValue("1e400").Float()
	assert.True(t, ok)
	assert.True(t, math.IsInf(f, 1))

	f, ok = CoerceValue("NaN").Float()
	assert.True(t, ok)
	assert.True(t, math.IsNaN(f))
}

func TestCoerce_KeepsLength(t *testing.T) {
	in := []any{"a", nil, "", "1"}
	assert.Len(t, Coerce(in), len(in))
	assert.Empty(t, Coerce(nil))
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Int(3).Equal(Number(3)))
	assert.True(t, Raw("N/A").Equal(Raw("N/A")))
	assert.False(t, Raw("3").Equal(Number(3)))
	assert.False(t, Raw([]string{"a"}).Equal(Raw([]string{"a"})))
	assert.False(t, Number(math.NaN()).Equal(Number(math.NaN())))
}

func TestValueInterface(t *testing.T) {
	assert.Equal(t, 2.5, Number(2.5).Interface())
	assert.Equal(t, int64(4), Int(4).Interface())
	assert.Equal(t, "N/A", Raw("N/A").Interface())
	assert.Equal(t, "36333.333333333336", Number(36333.333333333336).String())
}
