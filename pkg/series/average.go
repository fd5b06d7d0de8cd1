package series

import (
	"errors"
	"fmt"
)

var ErrInvalidInterval = errors.New("invalid moving average interval")

// errNotNumber marks a window that holds a value which is not a number.
var errNotNumber = errors.New("value is not a number")

// MovingAverages computes the simple moving average of data over interval
// positions. Positions that cannot be computed hold placeholder.
//
// A position is derived from the previous one by adding the difference of the
// entering and leaving values divided by interval, unless the previous position
// is the placeholder, in which case the whole window is summed again. A value
// that is not a number therefore spoils the positions whose window contains it,
// and the series resumes with a full recompute once it has left the window.
func MovingAverages(data []Value, interval int, placeholder Value) ([]Value, error) {
	if interval <= 0 || interval >= len(data) {
		return nil, fmt.Errorf("%w: %d for %d values, want 0 < interval < %d", ErrInvalidInterval, interval, len(data), len(data))
	}

	result := make([]Value, 0, len(data))

	for idx := range data {
		if idx < interval-1 {
			result = append(result, placeholder)
			continue
		}

		var (
			avg Value
			err error
		)
		if idx == 0 || result[idx-1].Equal(placeholder) {
			avg, err = windowAverage(data[idx-(interval-1):idx+1], interval)
		} else {
			avg, err = shiftAverage(result[idx-1], data[idx], data[idx-interval], interval)
		}

		if err != nil {
			result = append(result, placeholder)
			continue
		}
		result = append(result, avg)
	}

	return result, nil
}

// windowAverage sums the window from the left and divides as a float.
func windowAverage(window []Value, interval int) (Value, error) {
	sum := Int(0)
	for _, v := range window {
		var err error
		if sum, err = sum.add(v); err != nil {
			return Value{}, err
		}
	}
	total, _ := sum.Float()
	return Number(total / float64(interval)), nil
}

func shiftAverage(previous, entering, leaving Value, interval int) (Value, error) {
	delta, err := entering.sub(leaving)
	if err != nil {
		return Value{}, err
	}
	if delta, err = delta.divInt(interval); err != nil {
		return Value{}, err
	}
	return previous.add(delta)
}
