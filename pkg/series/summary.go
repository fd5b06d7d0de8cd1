package series

import "github.com/montanaflynn/stats"

// Summary describes a computed moving average series.
type Summary struct {
	Total    int     `json:"total"`
	Computed int     `json:"computed"`
	Skipped  int     `json:"skipped"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Mean     float64 `json:"mean,omitempty"`
}

func Summarize(values []Value) Summary {
	s := Summary{Total: len(values)}

	nums := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if f, ok := v.Float(); ok {
			nums = append(nums, f)
		}
	}
	s.Computed = len(nums)
	s.Skipped = s.Total - s.Computed
	if s.Computed == 0 {
		return s
	}

	s.Min, _ = stats.Min(nums)
	s.Max, _ = stats.Max(nums)
	s.Mean, _ = stats.Mean(nums)
	return s
}
