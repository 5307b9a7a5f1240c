package analysis

// UpwardCrossings returns the interpolated times at which values rises
// through level.
func UpwardCrossings(times, values []float64, level float64) ([]float64, error) {
	if len(times) != len(values) {
		return nil, ErrLength
	}

	var out []float64
	for i := 1; i < len(values); i++ {
		prev, curr := values[i-1], values[i]
		if prev < level && curr >= level {
			frac := (level - prev) / (curr - prev)
			out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	return out, nil
}

// MeasuredPeriod is the mean spacing of upward crossings through the trace
// mean. It needs at least two crossings.
func MeasuredPeriod(times, values []float64) (float64, error) {
	if len(values) < 3 {
		return 0, ErrTooShort
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	xs, err := UpwardCrossings(times, values, mean)
	if err != nil {
		return 0, err
	}
	if len(xs) < 2 {
		return 0, ErrNoSignal
	}
	return (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1), nil
}
