package insight

import "github.com/pkg/errors"

// DefaultForecastWindow is how many of the most recent growth ratios the trend
// line is fitted to.
const DefaultForecastWindow = 10

// MaxForecastIntervals bounds how many intervals a single forecast may project.
const MaxForecastIntervals = 10000

// ForecastGrowthRates buckets the creation dates into intervals of intervalWidth
// starting at the earliest date and computes, for every interval after the
// first, the ratio of the cumulative count at its end to the cumulative count at
// the end of the previous interval. A least squares line fitted to the last
// window ratios is then extended over the next intervals. Projected ratios never
// drop below 1.0 because cumulative counts cannot shrink.
//
// dates does not need to be sorted. The returned slice always holds exactly
// intervals values.
func ForecastGrowthRates(dates []int64, intervalWidth int64, intervals, window int) ([]float64, error) {
	if intervalWidth <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "interval width must be positive, got %d", intervalWidth)
	}

	if intervals < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "intervals must not be negative, got %d", intervals)
	}

	if intervals > MaxForecastIntervals {
		return nil, errors.Wrapf(ErrInvalidArgument, "intervals must be at most %d, got %d", MaxForecastIntervals, intervals)
	}

	if intervals == 0 {
		return []float64{}, nil
	}

	if window <= 0 {
		window = DefaultForecastWindow
	}

	ratios, err := trailingGrowthRatios(dates, intervalWidth, window)
	if err != nil {
		return nil, err
	}

	intercept, slope := fitLine(ratios)
	forecast := make([]float64, intervals)
	for i := range forecast {
		forecast[i] = intercept + slope*float64(len(ratios)+i)
		if forecast[i] < 1.0 {
			forecast[i] = 1.0
		}
	}

	return forecast, nil
}

// trailingGrowthRatios returns the growth ratios of the last window intervals.
// Only intervals holding dates are tracked, so memory follows len(dates) rather
// than the span of the history.
func trailingGrowthRatios(dates []int64, intervalWidth int64, window int) ([]float64, error) {
	if len(dates) == 0 {
		return nil, errors.Wrap(ErrDivisionByZero, "no creation history to forecast from")
	}

	first := dates[0]
	for _, d := range dates {
		if d < first {
			first = d
		}
	}

	// Unsigned arithmetic keeps d-first exact across the whole int64 range.
	bucketOf := func(d int64) uint64 {
		return (uint64(d) - uint64(first)) / uint64(intervalWidth)
	}

	counts := make(map[uint64]int64)
	var lastBucket uint64
	for _, d := range dates {
		b := bucketOf(d)
		counts[b]++
		if b > lastBucket {
			lastBucket = b
		}
	}

	if lastBucket == 0 {
		return nil, errors.Wrapf(ErrDivisionByZero, "history spans a single interval of width %d", intervalWidth)
	}

	// Ratios exist for buckets 1..lastBucket; keep the trailing window of them.
	startBucket := uint64(1)
	if lastBucket > uint64(window) {
		startBucket = lastBucket - uint64(window) + 1
	}

	var cumulative int64
	for b, n := range counts {
		if b < startBucket {
			cumulative += n
		}
	}

	// lastBucket can be MaxUint64, so the loop exits before b would wrap.
	ratios := make([]float64, 0, lastBucket-startBucket+1)
	for b := startBucket; ; b++ {
		previous := cumulative
		cumulative += counts[b]
		if previous == 0 {
			return nil, errors.Wrapf(ErrDivisionByZero, "interval %d has no prior history", b)
		}
		ratios = append(ratios, float64(cumulative)/float64(previous))

		if b == lastBucket {
			break
		}
	}

	return ratios, nil
}

// fitLine returns the least squares line through (i, ys[i]). A single point
// gives a flat line.
func fitLine(ys []float64) (intercept, slope float64) {
	n := float64(len(ys))
	if len(ys) == 1 {
		return ys[0], 0
	}

	var sumX, sumY float64
	for i, y := range ys {
		sumX += float64(i)
		sumY += y
	}
	meanX, meanY := sumX/n, sumY/n

	var num, den float64
	for i, y := range ys {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}

	slope = num / den
	return meanY - slope*meanX, slope
}
