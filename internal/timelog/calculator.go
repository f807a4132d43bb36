package timelog

import (
	"fmt"
	"math"
	"strconv"

	"task-timelog/internal/errors"
)

// Options controls TotalElapsed and Calculate.
type Options struct {
	// CalculateLastOnly measures only the final interval, for live ticking displays.
	CalculateLastOnly bool
	// OutputSeconds makes Calculate return the raw second count.
	OutputSeconds bool
}

// Calculator derives durations from a log against an injected clock.
type Calculator struct {
	clock Clock
}

// NewCalculator creates a calculator; a nil clock means the system clock.
func NewCalculator(clock Clock) *Calculator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calculator{clock: clock}
}

// TotalElapsed returns the elapsed seconds of the log. Each interval counts
// stop-or-now minus start-or-now. With CalculateLastOnly only the final
// interval counts, measured from its start (or now) up to now whatever its
// stop says. An interval that resolves to a negative duration fails with a
// negative_duration AppError; a total that does not fit in int64 fails with
// a malformed_log AppError.
func (c *Calculator) TotalElapsed(log Log, opts Options) (int64, error) {
	now := c.clock.Now().Unix()

	if len(log) == 0 {
		return 0, nil
	}

	if opts.CalculateLastOnly {
		last := len(log) - 1
		start, _ := log[last].Resolve(now)
		return span(last, start, now)
	}

	var total int64
	for i, iv := range log {
		seconds, err := elapsed(iv, i, now)
		if err != nil {
			return 0, err
		}
		if total > math.MaxInt64-seconds {
			return 0, errors.NewMalformedLogError("total duration is too large", nil).
				WithContext("index", i)
		}
		total += seconds
	}
	return total, nil
}

// IndexedDuration returns the elapsed seconds of a single row. An index
// outside the log resolves both ends to now and yields zero.
func (c *Calculator) IndexedDuration(log Log, index int) (int64, error) {
	now := c.clock.Now().Unix()

	if index < 0 || index >= len(log) {
		return 0, nil
	}
	return elapsed(log[index], index, now)
}

// Calculate decodes a serialized log and renders its total: raw seconds when
// OutputSeconds is set, otherwise FormatTotal.
func (c *Calculator) Calculate(serialized string, opts Options) (string, error) {
	log, err := Decode(serialized)
	if err != nil {
		return "", err
	}

	seconds, err := c.TotalElapsed(log, opts)
	if err != nil {
		return "", err
	}

	if opts.OutputSeconds {
		return strconv.FormatInt(seconds, 10), nil
	}
	return FormatTotal(seconds), nil
}

// Difference renders one row's duration as a wrapped HH:mm:ss clock value.
func (c *Calculator) Difference(serialized string, index int) (string, error) {
	log, err := Decode(serialized)
	if err != nil {
		return "", err
	}

	seconds, err := c.IndexedDuration(log, index)
	if err != nil {
		return "", err
	}
	return FormatClock(seconds), nil
}

func elapsed(iv Interval, index int, now int64) (int64, error) {
	start, stop := iv.Resolve(now)
	return span(index, start, stop)
}

// span is stop - start, refusing negative and overflowing results
func span(index int, start, stop int64) (int64, error) {
	if stop < start {
		return 0, errors.NewNegativeDurationError(index, start, stop)
	}
	seconds := stop - start
	if seconds < 0 {
		return 0, errors.NewMalformedLogError(fmt.Sprintf("interval %d is too long", index), nil).
			WithContext("index", index)
	}
	return seconds, nil
}
