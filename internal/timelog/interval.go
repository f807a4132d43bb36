// Package timelog reads a task's serialized time log: a JSON array of
// [start, stop, note, isRunning] tuples with Unix-second timestamps.
//
// Everything here is a pure function of its input plus one read of the
// injected Clock per call. Appending and closing intervals belongs to the
// timer service.
package timelog

// State is the lifecycle position of a single interval.
type State int

const (
	NotStarted State = iota
	Running
	Closed
)

// String returns the display name of the state
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Interval is one start/stop session. Zero timestamps mean unset.
type Interval struct {
	Start     int64
	Stop      int64
	Note      string
	IsRunning bool
}

// NotStartedInterval is the synthetic row shown for a task with no tracked time.
func NotStartedInterval() Interval {
	return Interval{IsRunning: true}
}

// State derives the lifecycle state from the timestamps alone.
func (iv Interval) State() State {
	switch {
	case iv.Start == 0:
		return NotStarted
	case iv.Stop == 0:
		return Running
	default:
		return Closed
	}
}

// Resolve substitutes now for an unset start or stop.
func (iv Interval) Resolve(now int64) (start, stop int64) {
	start, stop = iv.Start, iv.Stop
	if start == 0 {
		start = now
	}
	if stop == 0 {
		stop = now
	}
	return start, stop
}

// Log is the ordered interval sequence of one task, in insertion order.
type Log []Interval

// Last returns the final interval, if any.
func (l Log) Last() (Interval, bool) {
	if len(l) == 0 {
		return Interval{}, false
	}
	return l[len(l)-1], true
}

// OpenIndex returns the index of the last running interval, or -1.
func (l Log) OpenIndex() int {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].State() == Running {
			return i
		}
	}
	return -1
}

// State is the state of the last interval; an empty log has not started.
func (l Log) State() State {
	last, ok := l.Last()
	if !ok {
		return NotStarted
	}
	return last.State()
}

// Normalize prepares a decoded log for display: an empty log becomes a single
// not-started row, anything else is returned as is.
func Normalize(log Log) Log {
	if len(log) == 0 {
		return Log{NotStartedInterval()}
	}
	return log
}
