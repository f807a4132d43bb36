package timelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"task-timelog/internal/errors"
)

// Canonical empty serializations. Both mean no time tracked yet.
const (
	EmptyLog      = ""
	EmptyLogArray = "[]"
)

// Decode parses a serialized time log. "" and "[]" decode to an empty log;
// any other input that is not an array of interval tuples fails with a
// malformed_log AppError rather than falling back to empty.
func Decode(serialized string) (Log, error) {
	if serialized == EmptyLog || serialized == EmptyLogArray {
		return Log{}, nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal([]byte(serialized), &rows); err != nil {
		return nil, errors.NewMalformedLogError("not a JSON array of intervals", err)
	}
	if rows == nil {
		return nil, errors.NewMalformedLogError("log is null", nil)
	}

	log := make(Log, 0, len(rows))
	for i, row := range rows {
		var iv Interval
		if err := iv.UnmarshalJSON(row); err != nil {
			return nil, errors.NewMalformedLogError(fmt.Sprintf("interval %d", i), err)
		}
		log = append(log, iv)
	}
	return log, nil
}

// Encode serializes a log into the wire form stored on the task,
// e.g. [[1700000000,1700003600,"",false]].
func Encode(log Log) (string, error) {
	if len(log) == 0 {
		return EmptyLogArray, nil
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, iv := range log {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := iv.writeTuple(&buf); err != nil {
			return "", err
		}
	}
	buf.WriteByte(']')
	return buf.String(), nil
}

// MarshalJSON writes the interval as a 4-tuple.
func (iv Interval) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := iv.writeTuple(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a 2-, 3- or 4-tuple. Legacy short rows get an empty
// note and a running flag derived from the stop time.
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("interval is not an array: %w", err)
	}
	if len(fields) < 2 || len(fields) > 4 {
		return fmt.Errorf("interval has %d fields, want 2 to 4", len(fields))
	}

	start, err := decodeTimestamp(fields[0])
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	stop, err := decodeTimestamp(fields[1])
	if err != nil {
		return fmt.Errorf("stop: %w", err)
	}

	var note string
	if len(fields) >= 3 && !isNull(fields[2]) {
		if err := json.Unmarshal(fields[2], &note); err != nil {
			return fmt.Errorf("note: %w", err)
		}
	}

	running := stop == 0
	if len(fields) == 4 && !isNull(fields[3]) {
		if err := json.Unmarshal(fields[3], &running); err != nil {
			return fmt.Errorf("running flag: %w", err)
		}
	}

	*iv = Interval{Start: start, Stop: stop, Note: note, IsRunning: running}
	return nil
}

func (iv Interval) writeTuple(buf *bytes.Buffer) error {
	note, err := encodeString(iv.Note)
	if err != nil {
		return err
	}
	buf.WriteByte('[')
	buf.WriteString(strconv.FormatInt(iv.Start, 10))
	buf.WriteByte(',')
	buf.WriteString(strconv.FormatInt(iv.Stop, 10))
	buf.WriteByte(',')
	buf.Write(note)
	buf.WriteByte(',')
	buf.WriteString(strconv.FormatBool(iv.IsRunning))
	buf.WriteByte(']')
	return nil
}

// encodeString quotes s the way the API does, without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func decodeTimestamp(raw json.RawMessage) (int64, error) {
	if isNull(raw) {
		return 0, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	// Exponent forms such as 1.7e9 are fine as long as they name a whole second
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("timestamp %s is out of range", n)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("timestamp %s is not a whole number of seconds", n)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("timestamp %s is out of range", n)
	}
	return int64(f), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
