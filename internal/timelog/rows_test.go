package timelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcLabels() LayoutLabels {
	return LayoutLabels{
		DateLayout: "2006-01-02",
		TimeLayout: "15:04:05",
		Location:   time.UTC,
	}
}

func TestFormatter_Format(t *testing.T) {
	tests := []struct {
		name     string
		log      Log
		expected []Row
	}{
		{
			name:     "empty log yields one synthetic row",
			log:      Log{},
			expected: []Row{{}},
		},
		{
			name:     "nil log yields one synthetic row",
			log:      nil,
			expected: []Row{{}},
		},
		{
			name:     "not started row renders empty labels",
			log:      Log{{IsRunning: true}},
			expected: []Row{{}},
		},
		{
			name: "closed and open rows in log order",
			log: Log{
				{Start: 1700000000, Stop: 1700003600},
				{Start: 1700010000, IsRunning: true},
			},
			expected: []Row{
				{Date: "2023-11-14", Start: "22:13:20", End: "23:13:20"},
				{Date: "2023-11-15", Start: "01:00:00", End: "running"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(utcLabels(), "")

			rows := f.Format(tt.log)

			assert.Equal(t, tt.expected, rows)
		})
	}
}

func TestFormatter_CustomRunningLabel(t *testing.T) {
	f := NewFormatter(utcLabels(), "in progress")

	rows := f.Format(Log{{Start: 1700000000, IsRunning: true}})

	require.Len(t, rows, 1)
	assert.Equal(t, "in progress", rows[0].End)
}

func TestFormatter_RowsIsRestartable(t *testing.T) {
	f := NewFormatter(utcLabels(), "")
	log := Log{
		{Start: 1700000000, Stop: 1700000060},
		{Start: 1700000100, Stop: 1700000160},
		{Start: 1700000200, IsRunning: true},
	}
	seq := f.Rows(log)

	var first, second []Row
	for row := range seq {
		first = append(first, row)
	}
	for row := range seq {
		second = append(second, row)
	}

	assert.Len(t, first, 3)
	assert.Equal(t, first, second)
}

func TestFormatter_RowsStopsEarly(t *testing.T) {
	f := NewFormatter(utcLabels(), "")
	log := Log{
		{Start: 1700000000, Stop: 1700000060},
		{Start: 1700000100, Stop: 1700000160},
	}

	count := 0
	for range f.Rows(log) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}

func TestFormatter_RowsSnapshotsTheLog(t *testing.T) {
	f := NewFormatter(utcLabels(), "")
	log := Log{{Start: 1700000000, IsRunning: true}}
	seq := f.Rows(log)

	log[0].Stop = 1700000060

	for row := range seq {
		assert.Equal(t, "running", row.End)
	}
}

func TestLayoutLabels_NilLocationUsesLocal(t *testing.T) {
	labels := LayoutLabels{DateLayout: "2006-01-02", TimeLayout: "15:04"}
	ts := time.Unix(1700000000, 0)

	assert.Equal(t, ts.In(time.Local).Format("15:04"), labels.Time(ts))
	assert.Equal(t, ts.In(time.Local).Format("2006-01-02"), labels.Date(ts))
}
