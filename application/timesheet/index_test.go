package timesheet

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hrms.io/entities"
)

func at(day int, hour int, minute int) *time.Time {
	t := time.Date(2024, 5, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestWorkedDuration(t *testing.T) {
	tests := []struct {
		name    string
		in      time.Time
		out     time.Time
		want    time.Duration
		wantErr bool
	}{
		{name: "regular shift", in: *at(2, 8, 0), out: *at(2, 17, 30), want: 9*time.Hour + 30*time.Minute},
		{name: "overnight", in: *at(2, 22, 0), out: *at(3, 6, 0), want: 8 * time.Hour},
		{name: "same instant", in: *at(2, 8, 0), out: *at(2, 8, 0), want: 0},
		{name: "out before in", in: *at(2, 17, 0), out: *at(2, 8, 0), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WorkedDuration(tt.in, tt.out)
			if tt.wantErr {
				if !errors.Is(err, ErrClockOutBeforeIn) {
					t.Fatalf("WorkedDuration() error = %v, want %v", err, ErrClockOutBeforeIn)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("WorkedDuration() = %v, %v, want %v", got, err, tt.want)
			}
		})
	}
}

func TestOvertimeAndUndertime(t *testing.T) {
	standard := 8 * time.Hour
	tests := []struct {
		worked        time.Duration
		wantOvertime  time.Duration
		wantUndertime time.Duration
	}{
		{worked: 8 * time.Hour, wantOvertime: 0, wantUndertime: 0},
		{worked: 9*time.Hour + 15*time.Minute, wantOvertime: time.Hour + 15*time.Minute, wantUndertime: 0},
		{worked: 6 * time.Hour, wantOvertime: 0, wantUndertime: 2 * time.Hour},
	}
	for _, tt := range tests {
		if got := Overtime(tt.worked, standard); got != tt.wantOvertime {
			t.Errorf("Overtime(%v) = %v, want %v", tt.worked, got, tt.wantOvertime)
		}
		if got := Undertime(tt.worked, standard); got != tt.wantUndertime {
			t.Errorf("Undertime(%v) = %v, want %v", tt.worked, got, tt.wantUndertime)
		}
	}
}

func TestSummarize(t *testing.T) {
	records := []entities.AttendanceRecord{
		{ID: "A3", Date: "2024-05-04", TimeIn: at(4, 8, 0)},
		{ID: "A1", Date: "2024-05-02", TimeIn: at(2, 8, 0), TimeOut: at(2, 18, 0)},
		{ID: "A2", Date: "2024-05-03", TimeIn: at(3, 9, 0), TimeOut: at(3, 15, 30)},
	}

	summary, err := Summarize(records, 8*time.Hour)
	require.NoError(t, err)

	assert.Len(t, summary.Days, 3)
	assert.Equal(t, "2024-05-02", summary.Days[0].Date)
	assert.Equal(t, 16*time.Hour+30*time.Minute, summary.Worked)
	assert.Equal(t, 2*time.Hour, summary.Overtime)
	assert.Equal(t, time.Hour+30*time.Minute, summary.Undertime)
	assert.Equal(t, 1, summary.OpenShifts)
	assert.Equal(t, "16:30", summary.WorkedHM)
	assert.True(t, summary.Days[2].Open)
	assert.Equal(t, "00:00", summary.Days[2].WorkedHM)
}

func TestSummarizeGroupsShiftsByDate(t *testing.T) {
	records := []entities.AttendanceRecord{
		{ID: "A2", Date: "2024-05-02", TimeIn: at(2, 13, 0), TimeOut: at(2, 18, 0)},
		{ID: "A1", Date: "2024-05-02", TimeIn: at(2, 8, 0), TimeOut: at(2, 12, 0)},
		{ID: "B1", Date: "2024-05-03", TimeIn: at(3, 8, 0), TimeOut: at(3, 11, 0)},
		{ID: "B2", Date: "2024-05-03", TimeIn: at(3, 12, 0)},
	}

	summary, err := Summarize(records, 8*time.Hour)
	require.NoError(t, err)

	require.Len(t, summary.Days, 2)
	split := summary.Days[0]
	assert.Equal(t, "2024-05-02", split.Date)
	assert.Equal(t, 2, split.Shifts)
	assert.Equal(t, *at(2, 8, 0), split.TimeIn)
	require.NotNil(t, split.TimeOut)
	assert.Equal(t, *at(2, 18, 0), *split.TimeOut)
	assert.Equal(t, 9*time.Hour, split.Worked)
	assert.Equal(t, time.Hour, split.Overtime)
	assert.Zero(t, split.Undertime)

	open := summary.Days[1]
	assert.True(t, open.Open)
	assert.Nil(t, open.TimeOut)
	assert.Equal(t, 3*time.Hour, open.Worked)
	assert.Zero(t, open.Undertime)

	assert.Equal(t, 12*time.Hour, summary.Worked)
	assert.Equal(t, time.Hour, summary.Overtime)
	assert.Zero(t, summary.Undertime)
	assert.Equal(t, 1, summary.OpenShifts)
}

func TestSummarizeRejectsInvertedShift(t *testing.T) {
	records := []entities.AttendanceRecord{
		{ID: "A1", Date: "2024-05-02", TimeIn: at(2, 17, 0), TimeOut: at(2, 8, 0)},
	}
	_, err := Summarize(records, 8*time.Hour)
	assert.ErrorIs(t, err, ErrClockOutBeforeIn)
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "00:00"},
		{in: 7*time.Hour + 5*time.Minute, want: "07:05"},
		{in: 26*time.Hour + 59*time.Minute + 59*time.Second, want: "26:59"},
		{in: -time.Minute, want: "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
