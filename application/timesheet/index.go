package timesheet

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"hrms.io/entities"
)

var ErrClockOutBeforeIn = errors.New("time out precedes time in")

// Day is every shift recorded on one date.
type Day struct {
	Date      string        `json:"date"`
	TimeIn    time.Time     `json:"timeIn"`
	TimeOut   *time.Time    `json:"timeOut"`
	Shifts    int           `json:"shifts"`
	Worked    time.Duration `json:"-"`
	Overtime  time.Duration `json:"-"`
	Undertime time.Duration `json:"-"`
	WorkedHM  string        `json:"worked"`
	Open      bool          `json:"open"`
}

type Summary struct {
	Days       []Day         `json:"days"`
	Worked     time.Duration `json:"-"`
	Overtime   time.Duration `json:"-"`
	Undertime  time.Duration `json:"-"`
	OpenShifts int           `json:"openShifts"`

	WorkedHM    string `json:"worked"`
	OvertimeHM  string `json:"overtime"`
	UndertimeHM string `json:"undertime"`
}

func WorkedDuration(timeIn time.Time, timeOut time.Time) (time.Duration, error) {
	if timeOut.Before(timeIn) {
		return 0, fmt.Errorf("%w: in %s, out %s", ErrClockOutBeforeIn, timeIn.Format(time.RFC3339), timeOut.Format(time.RFC3339))
	}
	return timeOut.Sub(timeIn), nil
}

func Overtime(worked time.Duration, standard time.Duration) time.Duration {
	if worked <= standard {
		return 0
	}
	return worked - standard
}

func Undertime(worked time.Duration, standard time.Duration) time.Duration {
	if worked >= standard {
		return 0
	}
	return standard - worked
}

// Summarize groups records by date and totals the closed shifts of each day.
// Overtime and undertime settle against standardShift once every shift of
// the day is closed; open shifts are only counted.
func Summarize(records []entities.AttendanceRecord, standardShift time.Duration) (*Summary, error) {
	summary := &Summary{Days: []Day{}}
	byDate := map[string]int{}
	for _, record := range records {
		if record.TimeIn == nil {
			continue
		}
		index, seen := byDate[record.Date]
		if !seen {
			index = len(summary.Days)
			byDate[record.Date] = index
			summary.Days = append(summary.Days, Day{Date: record.Date, TimeIn: *record.TimeIn})
		}
		day := &summary.Days[index]
		day.Shifts++
		if record.TimeIn.Before(day.TimeIn) {
			day.TimeIn = *record.TimeIn
		}
		if record.Open() {
			day.Open = true
			summary.OpenShifts++
			continue
		}
		worked, err := WorkedDuration(*record.TimeIn, *record.TimeOut)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", record.ID, err)
		}
		day.Worked += worked
		if day.TimeOut == nil || record.TimeOut.After(*day.TimeOut) {
			timeOut := *record.TimeOut
			day.TimeOut = &timeOut
		}
	}

	for i := range summary.Days {
		day := &summary.Days[i]
		if day.Open {
			day.TimeOut = nil
		} else {
			day.Overtime = Overtime(day.Worked, standardShift)
			day.Undertime = Undertime(day.Worked, standardShift)
		}
		day.WorkedHM = FormatClock(day.Worked)
		summary.Worked += day.Worked
		summary.Overtime += day.Overtime
		summary.Undertime += day.Undertime
	}
	sort.SliceStable(summary.Days, func(i, j int) bool {
		return summary.Days[i].TimeIn.Before(summary.Days[j].TimeIn)
	})
	summary.WorkedHM = FormatClock(summary.Worked)
	summary.OvertimeHM = FormatClock(summary.Overtime)
	summary.UndertimeHM = FormatClock(summary.Undertime)
	return summary, nil
}

// FormatClock renders d as HH:MM, truncating seconds. Hours may exceed 24.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
