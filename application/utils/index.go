package utils

import (
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateUULDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func GetUIntPointer(data uint) *uint {
	return &data
}

func HasItemString(arr *[]string, target string) bool {
	for _, v := range *arr {
		if v == target {
			return true
		}
	}
	return false
}

// ParsePagination reads page and limit query values, clamping limit to max.
func ParsePagination(page string, limit string, max int64) (int64, int64) {
	p, err := strconv.ParseInt(page, 10, 64)
	if err != nil || p < 1 {
		p = 1
	}
	l, err := strconv.ParseInt(limit, 10, 64)
	if err != nil || l < 1 {
		l = 20
	}
	if l > max {
		l = max
	}
	return p, l
}

// ParseDate accepts YYYY-MM-DD and returns fallback for empty input.
func ParseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}
