package utils

import (
	"strconv"
	"time"
)

func ParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func ParseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseDate accepts YYYY-MM-DD and returns nil for anything else.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
