package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Day truncates t to its calendar day boundary, normalized to UTC. Dates
// reach the services from several locations (request parsing, the server
// clock, database round-trips); anchoring every boundary in one location
// keeps them comparable as instants.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO yyyy-mm-dd string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Nights counts occupied nights between the two day boundaries.
func Nights(checkIn, checkOut time.Time) int {
	return int(Day(checkOut).Sub(Day(checkIn)).Hours() / 24)
}

// OccupiedDays returns every calendar day a booking occupies: a same-day
// (day-use) booking occupies exactly that one day, otherwise each night from
// the check-in day (inclusive) to the check-out day (exclusive). Returns nil
// for an inverted range.
func OccupiedDays(checkIn, checkOut time.Time) []time.Time {
	ci := Day(checkIn)
	co := Day(checkOut)
	if co.Before(ci) {
		return nil
	}
	if ci.Equal(co) {
		return []time.Time{ci}
	}
	days := make([]time.Time, 0, Nights(ci, co))
	for d := ci; d.Before(co); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StayLabel formats a booking window for chat replies, e.g.
// "6월 1일 대실" or "6월 1일 ~ 6월 3일 (2박)".
func StayLabel(checkIn, checkOut time.Time) string {
	ci := Day(checkIn)
	co := Day(checkOut)
	if ci.Equal(co) {
		return fmt.Sprintf("%d월 %d일 대실", int(ci.Month()), ci.Day())
	}
	return fmt.Sprintf("%d월 %d일 ~ %d월 %d일 (%d박)",
		int(ci.Month()), ci.Day(), int(co.Month()), co.Day(), Nights(ci, co))
}

// NextSaturday returns the upcoming Saturday's day boundary, counting today
// when from already is a Saturday.
func NextSaturday(from time.Time) time.Time {
	d := Day(from)
	offset := (int(time.Saturday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}
