package utils

import (
	"log"
	"time"
)

// GetISTTimeLocation returns the NSE trading timezone.
func GetISTTimeLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}

// TimeNowIST returns the current time in the NSE trading timezone.
func TimeNowIST() time.Time {
	return time.Now().In(GetISTTimeLocation())
}

// MonthStart truncates t to the first instant of its calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
