package utils

import (
	"time"
)

const (
	layoutDate     = "02.01.2006"
	layoutDateTime = "02.01.2006 15:04"
)

// FormatDate renders t as DD.MM.YYYY in local time; the zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format(layoutDate)
}

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format(layoutDateTime)
}

// FormatDatePtr is FormatDate for optional dates.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatDate(*t)
}

// AgeAt returns the completed years between birth and at.
func AgeAt(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
