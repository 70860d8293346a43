package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAt(t *testing.T) {
	birth := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 23, AgeAt(birth, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeAt(birth, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, AgeAt(birth, time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDateZero(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "-", FormatDatePtr(nil))
	d := time.Date(2024, 3, 9, 10, 30, 0, 0, time.Local)
	assert.Equal(t, "09.03.2024", FormatDate(d))
	assert.Equal(t, "09.03.2024 10:30", FormatDateTime(d))
}
