package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOrderNumber(t *testing.T) {
	date := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "XJ-P100-20250315-0001", FormatOrderNumber("XJ", "P100", date, 1))
	assert.Equal(t, "WX-P100-20250315-9999", FormatOrderNumber("WX", "P100", date, 9999))

	// Переполнение четырех знаков расширяет сегмент, а не падает
	assert.Equal(t, "YG-P100-20250315-10000", FormatOrderNumber("YG", "P100", date, 10000))
}

func TestParseOrderNumber_RoundTrip(t *testing.T) {
	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	for _, seq := range []int64{1, 9999, 10000} {
		number := FormatOrderNumber("XJ", "P100", date, seq)

		prefix, projectID, parsedDate, parsedSeq, err := ParseOrderNumber(number)
		require.NoError(t, err)
		assert.Equal(t, "XJ", prefix)
		assert.Equal(t, "P100", projectID)
		assert.True(t, parsedDate.Equal(date))
		assert.Equal(t, seq, parsedSeq)
	}
}

func TestParseOrderNumber_ProjectIDWithDash(t *testing.T) {
	date := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	number := FormatOrderNumber("WX", "P-100-A", date, 42)
	assert.Equal(t, "WX-P-100-A-20250630-0042", number)

	prefix, projectID, parsedDate, seq, err := ParseOrderNumber(number)
	require.NoError(t, err)
	assert.Equal(t, "WX", prefix)
	assert.Equal(t, "P-100-A", projectID)
	assert.True(t, parsedDate.Equal(date))
	assert.Equal(t, int64(42), seq)
}

func TestParseOrderNumber_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"XJ",
		"XJ-P100",
		"XJ-P100-notadate-0001",
		"XJ-P100-20250315-abc",
		"-P100-20250315-0001",
	}
	for _, number := range invalid {
		_, _, _, _, err := ParseOrderNumber(number)
		assert.Error(t, err, "ожидалась ошибка для %q", number)
	}
}
