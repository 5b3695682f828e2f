package utils

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2025-01-10", want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{input: " 2024-02-29 ", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{input: "2023-02-29", wantErr: true},
		{input: "01/10/2025", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC is already the next calendar day in IST.
	instant := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)

	start, end := DayBounds(instant, loc)
	assert.Equal(t, "2025-03-10", start.Format(DateLayout))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.Equal(t, loc, start.Location())

	start, _ = DayBounds(instant, nil)
	assert.Equal(t, "2025-03-09", start.Format(DateLayout))
}

func TestDateFaker_Deterministic(t *testing.T) {
	a, b := NewDateFaker(), NewDateFaker()
	a.SetSeed(42)
	b.SetSeed(42)

	for range 20 {
		assert.Equal(t, a.Between(1, 24), b.Between(1, 24))
	}
}

func TestDateFaker_Ranges(t *testing.T) {
	df := NewDateFaker()
	df.SetSeed(7)
	base := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	for range 200 {
		n := df.Between(-30, 60)
		assert.GreaterOrEqual(t, n, -30)
		assert.LessOrEqual(t, n, 60)

		d := df.DaysFrom(base, 1, 14)
		assert.Equal(t, 0, d.Hour())
		assert.True(t, d.After(base))
		assert.True(t, d.Before(base.AddDate(0, 0, 15)))

		y := df.DateInYears(2020, 2024)
		assert.GreaterOrEqual(t, y.Year(), 2020)
		assert.LessOrEqual(t, y.Year(), 2024)
	}
}

func TestDateFaker_Weighted(t *testing.T) {
	df := NewDateFaker()
	df.SetSeed(1)

	counts := make([]int, 3)
	for range 1000 {
		counts[df.Weighted([]int{0, 1, 0})]++
	}
	assert.Equal(t, []int{0, 1000, 0}, counts)
	assert.Equal(t, 0, df.Weighted(nil))
}

func TestParseDateIn_KeepsCalendarDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, err := ParseDateIn("2025-03-09", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, "2025-03-09", got.Format(DateLayout))

	got, err = ParseDateIn("2025-03-09", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseDateIn("03/09/2025", loc)
	assert.Error(t, err)
}
