package utils

import (
	"math/rand"
	"time"
)

// DateFaker produces the random dates and weighted choices the data
// generator needs. Seed it for reproducible output.
type DateFaker struct {
	random *rand.Rand
}

func NewDateFaker() *DateFaker {
	return &DateFaker{
		random: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (df *DateFaker) SetSeed(seed int64) {
	df.random = rand.New(rand.NewSource(seed))
}

// Intn returns a value in [0, n).
func (df *DateFaker) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return df.random.Intn(n)
}

// Between returns a value in [min, max].
func (df *DateFaker) Between(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + df.random.Intn(max-min+1)
}

// Chance reports true with the given probability in percent.
func (df *DateFaker) Chance(percent int) bool {
	return df.random.Intn(100) < percent
}

// Weighted picks an index with probability proportional to its weight.
func (df *DateFaker) Weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	roll := df.random.Intn(total)
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}

// DaysFrom returns the calendar date base+offset, offset in [minDays, maxDays].
func (df *DateFaker) DaysFrom(base time.Time, minDays, maxDays int) time.Time {
	return StartOfDay(base).AddDate(0, 0, df.Between(minDays, maxDays))
}

// DateInYears returns a random calendar date between Jan 1 of startYear and
// Dec 31 of endYear.
func (df *DateFaker) DateInYears(startYear, endYear int) time.Time {
	year := df.Between(startYear, endYear)
	month := time.Month(1 + df.random.Intn(12))
	day := 1 + df.random.Intn(df.getDaysInMonth(year, month))
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (df *DateFaker) getDaysInMonth(year int, month time.Month) int {
	firstOfNextMonth := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNextMonth.AddDate(0, 0, -1).Day()
}
