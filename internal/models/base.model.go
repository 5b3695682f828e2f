package models

import (
	"time"

	"gearguard/internal/utils"

	"gorm.io/datatypes"
)

type BaseModel struct {
	ID int `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
}

// NewDate keeps t's calendar date in t's location, stored as UTC midnight
// so the driver never shifts it across a day boundary.
func NewDate(t time.Time) *datatypes.Date {
	y, m, day := t.Date()
	d := datatypes.Date(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
	return &d
}

func FormatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(utils.DateLayout)
	return &s
}

// ParseDate accepts YYYY-MM-DD. A nil or empty input yields a nil date.
func ParseDate(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return NewDate(t), nil
}
