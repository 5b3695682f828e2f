package validation

import (
	"bytes"
	"encoding/json"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"

	"gorm.io/datatypes"
)

// Nullable tells an absent JSON key apart from an explicit null.
type Nullable[T any] struct {
	set   bool
	value *T
}

func Set[T any](value T) Nullable[T] {
	return Nullable[T]{set: true, value: &value}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.value = nil
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.value = &value
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.value)
}

func (n Nullable[T]) IsSet() bool {
	return n.set
}

// Value is nil when the key was absent or null.
func (n Nullable[T]) Value() *T {
	return n.value
}

// DateField parses a YYYY-MM-DD input. Null and "" both clear the date.
func DateField(field string, value Nullable[string]) (*datatypes.Date, error) {
	raw := value.Value()
	date, err := ParseDate(raw)
	if err != nil {
		return nil, apperrors.FieldValidation(field, "%s: date has wrong format, use YYYY-MM-DD", field)
	}
	return date, nil
}
