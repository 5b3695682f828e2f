package validation

import (
	"encoding/json"
	"testing"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Team Nullable[int]    `json:"team"`
	Date Nullable[string] `json:"due_date"`
}

func TestNullable_UnmarshalJSON(t *testing.T) {
	var absent patch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Team.IsSet())
	assert.Nil(t, absent.Team.Value())

	var null patch
	require.NoError(t, json.Unmarshal([]byte(`{"team": null}`), &null))
	assert.True(t, null.Team.IsSet())
	assert.Nil(t, null.Team.Value())

	var value patch
	require.NoError(t, json.Unmarshal([]byte(`{"team": 4, "due_date": "2025-02-01"}`), &value))
	assert.True(t, value.Team.IsSet())
	require.NotNil(t, value.Team.Value())
	assert.Equal(t, 4, *value.Team.Value())

	var wrong patch
	assert.Error(t, json.Unmarshal([]byte(`{"team": "four"}`), &wrong))
}

func TestNullable_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(patch{Team: Set(3), Date: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"team": 3, "due_date": null}`, string(out))
}

func TestDateField(t *testing.T) {
	date, err := DateField("due_date", Set("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", *FormatDate(date))

	date, err = DateField("due_date", Set(""))
	require.NoError(t, err)
	assert.Nil(t, date)

	date, err = DateField("due_date", Null[string]())
	require.NoError(t, err)
	assert.Nil(t, date)

	_, err = DateField("due_date", Set("01/02/2025"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "due_date", apperrors.FieldOf(err))
}
