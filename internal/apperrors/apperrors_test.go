package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validation("bad %s", "input"), ErrValidation},
		{"field validation", FieldValidation("team", "team does not exist"), ErrValidation},
		{"conflict", Conflict("serial taken"), ErrConflict},
		{"not found", NotFound("request %d not found", 4), ErrNotFound},
		{"permission", Permission("not yours"), ErrPermission},
		{"unauthorized", Unauthorized("bad credentials"), ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.True(t, IsKnown(tt.err))

			wrapped := fmt.Errorf("controller: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
		})
	}
}

func TestMessageAndField(t *testing.T) {
	err := FieldValidation("equipment", "equipment %d does not exist", 9)
	assert.Equal(t, "equipment 9 does not exist", err.Error())
	assert.Equal(t, "equipment", FieldOf(err))
	assert.Equal(t, "", FieldOf(NotFound("x")))
	assert.Equal(t, "", FieldOf(errors.New("plain")))
}

func TestIsKnown_PlainError(t *testing.T) {
	assert.False(t, IsKnown(errors.New("connection reset")))
}
