package authController

import (
	"context"
	"testing"
	"time"

	"gearguard/config"
	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories/repotest"
	"gearguard/internal/services"
	"gearguard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (AuthControllerInterface, *repotest.Store, *services.AuthService, int) {
	t.Helper()

	store := repotest.New()
	auth := services.NewAuthService(config.Config{JWTSecret: "test-secret", JWTTTLHours: 1})

	team := store.AddTeam("Electrical")
	accountID := store.AddUser("tech1", RoleTechnician, &team)
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	require.NoError(t, store.Repository().Account.Update(context.Background(), nil, accountID,
		map[string]any{"password_hash": hash}))

	return New(store.Repository(), store, auth, validation.New()), store, auth, accountID
}

func TestLogin(t *testing.T) {
	controller, _, auth, accountID := setup(t)

	resp, err := controller.Login(context.Background(), LoginInput{Username: "tech1", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, accountID, resp.Account.ID)
	assert.Equal(t, "tech1", resp.Account.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	parsed, err := auth.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, accountID, parsed)
}

func TestLogin_Rejected(t *testing.T) {
	controller, store, _, accountID := setup(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input LoginInput
		kind  error
	}{
		{"wrong password", LoginInput{Username: "tech1", Password: "nope"}, apperrors.ErrUnauthorized},
		{"unknown user", LoginInput{Username: "ghost", Password: "correct-horse"}, apperrors.ErrUnauthorized},
		{"missing password", LoginInput{Username: "tech1"}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Login(ctx, tt.input)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	t.Run("inactive account", func(t *testing.T) {
		require.NoError(t, store.Repository().Account.Update(ctx, nil, accountID,
			map[string]any{"is_active": false}))
		_, err := controller.Login(ctx, LoginInput{Username: "tech1", Password: "correct-horse"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestMe(t *testing.T) {
	controller, store, _, accountID := setup(t)
	ctx := context.Background()

	me, err := controller.Me(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "tech1", me.Account.Username)
	require.NotNil(t, me.Profile)
	assert.Equal(t, RoleTechnician, me.Profile.Role)
	require.NotNil(t, me.Profile.TeamName)
	assert.Equal(t, "Electrical", *me.Profile.TeamName)

	bare := store.AddAccount("service", "Service", "Account")
	me, err = controller.Me(ctx, bare)
	require.NoError(t, err)
	assert.Nil(t, me.Profile)

	_, err = controller.Me(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
