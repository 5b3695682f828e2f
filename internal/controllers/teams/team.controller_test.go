package teamController

import (
	"context"
	"testing"

	"gearguard/internal/apperrors"
	"gearguard/internal/repositories"
	"gearguard/internal/repositories/repotest"
	"gearguard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() (TeamControllerInterface, *repotest.Store) {
	store := repotest.New()
	return New(store.Repository(), store, validation.New()), store
}

func name(s string) *string { return &s }

func TestTeamController_CreateAndList(t *testing.T) {
	controller, _ := newController()
	ctx := context.Background()

	for _, n := range []string{"Mechanical", "Electrical", "IT Support"} {
		_, err := controller.Create(ctx, TeamInput{TeamName: name(n)})
		require.NoError(t, err)
	}

	teams, err := controller.List(ctx, repositories.TeamFilter{})
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, "Electrical", teams[0].TeamName)

	teams, err = controller.List(ctx, repositories.TeamFilter{Ordering: "-team_name"})
	require.NoError(t, err)
	assert.Equal(t, "Mechanical", teams[0].TeamName)

	teams, err = controller.List(ctx, repositories.TeamFilter{Search: "support"})
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "IT Support", teams[0].TeamName)
}

func TestTeamController_CreateRequiresName(t *testing.T) {
	controller, _ := newController()

	_, err := controller.Create(context.Background(), TeamInput{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "team_name", apperrors.FieldOf(err))
}

func TestTeamController_Update(t *testing.T) {
	controller, store := newController()
	ctx := context.Background()
	id := store.AddTeam("Mechanical")

	team, err := controller.Update(ctx, id, TeamInput{}, true)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical", team.TeamName)

	_, err = controller.Update(ctx, id, TeamInput{}, false)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	team, err = controller.Update(ctx, id, TeamInput{TeamName: name("Mechanics")}, false)
	require.NoError(t, err)
	assert.Equal(t, "Mechanics", team.TeamName)

	_, err = controller.Update(ctx, 999, TeamInput{TeamName: name("Ghost")}, true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTeamController_DeleteRestricted(t *testing.T) {
	controller, store := newController()
	ctx := context.Background()

	used := store.AddTeam("Mechanical")
	store.AddEquipment("Lathe", "LTH-1", used)
	free := store.AddTeam("Unused")

	err := controller.Delete(ctx, used)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "1 equipment and 0 maintenance requests")

	_, err = controller.Get(ctx, used)
	assert.NoError(t, err, "restricted team must survive")

	require.NoError(t, controller.Delete(ctx, free))
	_, err = controller.Get(ctx, free)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, controller.Delete(ctx, 999), apperrors.ErrNotFound)
}
