package equipmentController

import (
	"context"
	"testing"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/repositories/repotest"
	"gearguard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() (EquipmentControllerInterface, *repotest.Store) {
	store := repotest.New()
	return New(store.Repository(), store, validation.New()), store
}

func ptr[T any](v T) *T { return &v }

func TestEquipmentController_Create(t *testing.T) {
	controller, store := newController()
	team := store.AddTeam("IT Support")

	item, err := controller.Create(context.Background(), EquipmentInput{
		Name:            ptr("Office Printer"),
		SerialNumber:    ptr("PRN-001"),
		Department:      validation.Set(DepartmentITAdmin),
		PurchaseDate:    validation.Set("2023-04-01"),
		WarrantyEnd:     validation.Set(""),
		MaintenanceTeam: ptr(team),
	})
	require.NoError(t, err)

	assert.Equal(t, "PRN-001", item.SerialNumber)
	assert.True(t, item.IsActive)
	require.NotNil(t, item.PurchaseDate)
	assert.Equal(t, "2023-04-01", *item.PurchaseDate)
	assert.Nil(t, item.WarrantyEnd)
	require.NotNil(t, item.MaintenanceTeamName)
	assert.Equal(t, "IT Support", *item.MaintenanceTeamName)
}

func TestEquipmentController_CreateErrors(t *testing.T) {
	controller, store := newController()
	ctx := context.Background()
	team := store.AddTeam("IT Support")
	store.AddEquipment("Router", "RTR-001", team)

	tests := []struct {
		name      string
		input     EquipmentInput
		kind      error
		wantField string
	}{
		{
			name:      "missing serial",
			input:     EquipmentInput{Name: ptr("Switch"), MaintenanceTeam: ptr(team)},
			kind:      apperrors.ErrValidation,
			wantField: "serial_number",
		},
		{
			name:      "missing team",
			input:     EquipmentInput{Name: ptr("Switch"), SerialNumber: ptr("SW-1")},
			kind:      apperrors.ErrValidation,
			wantField: "maintenance_team",
		},
		{
			name:      "unknown team",
			input:     EquipmentInput{Name: ptr("Switch"), SerialNumber: ptr("SW-1"), MaintenanceTeam: ptr(99)},
			kind:      apperrors.ErrValidation,
			wantField: "maintenance_team",
		},
		{
			name: "bad department",
			input: EquipmentInput{
				Name:            ptr("Switch"),
				SerialNumber:    ptr("SW-1"),
				MaintenanceTeam: ptr(team),
				Department:      validation.Set(Department("Sales")),
			},
			kind:      apperrors.ErrValidation,
			wantField: "department",
		},
		{
			name: "bad date",
			input: EquipmentInput{
				Name:            ptr("Switch"),
				SerialNumber:    ptr("SW-1"),
				MaintenanceTeam: ptr(team),
				PurchaseDate:    validation.Set("April 1st"),
			},
			kind:      apperrors.ErrValidation,
			wantField: "purchase_date",
		},
		{
			name:  "duplicate serial",
			input: EquipmentInput{Name: ptr("Router 2"), SerialNumber: ptr("RTR-001"), MaintenanceTeam: ptr(team)},
			kind:  apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.kind)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, apperrors.FieldOf(err))
			}
		})
	}
}

func TestEquipmentController_UpdateAndFilters(t *testing.T) {
	controller, store := newController()
	ctx := context.Background()
	it := store.AddTeam("IT Support")
	mech := store.AddTeam("Mechanical")
	printer := store.AddEquipment("Office Printer", "PRN-001", it)
	store.AddEquipment("Laptop", "LAP-001", it)
	store.AddEquipment("CNC Machine", "CNC-001", mech)

	updated, err := controller.Update(ctx, printer, EquipmentInput{IsActive: ptr(false)}, true)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Office Printer", updated.Name)

	active, err := controller.ByTeam(ctx, it)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "LAP-001", active[0].SerialNumber)

	found, err := controller.List(ctx, repositories.EquipmentFilter{Search: "cnc"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CNC Machine", found[0].Name)

	byName, err := controller.List(ctx, repositories.EquipmentFilter{Ordering: "name"})
	require.NoError(t, err)
	require.Len(t, byName, 3)
	assert.Equal(t, "CNC Machine", byName[0].Name)

	_, err = controller.Update(ctx, printer, EquipmentInput{Name: ptr("Printer")}, false)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = controller.Update(ctx, 999, EquipmentInput{IsActive: ptr(true)}, true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentController_SearchOwnerName(t *testing.T) {
	controller, store := newController()
	ctx := context.Background()
	team := store.AddTeam("Electrical")
	store.AddEquipment("Generator", "GEN-001", team)

	_, err := controller.Create(ctx, EquipmentInput{
		Name:            ptr("Panel Board"),
		SerialNumber:    ptr("PNL-001"),
		OwnerName:       validation.Set("Priya Sharma"),
		MaintenanceTeam: ptr(team),
	})
	require.NoError(t, err)

	found, err := controller.List(ctx, repositories.EquipmentFilter{Search: "sharma"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "PNL-001", found[0].SerialNumber)

	none, err := controller.List(ctx, repositories.EquipmentFilter{Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEquipmentController_DeleteCascadesRequests(t *testing.T) {
	controller, store := newController()
	ctx := context.Background()
	team := store.AddTeam("Mechanical")
	lathe := store.AddEquipment("Lathe", "LTH-1", team)
	requestID := store.AddRequest("Oil change", lathe, team, nil, nil)

	require.NoError(t, controller.Delete(ctx, lathe))

	_, ok := store.Request(requestID)
	assert.False(t, ok)
	assert.ErrorIs(t, controller.Delete(ctx, lathe), apperrors.ErrNotFound)
}
