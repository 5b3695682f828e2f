package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/repositories/repotest"
	"gearguard/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct {
	calls int
	err   error
}

func (h *plainHasher) HashPassword(password string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func newSeeder(t *testing.T) (*Seeder, *repotest.Store, *plainHasher) {
	t.Helper()
	store := repotest.New()
	hasher := &plainHasher{}
	seeder := New(store.Repository(), store, hasher)
	seeder.Today = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return seeder, store, hasher
}

func TestLoadSample(t *testing.T) {
	seeder, store, hasher := newSeeder(t)
	ctx := context.Background()
	repos := store.Repository()

	summary, err := seeder.LoadSample(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, SampleSummary{Teams: 3, Users: 5, Equipment: 7, Requests: 1}, summary)
	assert.Equal(t, 1, hasher.calls)

	teams, err := repos.Team.List(ctx, nil, repositories.TeamFilter{})
	require.NoError(t, err)
	names := make([]string, 0, len(teams))
	for _, team := range teams {
		names = append(names, team.TeamName)
	}
	assert.ElementsMatch(t, []string{"IT Support", "Mechanical", "Electrical"}, names)

	account, err := repos.Account.GetByUsername(ctx, nil, "rahul.verma")
	require.NoError(t, err)
	assert.Equal(t, "hashed:"+DefaultPassword, account.PasswordHash)
	assert.True(t, account.IsActive)

	technician := RoleTechnician
	technicians, err := repos.UserProfile.List(ctx, nil, repositories.ProfileFilter{Role: &technician})
	require.NoError(t, err)
	assert.Len(t, technicians, 3)

	general, err := repos.Account.GetByUsername(ctx, nil, "general.user")
	require.NoError(t, err)
	profile, err := repos.UserProfile.GetByAccountID(ctx, nil, general.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, profile.Role)
	assert.Nil(t, profile.TeamID)

	requests, err := repos.MaintenanceRequest.List(ctx, nil, repositories.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	request := requests[0].ToResponse()
	assert.Equal(t, "Printer not working", request.Subject)
	assert.Equal(t, StatusNew, request.Status)
	assert.Equal(t, RequestTypeCorrective, request.RequestType)
	require.NotNil(t, request.Technician)
	assert.Equal(t, account.ID, *request.Technician)
	require.NotNil(t, request.EquipmentSerial)
	assert.Equal(t, "PRN-001", *request.EquipmentSerial)
	require.NotNil(t, request.DueDate)
	assert.Equal(t, "2025-01-10", *request.DueDate)
}

func TestLoadSample_AlreadyExists(t *testing.T) {
	seeder, store, _ := newSeeder(t)
	ctx := context.Background()

	_, err := seeder.LoadSample(ctx, false)
	require.NoError(t, err)

	summary, err := seeder.LoadSample(ctx, false)
	require.NoError(t, err)
	assert.True(t, summary.Skipped)

	teams, err := store.Repository().Team.List(ctx, nil, repositories.TeamFilter{})
	require.NoError(t, err)
	assert.Len(t, teams, 3)
}

func TestLoadSample_Clear(t *testing.T) {
	seeder, _, _ := newSeeder(t)
	ctx := context.Background()

	_, err := seeder.LoadSample(ctx, true)
	assert.EqualError(t, err, "clearing is not configured")

	cleared := 0
	seeder.Clear = func(ctx context.Context) error {
		cleared++
		return nil
	}
	summary, err := seeder.LoadSample(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)
	assert.Equal(t, 3, summary.Teams)

	seeder.Clear = func(ctx context.Context) error { return errors.New("truncate failed") }
	_, err = seeder.LoadSample(ctx, true)
	assert.EqualError(t, err, "truncate failed")
}

func TestLoadSample_HashFailure(t *testing.T) {
	seeder, _, hasher := newSeeder(t)
	hasher.err = errors.New("hash failed")

	_, err := seeder.LoadSample(context.Background(), false)
	assert.EqualError(t, err, "hash failed")
}

func TestGenerate(t *testing.T) {
	seeder, store, hasher := newSeeder(t)
	ctx := context.Background()
	repos := store.Repository()

	df := utils.NewDateFaker()
	df.SetSeed(42)

	summary, err := seeder.Generate(ctx, df, DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Equal(t, GenerateSummary{Teams: 5, Users: 20, Equipment: 50, Requests: 100}, summary)
	assert.Equal(t, 1, hasher.calls)

	teams, err := repos.Team.List(ctx, nil, repositories.TeamFilter{Ordering: "id"})
	require.NoError(t, err)
	require.Len(t, teams, 5)
	assert.Equal(t, "Electrical Team", teams[0].TeamName)
	assert.Equal(t, "IT Support Team", teams[4].TeamName)

	counts := map[Role]int{}
	for _, role := range Roles {
		r := role
		profiles, err := repos.UserProfile.List(ctx, nil, repositories.ProfileFilter{Role: &r})
		require.NoError(t, err)
		counts[role] = len(profiles)
	}
	assert.Equal(t, map[Role]int{RoleUser: 12, RoleTechnician: 6, RoleManager: 2}, counts)

	technicianIDs := map[int]bool{}
	technician := RoleTechnician
	profiles, err := repos.UserProfile.List(ctx, nil, repositories.ProfileFilter{Role: &technician})
	require.NoError(t, err)
	for _, profile := range profiles {
		technicianIDs[profile.AccountID] = true
	}

	equipment, err := repos.Equipment.List(ctx, nil, repositories.EquipmentFilter{})
	require.NoError(t, err)
	serials := map[string]bool{}
	for _, item := range equipment {
		assert.False(t, serials[item.SerialNumber], "duplicate serial %s", item.SerialNumber)
		serials[item.SerialNumber] = true
		require.NotNil(t, item.Department)
		assert.True(t, item.Department.Valid())
		require.NotNil(t, item.PurchaseDate)
		require.NotNil(t, item.WarrantyEnd)
		assert.False(t, time.Time(*item.WarrantyEnd).Before(time.Time(*item.PurchaseDate)))
	}

	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	requests, err := repos.MaintenanceRequest.List(ctx, nil, repositories.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, requests, 100)
	for _, request := range requests {
		assert.True(t, request.Status.Valid())
		assert.True(t, request.RequestType.Valid())

		scheduled := time.Time(*request.ScheduledDate)
		due := time.Time(*request.DueDate)
		assert.False(t, scheduled.Before(today.AddDate(0, 0, -30)))
		assert.False(t, scheduled.After(today.AddDate(0, 0, 60)))
		gap := int(due.Sub(scheduled).Hours() / 24)
		assert.GreaterOrEqual(t, gap, 1)
		assert.LessOrEqual(t, gap, 14)

		require.NotNil(t, request.DurationHours)
		assert.True(t, request.DurationHours.GreaterThanOrEqual(decimal.RequireFromString("1.00")))
		assert.True(t, request.DurationHours.LessThanOrEqual(decimal.RequireFromString("24.00")))

		if request.TechnicianID != nil {
			assert.True(t, technicianIDs[*request.TechnicianID])
		}
	}
}

func TestGenerate_NoTeams(t *testing.T) {
	seeder, _, _ := newSeeder(t)

	summary, err := seeder.Generate(
		context.Background(),
		utils.NewDateFaker(),
		GenerateOptions{Users: 3, Equipment: 4, Requests: 5},
	)
	require.NoError(t, err)
	assert.Equal(t, GenerateSummary{Users: 3}, summary)
}

func TestSerialNumber(t *testing.T) {
	df := utils.NewDateFaker()
	df.SetSeed(7)

	serial := serialNumber(df, "CNC-VC")
	assert.Regexp(t, `^CNC-VC-\d{4}-[A-Z]{3}$`, serial)
}

func TestRoleCycle(t *testing.T) {
	counts := map[Role]int{}
	for _, role := range roleCycle {
		counts[role]++
	}
	assert.Equal(t, map[Role]int{RoleUser: 12, RoleTechnician: 6, RoleManager: 2}, counts)
}
