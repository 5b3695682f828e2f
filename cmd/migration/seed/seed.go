package seed

import (
	"context"
	"strings"
	"time"

	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	DefaultPassword = "password123"
	sampleTeamName  = "IT Support"
)

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Seeder struct {
	repos       repositories.Repository
	transaction services.Transactor
	hasher      PasswordHasher
	log         logger.Logger
	// Clear wipes every seeded table. Nil disables --clear.
	Clear func(ctx context.Context) error
	Today func() time.Time
}

func New(
	repos repositories.Repository,
	transaction services.Transactor,
	hasher PasswordHasher,
) *Seeder {
	return &Seeder{
		repos:       repos,
		transaction: transaction,
		hasher:      hasher,
		log:         logger.New("seed"),
		Today:       time.Now,
	}
}

// TruncateAll empties the domain tables and resets their id sequences.
func TruncateAll(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.WithContext(ctx).Exec(
			"TRUNCATE TABLE notifications, maintenance_request, equipment, users, accounts, maintenance_team RESTART IDENTITY CASCADE",
		).Error
	}
}

func (s *Seeder) clear(ctx context.Context) error {
	log := s.log.Function("clear")
	if s.Clear == nil {
		return log.ErrMsg("clearing is not configured")
	}
	log.Info("Clearing existing data")
	if err := s.Clear(ctx); err != nil {
		return log.Err("failed to clear existing data", err)
	}
	return nil
}

type sampleUser struct {
	username  string
	firstName string
	lastName  string
	role      Role
	team      string
}

var sampleUsers = []sampleUser{
	{"amit.sharma", "Amit", "Sharma", RoleManager, "IT Support"},
	{"rahul.verma", "Rahul", "Verma", RoleTechnician, "IT Support"},
	{"suresh.patel", "Suresh", "Patel", RoleTechnician, "Mechanical"},
	{"neha.singh", "Neha", "Singh", RoleTechnician, "Electrical"},
	{"general.user", "General", "User", RoleUser, ""},
}

type sampleEquipment struct {
	name       string
	serial     string
	department Department
	owner      string
	location   string
	purchased  time.Time
	warrantyTo time.Time
	team       string
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var sampleEquipmentItems = []sampleEquipment{
	{"Office Printer", "PRN-001", DepartmentITAdmin, "Amit Sharma", "Floor 1", day(2023, 1, 10), day(2026, 1, 10), "IT Support"},
	{"CNC Machine", "CNC-045", DepartmentProduction, "Factory Head", "Plant A", day(2022, 6, 15), day(2027, 6, 15), "Mechanical"},
	{"Server Rack", "SRV-010", DepartmentITAdmin, "IT Dept", "Server Room", day(2021, 11, 20), day(2026, 11, 20), "IT Support"},
	{"Microscope", "QC-MIC-001", DepartmentQualityControl, "QC Manager", "Lab 1", day(2023, 3, 10), day(2028, 3, 10), "Electrical"},
	{"Test Chamber", "RND-CHM-002", DepartmentRnD, "Dr. Smith", "Innovation Lab", day(2023, 5, 20), day(2026, 5, 20), "Mechanical"},
	{"Forklift", "WH-FL-003", DepartmentWarehouse, "Warehouse Mgr", "Dock A", day(2022, 1, 15), day(2027, 1, 15), "Mechanical"},
	{"HVAC Unit 1", "FAC-HVAC-004", DepartmentFacilities, "Facility Mgr", "Roof", day(2021, 6, 1), day(2031, 6, 1), "Electrical"},
}

// SampleSummary reports what LoadSample wrote. Skipped is set when the
// fixture was already present and nothing was written.
type SampleSummary struct {
	Skipped   bool
	Teams     int
	Users     int
	Equipment int
	Requests  int
}

// LoadSample writes the fixed demo fixture in one transaction.
func (s *Seeder) LoadSample(ctx context.Context, clear bool) (SampleSummary, error) {
	log := s.log.Function("LoadSample")

	if clear {
		if err := s.clear(ctx); err != nil {
			return SampleSummary{}, err
		}
	}

	var summary SampleSummary
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		exists, err := s.sampleExists(ctx, tx)
		if err != nil {
			return err
		}
		if exists {
			log.Warn("Sample data already exists, use --clear to reload")
			summary.Skipped = true
			return nil
		}

		teams := map[string]int{}
		for _, name := range []string{"IT Support", "Mechanical", "Electrical"} {
			team := &MaintenanceTeam{TeamName: name}
			if err := s.repos.Team.Create(ctx, tx, team); err != nil {
				return log.Err("failed to create team", err, "team", name)
			}
			teams[name] = team.ID
			summary.Teams++
		}

		hash, err := s.hasher.HashPassword(DefaultPassword)
		if err != nil {
			return err
		}

		accounts := map[string]int{}
		for _, u := range sampleUsers {
			var teamID *int
			if id, ok := teams[u.team]; ok {
				teamID = &id
			}
			accountID, err := s.createUser(ctx, tx, newAccount(u.username, u.firstName, u.lastName, hash), u.role, teamID, nil)
			if err != nil {
				return err
			}
			accounts[u.username] = accountID
			summary.Users++
		}

		equipment := map[string]int{}
		for _, item := range sampleEquipmentItems {
			record := &Equipment{
				Name:              item.name,
				SerialNumber:      item.serial,
				Department:        &item.department,
				OwnerName:         &item.owner,
				Location:          &item.location,
				PurchaseDate:      NewDate(item.purchased),
				WarrantyEnd:       NewDate(item.warrantyTo),
				MaintenanceTeamID: teams[item.team],
				IsActive:          true,
			}
			if err := s.repos.Equipment.Create(ctx, tx, record); err != nil {
				return log.Err("failed to create equipment", err, "serial", item.serial)
			}
			equipment[item.serial] = record.ID
			summary.Equipment++
		}

		technicianID := accounts["rahul.verma"]
		request := &MaintenanceRequest{
			Subject:      "Printer not working",
			RequestType:  RequestTypeCorrective,
			EquipmentID:  equipment["PRN-001"],
			TeamID:       teams["IT Support"],
			TechnicianID: &technicianID,
			Status:       StatusNew,
			DueDate:      NewDate(day(2025, 1, 10)),
		}
		if err := s.repos.MaintenanceRequest.Create(ctx, tx, request); err != nil {
			return log.Err("failed to create maintenance request", err)
		}
		summary.Requests++

		return nil
	})
	if err != nil {
		return SampleSummary{}, err
	}

	if !summary.Skipped {
		log.Info(
			"Sample data loaded",
			"teams", summary.Teams,
			"users", summary.Users,
			"equipment", summary.Equipment,
			"requests", summary.Requests,
		)
	}
	return summary, nil
}

func (s *Seeder) sampleExists(ctx context.Context, tx *gorm.DB) (bool, error) {
	teams, err := s.repos.Team.List(ctx, tx, repositories.TeamFilter{Search: sampleTeamName})
	if err != nil {
		return false, err
	}
	for _, team := range teams {
		if strings.EqualFold(team.TeamName, sampleTeamName) {
			return true, nil
		}
	}
	return false, nil
}

func newAccount(username, firstName, lastName, passwordHash string) *Account {
	return &Account{
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        username + "@example.com",
		PasswordHash: passwordHash,
		IsActive:     true,
	}
}

// createUser writes an account together with its profile.
func (s *Seeder) createUser(
	ctx context.Context,
	tx *gorm.DB,
	account *Account,
	role Role,
	teamID *int,
	avatarURL *string,
) (int, error) {
	log := s.log.Function("createUser")

	if err := s.repos.Account.Create(ctx, tx, account); err != nil {
		return 0, log.Err("failed to create account", err, "username", account.Username)
	}

	profile := &UserProfile{
		AccountID: account.ID,
		Role:      role,
		TeamID:    teamID,
		AvatarURL: avatarURL,
	}
	if err := s.repos.UserProfile.Create(ctx, tx, profile); err != nil {
		return 0, log.Err("failed to create profile", err, "username", account.Username)
	}

	return account.ID, nil
}
