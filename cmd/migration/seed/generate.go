package seed

import (
	"context"
	"fmt"
	"strings"

	. "gearguard/internal/models"
	"gearguard/internal/utils"

	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GenerateOptions struct {
	Teams     int
	Users     int
	Equipment int
	Requests  int
	Clear     bool
}

func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Teams: 5, Users: 20, Equipment: 50, Requests: 100}
}

type GenerateSummary struct {
	Teams     int
	Users     int
	Equipment int
	Requests  int
}

var teamTypes = []string{
	"Electrical", "Mechanical", "HVAC", "Plumbing", "IT Support",
	"Facility Maintenance", "Equipment Repair", "Preventive Maintenance",
}

// roleCycle yields 60% users, 30% technicians and 10% managers.
var roleCycle = func() []Role {
	roles := make([]Role, 0, 20)
	for range 12 {
		roles = append(roles, RoleUser)
	}
	for range 6 {
		roles = append(roles, RoleTechnician)
	}
	return append(roles, RoleManager, RoleManager)
}()

type catalogItem struct {
	name   string
	prefix string
}

var equipmentCatalog = []catalogItem{
	{"CNC Vertical Center", "CNC-VC"},
	{"Industrial Robot Arm", "ROB-AR"},
	{"Heavy Duty Conveyor", "CON-HD"},
	{"Electric Forklift", "FL-EL"},
	{"Rotary Screw Compressor", "CMP-RS"},
	{"Diesel Generator 500kVA", "GEN-DS"},
	{"Hydraulic Press 100T", "PRS-HY"},
	{"MIG Welding Station", "WLD-MG"},
	{"Precision Lathe", "LTH-PR"},
	{"5-Axis Milling Machine", "MLL-5A"},
	{"CNC Press Brake", "BRK-CN"},
	{"Surface Grinder", "GRD-SF"},
	{"Radial Drill Press", "DRL-RD"},
	{"Industrial 3D Printer", "PRT-3D"},
	{"Fiber Laser Cutter", "LSR-FB"},
	{"Injection Molder 200T", "INJ-20"},
	{"Vacuum Furnace", "FUR-VC"},
	{"Powder Coating Booth", "BTH-PC"},
	{"Overhead Crane 10T", "CRN-OV"},
	{"Auto-Palletizer", "PLT-AU"},
}

var (
	correctiveSubjects = []string{
		"Repair required for %s",
		"%s malfunction",
		"Emergency repair - %s",
		"%s not functioning properly",
		"Breakdown: %s",
	}
	preventiveSubjects = []string{
		"Scheduled maintenance for %s",
		"Preventive service - %s",
		"Routine inspection: %s",
		"%s quarterly maintenance",
		"Annual service for %s",
	}
	statusWeights = []int{40, 30, 20, 10}
)

const (
	serialAttempts = 5
	letters        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generate writes randomized teams, users, equipment and requests. Requests
// are skipped when there is no equipment to attach them to.
func (s *Seeder) Generate(
	ctx context.Context,
	df *utils.DateFaker,
	opts GenerateOptions,
) (GenerateSummary, error) {
	log := s.log.Function("Generate")

	if opts.Clear {
		if err := s.clear(ctx); err != nil {
			return GenerateSummary{}, err
		}
	}

	var summary GenerateSummary
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		teams, err := s.generateTeams(ctx, tx, opts.Teams)
		if err != nil {
			return err
		}
		summary.Teams = len(teams)

		users, technicians, err := s.generateUsers(ctx, tx, df, opts.Users, teams)
		if err != nil {
			return err
		}
		summary.Users = len(users)

		equipment, err := s.generateEquipment(ctx, tx, df, opts.Equipment, teams)
		if err != nil {
			return err
		}
		summary.Equipment = len(equipment)

		if len(equipment) == 0 {
			if opts.Requests > 0 {
				log.Warn("Cannot generate requests without equipment and teams")
			}
			return nil
		}

		if len(technicians) == 0 {
			technicians = users[:min(5, len(users))]
		}
		requests, err := s.generateRequests(ctx, tx, df, opts.Requests, equipment, technicians)
		if err != nil {
			return err
		}
		summary.Requests = requests

		return nil
	})
	if err != nil {
		return GenerateSummary{}, err
	}

	log.Info(
		"Data generation complete",
		"teams", summary.Teams,
		"users", summary.Users,
		"equipment", summary.Equipment,
		"requests", summary.Requests,
	)
	return summary, nil
}

func (s *Seeder) generateTeams(ctx context.Context, tx *gorm.DB, count int) ([]int, error) {
	log := s.log.Function("generateTeams")

	ids := make([]int, 0, count)
	for i := range count {
		name := fmt.Sprintf("%s Team", faker.Word())
		if i < len(teamTypes) {
			name = fmt.Sprintf("%s Team", teamTypes[i])
		}

		team := &MaintenanceTeam{TeamName: name}
		if err := s.repos.Team.Create(ctx, tx, team); err != nil {
			return nil, log.Err("failed to create team", err, "team", name)
		}
		ids = append(ids, team.ID)
	}

	return ids, nil
}

// generateUsers returns every created account id and the technician subset.
func (s *Seeder) generateUsers(
	ctx context.Context,
	tx *gorm.DB,
	df *utils.DateFaker,
	count int,
	teams []int,
) ([]int, []int, error) {
	if count <= 0 {
		return nil, nil, nil
	}

	hash, err := s.hasher.HashPassword(DefaultPassword)
	if err != nil {
		return nil, nil, err
	}

	users := make([]int, 0, count)
	var technicians []int
	for i := range count {
		username := fmt.Sprintf("%s%d", strings.ToLower(faker.Username()), df.Between(100, 999))
		account := &Account{
			Username:     username,
			FirstName:    faker.FirstName(),
			LastName:     faker.LastName(),
			Email:        fmt.Sprintf("%s@%s", username, faker.DomainName()),
			PasswordHash: hash,
			IsActive:     true,
		}
		if _, err := s.repos.Account.GetByUsername(ctx, tx, username); err == nil {
			account.Username = fmt.Sprintf("%s_%d", username, i)
		}

		var teamID *int
		if len(teams) > 0 {
			id := teams[df.Intn(len(teams))]
			teamID = &id
		}

		var avatarURL *string
		if df.Chance(50) {
			url := faker.URL()
			avatarURL = &url
		}

		role := roleCycle[i%len(roleCycle)]
		accountID, err := s.createUser(ctx, tx, account, role, teamID, avatarURL)
		if err != nil {
			return nil, nil, err
		}
		users = append(users, accountID)
		if role == RoleTechnician {
			technicians = append(technicians, accountID)
		}
	}

	return users, technicians, nil
}

type generatedEquipment struct {
	id     int
	name   string
	teamID int
}

func (s *Seeder) generateEquipment(
	ctx context.Context,
	tx *gorm.DB,
	df *utils.DateFaker,
	count int,
	teams []int,
) ([]generatedEquipment, error) {
	log := s.log.Function("generateEquipment")

	if len(teams) == 0 {
		if count > 0 {
			log.Warn("Cannot generate equipment without teams")
		}
		return nil, nil
	}

	today := utils.StartOfDay(s.Today())
	buildings := []string{"A", "B", "C"}
	areas := []string{"North", "South", "East", "West"}

	serials := map[string]bool{}
	created := make([]generatedEquipment, 0, count)
	for range count {
		item := equipmentCatalog[df.Intn(len(equipmentCatalog))]
		department := Departments[df.Intn(len(Departments))]
		owner := faker.Name()
		location := fmt.Sprintf(
			"Building %s, Floor %d, Area %s",
			buildings[df.Intn(len(buildings))],
			df.Between(1, 3),
			areas[df.Intn(len(areas))],
		)

		purchased := df.DaysFrom(today, -5*365, 0)
		horizon := int(today.AddDate(3, 0, 0).Sub(purchased).Hours() / 24)
		warranty := df.DaysFrom(purchased, 0, horizon)

		record := &Equipment{
			Name:              item.name,
			Department:        &department,
			OwnerName:         &owner,
			Location:          &location,
			PurchaseDate:      NewDate(purchased),
			WarrantyEnd:       NewDate(warranty),
			MaintenanceTeamID: teams[df.Intn(len(teams))],
			IsActive:          !df.Chance(5),
		}

		record.SerialNumber = serialNumber(df, item.prefix)
		for attempt := 1; serials[record.SerialNumber] && attempt < serialAttempts; attempt++ {
			record.SerialNumber = serialNumber(df, item.prefix)
		}
		serials[record.SerialNumber] = true

		if err := s.repos.Equipment.Create(ctx, tx, record); err != nil {
			return nil, log.Err("failed to create equipment", err, "serial", record.SerialNumber)
		}

		created = append(created, generatedEquipment{
			id:     record.ID,
			name:   record.Name,
			teamID: record.MaintenanceTeamID,
		})
	}

	return created, nil
}

// serialNumber renders PREFIX-####-???.
func serialNumber(df *utils.DateFaker, prefix string) string {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = letters[df.Intn(len(letters))]
	}
	return fmt.Sprintf("%s-%04d-%s", prefix, df.Intn(10000), suffix)
}

func (s *Seeder) generateRequests(
	ctx context.Context,
	tx *gorm.DB,
	df *utils.DateFaker,
	count int,
	equipment []generatedEquipment,
	technicians []int,
) (int, error) {
	log := s.log.Function("generateRequests")

	today := utils.StartOfDay(s.Today())
	created := 0
	for range count {
		item := equipment[df.Intn(len(equipment))]

		requestType := RequestTypeCorrective
		subjects := correctiveSubjects
		if !df.Chance(70) {
			requestType = RequestTypePreventive
			subjects = preventiveSubjects
		}

		var technicianID *int
		if len(technicians) > 0 && df.Chance(70) {
			id := technicians[df.Intn(len(technicians))]
			technicianID = &id
		}

		scheduled := df.DaysFrom(today, -30, 60)
		due := scheduled.AddDate(0, 0, df.Between(1, 14))
		duration := decimal.New(int64(df.Between(100, 2400)), -2)

		request := &MaintenanceRequest{
			Subject:       fmt.Sprintf(subjects[df.Intn(len(subjects))], item.name),
			RequestType:   requestType,
			EquipmentID:   item.id,
			TeamID:        item.teamID,
			TechnicianID:  technicianID,
			Status:        Statuses[df.Weighted(statusWeights)],
			ScheduledDate: NewDate(scheduled),
			DurationHours: &duration,
			DueDate:       NewDate(due),
		}
		if err := s.repos.MaintenanceRequest.Create(ctx, tx, request); err != nil {
			return created, log.Err("failed to create maintenance request", err, "equipmentID", item.id)
		}
		created++
	}

	return created, nil
}
