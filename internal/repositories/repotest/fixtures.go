package repotest

import (
	"context"
	"time"

	. "gearguard/internal/models"
)

// Fixture helpers panic on failure; they only seed known-good rows.

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func (s *Store) AddTeam(name string) int {
	team := &MaintenanceTeam{TeamName: name}
	must(teamRepo{s}.Create(context.Background(), nil, team))
	return team.ID
}

func (s *Store) AddAccount(username, firstName, lastName string) int {
	account := &Account{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     username + "@gearguard.local",
		IsActive:  true,
	}
	must(accountRepo{s}.Create(context.Background(), nil, account))
	return account.ID
}

// AddUser creates an account and its profile and returns the account id.
func (s *Store) AddUser(username string, role Role, teamID *int) int {
	accountID := s.AddAccount(username, "", "")
	must(profileRepo{s}.Create(context.Background(), nil, &UserProfile{
		AccountID: accountID,
		Role:      role,
		TeamID:    teamID,
	}))
	return accountID
}

func (s *Store) AddEquipment(name, serial string, teamID int) int {
	equipment := &Equipment{
		Name:              name,
		SerialNumber:      serial,
		MaintenanceTeamID: teamID,
		IsActive:          true,
	}
	must(equipmentRepo{s}.Create(context.Background(), nil, equipment))
	return equipment.ID
}

func (s *Store) AddRequest(
	subject string,
	equipmentID int,
	teamID int,
	technicianID *int,
	scheduled *time.Time,
) int {
	request := &MaintenanceRequest{
		Subject:      subject,
		RequestType:  RequestTypePreventive,
		EquipmentID:  equipmentID,
		TeamID:       teamID,
		TechnicianID: technicianID,
	}
	if scheduled != nil {
		request.ScheduledDate = NewDate(*scheduled)
	}
	must(requestRepo{s}.Create(context.Background(), nil, request))
	return request.ID
}
