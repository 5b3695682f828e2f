package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnums_Valid(t *testing.T) {
	assert.True(t, RoleTechnician.Valid())
	assert.False(t, Role("admin").Valid())

	assert.True(t, RequestTypePreventive.Valid())
	assert.False(t, RequestType("corrective").Valid())

	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, RequestStatus("Done").Valid())

	assert.True(t, DepartmentITAdmin.Valid())
	assert.True(t, Department("R&D").Valid())
	assert.False(t, Department("Sales").Valid())
}

func TestStatuses_BoardOrder(t *testing.T) {
	assert.Equal(t, []RequestStatus{"New", "In Progress", "Repaired", "Scrap"}, Statuses)
}

func TestAccount_FullName(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		want    string
	}{
		{"first and last", Account{Username: "neha.singh", FirstName: "Neha", LastName: "Singh"}, "Neha Singh"},
		{"first only", Account{Username: "neha.singh", FirstName: "Neha"}, "Neha"},
		{"no names", Account{Username: "general.user"}, "general.user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.FullName())
		})
	}
}

func TestParseAndFormatDate(t *testing.T) {
	s := "2025-01-10"
	d, err := ParseDate(&s)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2025-01-10", *FormatDate(d))

	empty := ""
	d, err = ParseDate(&empty)
	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate(nil)
	assert.NoError(t, err)
	assert.Nil(t, d)

	bad := "10-01-2025"
	_, err = ParseDate(&bad)
	assert.Error(t, err)

	assert.Nil(t, FormatDate(nil))
}

func TestNewDate_Truncates(t *testing.T) {
	d := NewDate(time.Date(2025, 5, 20, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2025-05-20", *FormatDate(d))
}

func TestNewDate_KeepsLocalCalendarDate(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	d := NewDate(time.Date(2025, 5, 21, 1, 0, 0, 0, kolkata))

	assert.Equal(t, "2025-05-21", *FormatDate(d))
	assert.Equal(t, time.UTC, time.Time(*d).Location())
}

func TestMaintenanceRequest_ToResponse(t *testing.T) {
	techID := 3
	hours := decimal.RequireFromString("1.50")
	req := &MaintenanceRequest{
		BaseModel:     BaseModel{ID: 1},
		Subject:       "Printer not working",
		RequestType:   RequestTypeCorrective,
		EquipmentID:   10,
		Equipment:     &Equipment{Name: "Office Printer", SerialNumber: "PRN-001"},
		TeamID:        2,
		Team:          &MaintenanceTeam{TeamName: "IT Support"},
		TechnicianID:  &techID,
		Technician:    &Account{Username: "rahul.verma", FirstName: "Rahul", LastName: "Verma"},
		Status:        StatusNew,
		ScheduledDate: NewDate(time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)),
		DurationHours: &hours,
	}

	resp := req.ToResponse()
	assert.Equal(t, "Office Printer", *resp.EquipmentName)
	assert.Equal(t, "PRN-001", *resp.EquipmentSerial)
	assert.Equal(t, "IT Support", *resp.TeamName)
	assert.Equal(t, "Rahul Verma", *resp.TechnicianName)
	assert.Equal(t, "2025-01-08", *resp.ScheduledDate)
	assert.Nil(t, resp.DueDate)
	assert.Equal(t, "1.5", resp.DurationHours.String())
}

func TestMaintenanceRequest_BeforeCreate(t *testing.T) {
	req := &MaintenanceRequest{RequestType: RequestTypePreventive}
	require.NoError(t, req.BeforeCreate(nil))
	assert.Equal(t, StatusNew, req.Status)

	bad := &MaintenanceRequest{RequestType: "Other"}
	assert.Error(t, bad.BeforeCreate(nil))
}

func TestUserProfile_ToResponse(t *testing.T) {
	teamID := 4
	profile := &UserProfile{
		BaseModel: BaseModel{ID: 7},
		AccountID: 12,
		Account:   &Account{BaseModel: BaseModel{ID: 12}, Username: "suresh.patel", FirstName: "Suresh", LastName: "Patel"},
		Role:      RoleTechnician,
		TeamID:    &teamID,
		Team:      &MaintenanceTeam{TeamName: "Mechanical"},
	}

	resp := profile.ToResponse()
	assert.Equal(t, 12, resp.UserID)
	assert.Equal(t, "suresh.patel", resp.User.Username)
	assert.Equal(t, "Suresh Patel", resp.FullName)
	assert.Equal(t, "Mechanical", *resp.TeamName)
}

func TestGroupByStatus(t *testing.T) {
	empty := GroupByStatus(nil)
	require.Len(t, empty, 4)
	for i, status := range Statuses {
		assert.Equal(t, status, empty[i].Label)
		assert.Equal(t, 0, empty[i].Count)
		assert.NotNil(t, empty[i].Items)
	}

	groups := GroupByStatus([]*MaintenanceRequest{
		{BaseModel: BaseModel{ID: 1}, Status: StatusNew},
		{BaseModel: BaseModel{ID: 2}, Status: StatusScrap},
		{BaseModel: BaseModel{ID: 3}, Status: StatusNew},
	})
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 0, groups[1].Count)
	assert.Equal(t, 0, groups[2].Count)
	assert.Equal(t, 1, groups[3].Count)
	assert.Equal(t, 2, groups[3].Items[0].ID)
}
