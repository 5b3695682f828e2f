package models

import "gorm.io/datatypes"

type Department string

const (
	DepartmentProduction     Department = "Production"
	DepartmentQualityControl Department = "Quality Control"
	DepartmentRnD            Department = "R&D"
	DepartmentWarehouse      Department = "Warehouse"
	DepartmentFacilities     Department = "Facilities"
	DepartmentITAdmin        Department = "IT & Admin"
)

var Departments = []Department{
	DepartmentProduction,
	DepartmentQualityControl,
	DepartmentRnD,
	DepartmentWarehouse,
	DepartmentFacilities,
	DepartmentITAdmin,
}

func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

type Equipment struct {
	BaseModel
	Name              string           `gorm:"type:varchar(100);not null"                                 json:"name"`
	SerialNumber      string           `gorm:"type:varchar(100);not null;uniqueIndex"                     json:"serial_number"`
	Department        *Department      `gorm:"type:varchar(50)"                                           json:"department"`
	OwnerName         *string          `gorm:"type:varchar(100)"                                          json:"owner_name"`
	Location          *string          `gorm:"type:varchar(100)"                                          json:"location"`
	PurchaseDate      *datatypes.Date  `gorm:"type:date"                                                  json:"purchase_date"`
	WarrantyEnd       *datatypes.Date  `gorm:"type:date"                                                  json:"warranty_end"`
	MaintenanceTeamID int              `gorm:"not null;index"                                             json:"maintenance_team"`
	MaintenanceTeam   *MaintenanceTeam `gorm:"foreignKey:MaintenanceTeamID;constraint:OnDelete:RESTRICT"  json:"-"`
	IsActive          bool             `gorm:"type:bool;not null"                                         json:"is_active"`
}

func (Equipment) TableName() string {
	return "equipment"
}

type EquipmentResponse struct {
	ID                  int         `json:"id"`
	Name                string      `json:"name"`
	SerialNumber        string      `json:"serial_number"`
	Department          *Department `json:"department"`
	OwnerName           *string     `json:"owner_name"`
	Location            *string     `json:"location"`
	PurchaseDate        *string     `json:"purchase_date"`
	WarrantyEnd         *string     `json:"warranty_end"`
	MaintenanceTeam     int         `json:"maintenance_team"`
	MaintenanceTeamName *string     `json:"maintenance_team_name"`
	IsActive            bool        `json:"is_active"`
}

func (e *Equipment) ToResponse() EquipmentResponse {
	resp := EquipmentResponse{
		ID:              e.ID,
		Name:            e.Name,
		SerialNumber:    e.SerialNumber,
		Department:      e.Department,
		OwnerName:       e.OwnerName,
		Location:        e.Location,
		PurchaseDate:    FormatDate(e.PurchaseDate),
		WarrantyEnd:     FormatDate(e.WarrantyEnd),
		MaintenanceTeam: e.MaintenanceTeamID,
		IsActive:        e.IsActive,
	}
	if e.MaintenanceTeam != nil {
		resp.MaintenanceTeamName = &e.MaintenanceTeam.TeamName
	}
	return resp
}
