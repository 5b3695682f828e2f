package models

type MaintenanceTeam struct {
	BaseModel
	TeamName string `gorm:"type:varchar(100);not null" json:"team_name"`
}

func (MaintenanceTeam) TableName() string {
	return "maintenance_team"
}
