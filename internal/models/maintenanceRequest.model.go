package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RequestType string

const (
	RequestTypeCorrective RequestType = "Corrective"
	RequestTypePreventive RequestType = "Preventive"
)

func (t RequestType) Valid() bool {
	return t == RequestTypeCorrective || t == RequestTypePreventive
}

// RequestStatus transitions New -> In Progress -> Repaired | Scrap are
// intent only; any valid status may be written at any time.
type RequestStatus string

const (
	StatusNew        RequestStatus = "New"
	StatusInProgress RequestStatus = "In Progress"
	StatusRepaired   RequestStatus = "Repaired"
	StatusScrap      RequestStatus = "Scrap"
)

// Statuses is the fixed board order.
var Statuses = []RequestStatus{StatusNew, StatusInProgress, StatusRepaired, StatusScrap}

func (s RequestStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type MaintenanceRequest struct {
	BaseModel
	Subject       string           `gorm:"type:varchar(255);not null"                            json:"subject"`
	RequestType   RequestType      `gorm:"type:varchar(20);not null"                             json:"request_type"`
	EquipmentID   int              `gorm:"not null;index"                                        json:"equipment"`
	Equipment     *Equipment       `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"    json:"-"`
	TeamID        int              `gorm:"not null;index"                                        json:"team"`
	Team          *MaintenanceTeam `gorm:"foreignKey:TeamID;constraint:OnDelete:RESTRICT"        json:"-"`
	TechnicianID  *int             `gorm:"index"                                                 json:"technician"`
	Technician    *Account         `gorm:"foreignKey:TechnicianID;constraint:OnDelete:SET NULL"  json:"-"`
	Status        RequestStatus    `gorm:"type:varchar(20);not null;default:'New';index"         json:"status"`
	ScheduledDate *datatypes.Date  `gorm:"type:date;index"                                       json:"scheduled_date"`
	DurationHours *decimal.Decimal `gorm:"type:decimal(5,2)"                                     json:"duration_hours"`
	DueDate       *datatypes.Date  `gorm:"type:date"                                             json:"due_date"`
	CreatedAt     time.Time        `gorm:"autoCreateTime;<-:create;index"                        json:"created_at"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_request"
}

func (r *MaintenanceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = StatusNew
	}
	if !r.RequestType.Valid() || !r.Status.Valid() {
		return gorm.ErrInvalidValue
	}
	return nil
}

type MaintenanceRequestResponse struct {
	ID              int              `json:"id"`
	Subject         string           `json:"subject"`
	RequestType     RequestType      `json:"request_type"`
	Equipment       int              `json:"equipment"`
	EquipmentName   *string          `json:"equipment_name"`
	EquipmentSerial *string          `json:"equipment_serial"`
	Team            int              `json:"team"`
	TeamName        *string          `json:"team_name"`
	Technician      *int             `json:"technician"`
	TechnicianName  *string          `json:"technician_name"`
	Status          RequestStatus    `json:"status"`
	ScheduledDate   *string          `json:"scheduled_date"`
	DurationHours   *decimal.Decimal `json:"duration_hours"`
	DueDate         *string          `json:"due_date"`
	CreatedAt       time.Time        `json:"created_at"`
}

func (r *MaintenanceRequest) ToResponse() MaintenanceRequestResponse {
	resp := MaintenanceRequestResponse{
		ID:            r.ID,
		Subject:       r.Subject,
		RequestType:   r.RequestType,
		Equipment:     r.EquipmentID,
		Team:          r.TeamID,
		Technician:    r.TechnicianID,
		Status:        r.Status,
		ScheduledDate: FormatDate(r.ScheduledDate),
		DurationHours: r.DurationHours,
		DueDate:       FormatDate(r.DueDate),
		CreatedAt:     r.CreatedAt,
	}
	if r.Equipment != nil {
		resp.EquipmentName = &r.Equipment.Name
		resp.EquipmentSerial = &r.Equipment.SerialNumber
	}
	if r.Team != nil {
		resp.TeamName = &r.Team.TeamName
	}
	if r.Technician != nil {
		name := r.Technician.FullName()
		resp.TechnicianName = &name
	}
	return resp
}

// StatusGroup is one column of the request board.
type StatusGroup struct {
	Label RequestStatus                `json:"label"`
	Count int                          `json:"count"`
	Items []MaintenanceRequestResponse `json:"items"`
}

// GroupByStatus buckets requests into the four statuses in board order.
// Every bucket is present even when empty.
func GroupByStatus(requests []*MaintenanceRequest) []StatusGroup {
	groups := make([]StatusGroup, len(Statuses))
	index := make(map[RequestStatus]int, len(Statuses))
	for i, status := range Statuses {
		groups[i] = StatusGroup{Label: status, Items: []MaintenanceRequestResponse{}}
		index[status] = i
	}

	for _, request := range requests {
		i, ok := index[request.Status]
		if !ok {
			continue
		}
		groups[i].Items = append(groups[i].Items, request.ToResponse())
		groups[i].Count++
	}

	return groups
}
