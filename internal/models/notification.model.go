package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	RecipientID      int                 `gorm:"not null;index"                                          json:"recipient"`
	Recipient        *Account            `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"      json:"-"`
	Message          string              `gorm:"type:text;not null"                                      json:"message"`
	IsRead           bool                `gorm:"type:bool;not null;default:false"                        json:"is_read"`
	CreatedAt        time.Time           `gorm:"autoCreateTime;<-:create;index"                          json:"created_at"`
	RelatedRequestID *int                `gorm:"index"                                                   json:"related_request"`
	RelatedRequest   *MaintenanceRequest `gorm:"foreignKey:RelatedRequestID;constraint:OnDelete:CASCADE" json:"-"`
	// AlertDate is written by the alert dispatcher only; the partial unique
	// index on (recipient_id, related_request_id, alert_date) backs dedup.
	AlertDate *datatypes.Date `gorm:"type:date" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
