package models

type Role string

const (
	RoleUser       Role = "user"
	RoleTechnician Role = "technician"
	RoleManager    Role = "manager"
)

var Roles = []Role{RoleUser, RoleTechnician, RoleManager}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTechnician, RoleManager:
		return true
	}
	return false
}

type UserProfile struct {
	BaseModel
	AccountID int              `gorm:"not null;uniqueIndex"                                       json:"user_id"`
	Account   *Account         `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"           json:"-"`
	Role      Role             `gorm:"type:varchar(20);not null;default:'user';index"             json:"role"`
	TeamID    *int             `gorm:"index"                                                      json:"team"`
	Team      *MaintenanceTeam `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"             json:"-"`
	AvatarURL *string          `gorm:"type:varchar(200)"                                          json:"avatar_url"`
}

func (UserProfile) TableName() string {
	return "users"
}

type UserProfileResponse struct {
	ID        int             `json:"id"`
	User      *AccountSummary `json:"user"`
	UserID    int             `json:"user_id"`
	Role      Role            `json:"role"`
	Team      *int            `json:"team"`
	TeamName  *string         `json:"team_name"`
	AvatarURL *string         `json:"avatar_url"`
	FullName  string          `json:"full_name"`
}

func (p *UserProfile) ToResponse() UserProfileResponse {
	resp := UserProfileResponse{
		ID:        p.ID,
		UserID:    p.AccountID,
		Role:      p.Role,
		Team:      p.TeamID,
		AvatarURL: p.AvatarURL,
	}
	if p.Account != nil {
		summary := p.Account.ToSummary()
		resp.User = &summary
		resp.FullName = p.Account.FullName()
	}
	if p.Team != nil {
		resp.TeamName = &p.Team.TeamName
	}
	return resp
}
