package models

import "time"

// OrganizationStatus is the lifecycle state of an organization.
type OrganizationStatus string

const (
	// OrganizationStatusActive is a usable organization.
	OrganizationStatusActive OrganizationStatus = "ACTIVE"
	// OrganizationStatusInactive is a disabled organization.
	OrganizationStatusInactive OrganizationStatus = "INACTIVE"
)

// Organization is the top-level tenant grouping users and sub-groups.
type Organization struct {
	ID        uint64             `gorm:"primaryKey" json:"id"`
	Name      string             `gorm:"unique;size:150;not null" json:"name"`
	Email     string             `gorm:"size:255;not null" json:"email"`
	Domain    string             `gorm:"size:255" json:"domain"`
	Status    OrganizationStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedBy uint64             `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// TableName specifies the database table name for the Organization model.
func (Organization) TableName() string {
	return "organizations"
}
