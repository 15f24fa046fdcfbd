package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactLeadModel: brief dari form kontak landing page.
type ContactLeadModel struct {
	ContactLeadID           uuid.UUID `gorm:"column:contact_lead_id;type:uuid;primaryKey" json:"contact_lead_id"`
	ContactLeadName         string    `gorm:"column:contact_lead_name;type:varchar(150);not null"`
	ContactLeadOrganization *string   `gorm:"column:contact_lead_organization;type:varchar(200)"` // Nullable
	ContactLeadPhoneOrEmail string    `gorm:"column:contact_lead_phone_or_email;type:varchar(200);not null"`
	ContactLeadNeeds        string    `gorm:"column:contact_lead_needs;type:text;not null"`
	ContactLeadIP           string    `gorm:"column:contact_lead_ip;type:varchar(64)"`
	ContactLeadCreatedAt    time.Time `gorm:"column:contact_lead_created_at;autoCreateTime;index"`
}

// TableName sets the name of the table
func (ContactLeadModel) TableName() string {
	return "contact_leads"
}
