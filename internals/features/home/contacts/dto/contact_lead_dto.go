package dto

import (
	"strings"
	"time"

	"surveikita_web/internals/features/home/contacts/model"
)

// ============================
// Response DTO
// ============================

type ContactLeadDTO struct {
	ContactLeadID           string    `json:"contact_lead_id"`
	ContactLeadName         string    `json:"contact_lead_name"`
	ContactLeadOrganization *string   `json:"contact_lead_organization"` // nullable
	ContactLeadPhoneOrEmail string    `json:"contact_lead_phone_or_email"`
	ContactLeadNeeds        string    `json:"contact_lead_needs"`
	ContactLeadCreatedAt    time.Time `json:"contact_lead_created_at"`
}

// ============================
// Create Request (form POST /kontak)
// ============================

type CreateContactLeadRequest struct {
	Name         string `form:"name" validate:"required,max=150"`
	Organization string `form:"organization" validate:"max=200"`
	PhoneOrEmail string `form:"phone_or_email" validate:"required,max=200"`
	Needs        string `form:"needs" validate:"required,max=5000"`
}

// Pesan validasi per field, bahasa Indonesia.
var ContactMessages = map[string]string{
	"name.required":           "Nama wajib diisi",
	"phone_or_email.required": "Kontak (Email/WhatsApp) wajib diisi",
	"needs.required":          "Ceritakan kebutuhan survei kamu",
	"name":                    "Nama terlalu panjang",
	"organization":            "Nama instansi terlalu panjang",
	"phone_or_email":          "Kontak terlalu panjang",
	"needs":                   "Kebutuhan terlalu panjang",
}

func (r *CreateContactLeadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Organization = strings.TrimSpace(r.Organization)
	r.PhoneOrEmail = strings.TrimSpace(r.PhoneOrEmail)
	r.Needs = strings.TrimSpace(r.Needs)
}

func (r CreateContactLeadRequest) ToModel() model.ContactLeadModel {
	m := model.ContactLeadModel{
		ContactLeadName:         r.Name,
		ContactLeadPhoneOrEmail: r.PhoneOrEmail,
		ContactLeadNeeds:        r.Needs,
	}
	if r.Organization != "" {
		org := r.Organization
		m.ContactLeadOrganization = &org
	}
	return m
}

// ============================
// Converter
// ============================

func ToContactLeadDTO(m model.ContactLeadModel) ContactLeadDTO {
	return ContactLeadDTO{
		ContactLeadID:           m.ContactLeadID.String(),
		ContactLeadName:         m.ContactLeadName,
		ContactLeadOrganization: m.ContactLeadOrganization,
		ContactLeadPhoneOrEmail: m.ContactLeadPhoneOrEmail,
		ContactLeadNeeds:        m.ContactLeadNeeds,
		ContactLeadCreatedAt:    m.ContactLeadCreatedAt,
	}
}
