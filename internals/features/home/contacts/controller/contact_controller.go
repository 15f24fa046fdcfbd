package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"surveikita_web/internals/configs"
	"surveikita_web/internals/features/home/contacts/dto"
	"surveikita_web/internals/features/home/contacts/model"
	"surveikita_web/internals/features/home/contacts/service"
	pageDTO "surveikita_web/internals/features/home/pages/dto"
	helper "surveikita_web/internals/helpers"
	"surveikita_web/internals/views"
)

var validateContact = validator.New()

type ContactController struct {
	DB           *gorm.DB // nil = lead tidak disimpan
	ContactEmail func() string
}

func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{DB: db, ContactEmail: func() string { return configs.ContactEmail }}
}

// =======================
// ✉️ POST /kontak
// Valid → simpan lead (kalau ada DB) lalu 303 ke mailto:
// =======================
func (ctrl *ContactController) Submit(c *fiber.Ctx) error {
	var body dto.CreateContactLeadRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()

	if err := validateContact.Struct(&body); err != nil {
		fieldErrs := map[string]string{}
		for field, msgs := range helper.ValidationFieldErrors(err, dto.ContactMessages) {
			fieldErrs[field] = msgs[0]
		}
		form := pageDTO.ContactForm{
			Name:         body.Name,
			Organization: body.Organization,
			PhoneOrEmail: body.PhoneOrEmail,
			Needs:        body.Needs,
		}
		return c.Status(fiber.StatusUnprocessableEntity).
			Render("pages/landing", pageDTO.NewLandingView(ctrl.ContactEmail(), form, fieldErrs), views.Layout)
	}

	if ctrl.DB != nil {
		lead := body.ToModel()
		lead.ContactLeadID = uuid.New()
		lead.ContactLeadIP = c.IP()
		// lead gagal disimpan tidak menghalangi email
		if err := ctrl.DB.WithContext(c.UserContext()).Create(&lead).Error; err != nil {
			zap.L().Warn("gagal menyimpan contact lead", zap.Error(err))
		}
	}

	return c.Redirect(service.MailtoURL(ctrl.ContactEmail(), body), fiber.StatusSeeOther)
}

// =======================
// 📄 GET /api/a/contact-leads (paginated)
// Query: ?page=1&per_page=20
// =======================
func (ctrl *ContactController) ListLeads(c *fiber.Ctx) error {
	if ctrl.DB == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Database tidak dikonfigurasi")
	}
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.ContactLeadModel{}).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count contact leads")
	}

	var leads []model.ContactLeadModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("contact_lead_created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&leads).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve contact leads")
	}

	resp := make([]dto.ContactLeadDTO, 0, len(leads))
	for _, l := range leads {
		resp = append(resp, dto.ToContactLeadDTO(l))
	}
	return helper.JsonList(c, "ok", resp, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
