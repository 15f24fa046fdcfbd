package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"surveikita_web/internals/configs"
	"surveikita_web/internals/features/home/pages/dto"
	helper "surveikita_web/internals/helpers"
	"surveikita_web/internals/views"
)

type PageController struct {
	ContactEmail func() string
}

func NewPageController() *PageController {
	return &PageController{ContactEmail: func() string { return configs.ContactEmail }}
}

// 🏠 GET /
func (pc *PageController) Landing(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Render("pages/landing", dto.NewLandingView(pc.ContactEmail(), dto.ContactForm{}, nil), views.Layout)
}

// 🙏 GET /terimakasih
func (pc *PageController) ThankYou(c *fiber.Ctx) error {
	return c.Render("pages/terimakasih", fiber.Map{"PageTitle": "Terima kasih"}, views.Layout)
}

// NotFound dipasang sebagai handler terakhir (catch-all).
func (pc *PageController) NotFound(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return helper.JsonError(c, fiber.StatusNotFound, "Endpoint tidak ditemukan")
	}
	return c.Status(fiber.StatusNotFound).
		Render("pages/not_found", fiber.Map{"PageTitle": "Tidak ditemukan"}, views.Layout)
}
