package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveikita_web/internals/constants"
	"surveikita_web/internals/features/home/contacts/controller"
	"surveikita_web/internals/middlewares"
	authMiddleware "surveikita_web/internals/middlewares/auth"
)

// 🌐 Public: form kontak landing page
func ContactRoutes(app *fiber.App, db *gorm.DB) {
	contactCtrl := controller.NewContactController(db)
	app.Post("/kontak", middlewares.ContactRateLimiter(), contactCtrl.Submit)
}

// 🔐 Admin: daftar lead
func ContactAdminRoutes(admin fiber.Router, db *gorm.DB, requireAuth fiber.Handler) {
	contactCtrl := controller.NewContactController(db)

	leads := admin.Group("/contact-leads",
		requireAuth,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("contact leads"), constants.AdminOnly...),
	)
	leads.Get("/", contactCtrl.ListLeads) // 📄 Admin lihat semua lead
}
