// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"surveikita_web/internals/configs"
	contactRoute "surveikita_web/internals/features/home/contacts/route"
	pageRoute "surveikita_web/internals/features/home/pages/route"
	surveyRoute "surveikita_web/internals/features/surveys/route"
	authRoute "surveikita_web/internals/features/users/auth/route"
	authMiddleware "surveikita_web/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes memasang semua route. db boleh nil.
// Urutan penting: route dua segmen survey & catch-all 404 dipasang terakhir.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	log := zap.L()

	BaseRoutes(app)

	// ===================== AUTH =====================
	log.Info("Setting up AuthRoutes...")
	authRoute.AuthRoutes(app)

	// ===================== GROUPS =====================
	api := app.Group("/api")

	// auth dipasang per sub-group: prefix "/api/a" juga cocok dengan "/api/auth"
	admin := app.Group("/api/a")
	requireAuth := authMiddleware.AuthMiddleware(func() string { return configs.JWTSecret })

	// ===================== MOUNT ROUTES =====================
	relay := surveyRoute.NewRelay(db)

	log.Info("Mounting Survey API routes...")
	surveyRoute.SurveyAPIRoutes(api, relay)

	log.Info("Mounting Contact routes...")
	contactRoute.ContactAdminRoutes(admin, db, requireAuth)
	contactRoute.ContactRoutes(app, db)

	log.Info("Mounting Page routes...")
	pageRoute.PageRoutes(app)
	surveyRoute.SurveyPageRoutes(app, relay)
	pageRoute.NotFoundRoute(app)
}
