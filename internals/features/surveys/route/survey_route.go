package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveikita_web/internals/configs"
	"surveikita_web/internals/features/surveys/controller"
	"surveikita_web/internals/features/surveys/service"
	"surveikita_web/internals/middlewares"
)

// NewRelay membangun relay; audit aktif hanya kalau DB tersedia.
func NewRelay(db *gorm.DB) *service.RelayService {
	var audit service.AuditRecorder
	if db != nil {
		audit = service.NewGormAuditStore(db)
	}
	return service.NewRelayService(configs.BackendBaseURL, audit)
}

// SurveyAPIRoutes: relay JSON untuk browser & surveyctl.
func SurveyAPIRoutes(api fiber.Router, relay *service.RelayService) {
	relayCtrl := controller.NewRelayController(relay)

	api.Post("/surveys/:surveyId/responses",
		middlewares.RateLimit(30, time.Minute),
		relayCtrl.ForwardResponses,
	) // 🔁 relay respon
}

// SurveyPageRoutes harus di-mount paling akhir karena pola /:surveyId/:surveySlug menangkap semua path dua segmen.
func SurveyPageRoutes(app *fiber.App, relay *service.RelayService) {
	pageCtrl := controller.NewSurveyPageController(service.NewSurveyClient(configs.APIBaseURL), relay)

	app.Get("/:surveyId/:surveySlug", pageCtrl.Show)
	app.Post("/:surveyId/:surveySlug", middlewares.RateLimit(30, time.Minute), pageCtrl.Submit)
}
