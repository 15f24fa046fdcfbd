package route

import (
	"github.com/gofiber/fiber/v2"

	"surveikita_web/internals/features/home/pages/controller"
)

func PageRoutes(app *fiber.App) {
	pageCtrl := controller.NewPageController()

	app.Get("/", pageCtrl.Landing)
	app.Get("/terimakasih", pageCtrl.ThankYou)
}

// NotFoundRoute harus dipasang paling akhir.
func NotFoundRoute(app *fiber.App) {
	app.Use(controller.NewPageController().NotFound)
}
