// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"surveikita_web/internals/configs"
	"surveikita_web/internals/features/users/auth/controller"
	"surveikita_web/internals/features/users/auth/service"
	rateLimiter "surveikita_web/internals/middlewares"
)

func AuthRoutes(app *fiber.App) {
	authController := controller.NewAuthController(
		func() service.AdminAccount {
			return service.AdminAccount{Username: configs.AdminUsername, PasswordHash: configs.AdminPasswordHash}
		},
		func() string { return configs.JWTSecret },
	)

	// Base: /api/auth
	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
}
