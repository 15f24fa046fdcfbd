package auth

import (
	"slices"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	helper "surveikita_web/internals/helpers"
)

// OnlyRoles meloloskan request yang role token-nya ada di roles.
// Dipasang setelah AuthMiddleware; forbidden kosong memakai pesan umum.
func OnlyRoles(forbidden string, roles ...string) fiber.Handler {
	if forbidden == "" {
		forbidden = "Akun kamu tidak punya akses ke halaman admin ini"
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		if role == "" {
			// AuthMiddleware belum jalan / tidak menyimpan role
			return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi admin tidak ditemukan, silakan login ulang")
		}
		if !slices.Contains(roles, role) {
			zap.L().Info("akses admin ditolak",
				zap.String("role", role),
				zap.Any("user_name", c.Locals("user_name")),
				zap.String("path", c.Path()))
			return helper.JsonError(c, fiber.StatusForbidden, forbidden)
		}
		return c.Next()
	}
}
