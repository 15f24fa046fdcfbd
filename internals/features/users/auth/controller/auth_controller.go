package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"surveikita_web/internals/constants"
	"surveikita_web/internals/features/users/auth/dto"
	"surveikita_web/internals/features/users/auth/service"
	helper "surveikita_web/internals/helpers"
)

var validateLogin = validator.New()

type AuthController struct {
	Account func() service.AdminAccount
	Secret  func() string
	Now     func() time.Time
}

func NewAuthController(account func() service.AdminAccount, secret func() string) *AuthController {
	return &AuthController{Account: account, Secret: secret, Now: time.Now}
}

// =======================
// 🔐 POST /api/auth/login
// =======================
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input dto.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Username = strings.TrimSpace(input.Username)
	if err := validateLogin.Struct(&input); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	err := ac.Account().CheckCredentials(input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrLoginDisabled):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
	case err != nil:
		zap.L().Info("login admin gagal", zap.String("username", input.Username), zap.String("ip", c.IP()))
		return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau Password salah")
	}

	token, exp, err := service.IssueAdminToken(ac.Secret(), input.Username, ac.Now())
	if err != nil {
		zap.L().Error("gagal membuat token", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		UserName:    input.Username,
		Role:        constants.RoleAdmin,
	})
}
