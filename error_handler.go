package main

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	helper "surveikita_web/internals/helpers"
	"surveikita_web/internals/views"
)

// errorHandler: JSON envelope untuk /api, halaman HTML untuk sisanya.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= 500 {
		zap.L().Error("request error",
			zap.String("path", c.Path()),
			zap.Any("reqid", c.Locals("reqid")),
			zap.Error(err))
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return helper.FromFiberError(c, err)
	}

	if code == fiber.StatusNotFound {
		return c.Status(code).Render("pages/not_found", fiber.Map{"PageTitle": "Tidak ditemukan"}, views.Layout)
	}
	msg := "Terjadi kesalahan pada server. Silakan coba lagi nanti."
	if code < 500 && fe != nil {
		msg = fe.Message
	}
	if rerr := c.Status(code).Render("pages/error", fiber.Map{"PageTitle": "Error", "Message": msg}, views.Layout); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
