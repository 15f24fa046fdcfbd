package controller

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"surveikita_web/internals/features/surveys/service"
	helper "surveikita_web/internals/helpers"
)

type Forwarder interface {
	Forward(ctx context.Context, surveyID string, body []byte) (service.Reply, error)
}

type RelayController struct {
	Relay Forwarder
}

func NewRelayController(relay Forwarder) *RelayController {
	return &RelayController{Relay: relay}
}

// =======================
// 🔁 POST /api/surveys/:surveyId/responses
// Status, body & content-type backend diteruskan apa adanya.
// =======================
func (ctrl *RelayController) ForwardResponses(c *fiber.Ctx) error {
	ctx := service.WithRequestID(c.UserContext(), requestID(c))

	reply, err := ctrl.Relay.Forward(ctx, c.Params("surveyId"), c.Body())
	if errors.Is(err, service.ErrInvalidJSON) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal meneruskan respon ke backend")
	}

	c.Set(fiber.HeaderContentType, reply.ContentType)
	return c.Status(reply.StatusCode).Send(reply.Body)
}
