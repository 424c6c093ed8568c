package handler

import (
	"booking_manager/constants"
	"booking_manager/model"
	"booking_manager/utils"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var webhookValidate = validator.New()

// PaymentWebhook receives the gateway's asynchronous notification. Shape is
// validated before any business logic; the signature and idempotency checks
// live in the reconciler.
func (h *Handler) PaymentWebhook(c *fiber.Ctx) error {
	var payload model.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY, err)
	}
	if err := webhookValidate.Struct(&payload); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY, err)
	}
	if !payload.HasIdempotencySource() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY,
			errors.New("payload carries neither referenceId nor txTime"))
	}

	replay, err := h.Reconciler.HandleWebhook(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidSignature):
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_SIGNATURE, err)
		case errors.Is(err, model.ErrBookingNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if replay {
		return c.JSON(fiber.Map{"message": constants.WEBHOOK_ALREADY_SEEN})
	}
	return c.JSON(fiber.Map{"message": "Webhook processed"})
}
