package handler

import (
	"booking_manager/constants"
	"booking_manager/model"
	"booking_manager/utils"
	"booking_manager/validate"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// VerifyPayment backs the return-redirect flow: the client calls it when the
// browser comes back from the gateway, and navigates on the normalized status
// instead of trusting the redirect.
func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(*validate.VerifyPaymentInput)

	status, err := h.Reconciler.VerifyPayment(c.Context(), input.OrderID)
	if err != nil {
		if errors.Is(err, model.ErrBookingNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.PAYMENT_GATEWAY_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"orderId": input.OrderID,
		"status":  status,
	})
}
