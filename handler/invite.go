package handler

import (
	"booking_manager/constants"
	"booking_manager/utils"
	"booking_manager/validate"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CheckInvite(c *fiber.Ctx) error {
	input := c.Locals("input").(*validate.InviteCheckInput)

	status, err := h.Manager.InviteStatus(c.Context(), input.InviteCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, status)
}
