package handler

import (
	"booking_manager/constants"
	"booking_manager/helper"
	"booking_manager/model"
	"booking_manager/utils"
	"booking_manager/validate"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) AdminLogin(c *fiber.Ctx) error {
	input := c.Locals("input").(*validate.AdminLoginInput)

	if input.Username != h.Cfg.AdminUsername ||
		!helper.CheckPasswordHash(input.Password, h.Cfg.AdminPasswordHash) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS,
			errors.New("credentials rejected"))
	}

	token, err := helper.GenerateAccessToken(input.Username, h.Cfg.JWTSecret)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   true,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"accessToken": token})
}

func (h *Handler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.Manager.ListBookings(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, bookings)
}

// RefundBooking is the manual completed→refunded transition; the invite code
// stays consumed.
func (h *Handler) RefundBooking(c *fiber.Ctx) error {
	booking, err := h.Manager.Refund(c.Context(), c.Params("orderId"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBookingNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		case errors.Is(err, model.ErrBookingNotCompleted):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.BOOKING_NOT_COMPLETED, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

// CheckInBooking marks a completed booking checked-in by reference number.
// Re-scanning an already checked-in ticket answers 200 with a flag so the
// door staff sees it was used before.
func (h *Handler) CheckInBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(*validate.CheckInInput)

	booking, changed, err := h.Manager.CheckIn(c.Context(), input.ReferenceNumber)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBookingNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		case errors.Is(err, model.ErrBookingNotCompleted):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.BOOKING_NOT_COMPLETED, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"booking":          booking,
		"alreadyCheckedIn": !changed,
	})
}
