package handler

import (
	"booking_manager/constants"
	"booking_manager/gateway"
	"booking_manager/model"
	"booking_manager/monitoring"
	"booking_manager/utils"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(*model.CreateBookingInput)

	booking, err := h.Manager.CreateBooking(c.Context(), *input)
	if err != nil {
		var used *model.AlreadyBookedError
		switch {
		case errors.As(err, &used):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": constants.INVITE_CODE_USED,
				"booking": used.Booking,
			})
		case errors.Is(err, model.ErrInviteInvalid):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INVITE_CODE, err)
		case errors.Is(err, model.ErrTicketTypeInvalid):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_TICKET_TYPE, err)
		case errors.Is(err, model.ErrTicketCountInvalid):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_TICKET_COUNT, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	monitoring.BookingsCreated.Inc()

	session, err := h.Gateway.CreateOrder(c.Context(), gateway.OrderRequest{
		OrderID:       booking.ID,
		OrderAmount:   booking.TotalAmount.StringFixed(2),
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		OrderNote:     fmt.Sprintf("%s — %s × %d", h.Cfg.EventName, booking.TicketType, booking.TicketCount),
	})
	if err != nil {
		// The pending booking stays; it expires and frees the code if the
		// customer never retries.
		log.Printf("gateway order for booking %s failed: %v", booking.ID, err)
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.PAYMENT_GATEWAY_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"booking":          booking,
		"paymentSessionId": session.PaymentSessionID,
		"paymentLink":      session.PaymentLink,
	})
}

func (h *Handler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.Manager.GetBooking(c.Context(), c.Params("orderId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if booking == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}
