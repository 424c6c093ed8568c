package validate

import (
	"booking_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput
		return parseAndValidate(c, &input, "input")
	}
}

type InviteCheckInput struct {
	InviteCode string `json:"inviteCode" validate:"required,min=4,max=32"`
}

func CheckInvite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input InviteCheckInput
		return parseAndValidate(c, &input, "input")
	}
}

type VerifyPaymentInput struct {
	OrderID string `json:"orderId" validate:"required,uuid4"`
}

func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input VerifyPaymentInput
		return parseAndValidate(c, &input, "input")
	}
}

type CheckInInput struct {
	ReferenceNumber string `json:"referenceNumber" validate:"required,min=8,max=16"`
}

func CheckIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input CheckInInput
		return parseAndValidate(c, &input, "input")
	}
}

type AdminLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func AdminLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input AdminLoginInput
		return parseAndValidate(c, &input, "input")
	}
}
