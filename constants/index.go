package constants

const (
	INVALID_REQUEST_BODY  = "Invalid request body"
	INVALID_CREDENTIALS   = "Invalid username or password"
	ERROR_INTERNAL_ERROR  = "Internal server error"
	INVALID_INVITE_CODE   = "Invite code is not valid"
	INVITE_CODE_USED      = "Invite code has already been used"
	INVALID_TICKET_TYPE   = "Unknown ticket type"
	INVALID_TICKET_COUNT  = "Ticket count is out of range"
	BOOKING_NOT_FOUND     = "Booking not found"
	BOOKING_NOT_COMPLETED = "Booking is not completed"
	INVALID_SIGNATURE     = "Webhook signature mismatch"
	WEBHOOK_ALREADY_SEEN  = "Webhook already processed"
	PAYMENT_GATEWAY_ERROR = "Payment gateway unavailable"
	RATE_LIMIT_EXCEEDED   = "Too many requests, please try again later"
)
