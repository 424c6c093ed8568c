package model

import "github.com/shopspring/decimal"

type TicketType struct {
	Name          string          `json:"name"`
	Label         string          `json:"label"`
	Price         decimal.Decimal `json:"price"`
	MaxPerBooking int             `json:"maxPerBooking"`
}

// TicketTypes is the sale catalog for the event. Prices are per ticket.
var TicketTypes = map[string]TicketType{
	"standard": {Name: "standard", Label: "Standard Entry", Price: decimal.NewFromInt(899), MaxPerBooking: 6},
	"premium":  {Name: "premium", Label: "Premium Entry", Price: decimal.NewFromInt(1299), MaxPerBooking: 4},
	"ultimate": {Name: "ultimate", Label: "Ultimate Experience", Price: decimal.NewFromInt(1699), MaxPerBooking: 2},
}

func TicketTypeByName(name string) (TicketType, bool) {
	t, ok := TicketTypes[name]
	return t, ok
}
