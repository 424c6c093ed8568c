package handler

import (
	"booking_manager/config"
	"booking_manager/gateway"
	"booking_manager/helper"
	"context"
)

// CheckoutGateway is the slice of the gateway client the booking handler
// needs to open a checkout session.
type CheckoutGateway interface {
	CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.OrderSession, error)
}

// Handler carries the wired application services for all HTTP endpoints.
type Handler struct {
	Cfg        config.App
	Manager    *helper.BookingManager
	Reconciler *helper.Reconciler
	Gateway    CheckoutGateway
}

func New(cfg config.App, manager *helper.BookingManager, reconciler *helper.Reconciler, gw CheckoutGateway) *Handler {
	return &Handler{
		Cfg:        cfg,
		Manager:    manager,
		Reconciler: reconciler,
		Gateway:    gw,
	}
}
