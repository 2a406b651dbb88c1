package services

import (
	"context"

	"github.com/shashiranjanraj/foodhub/pkg/audit"
	"github.com/shashiranjanraj/foodhub/pkg/event"
)

// Order lifecycle events.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderPaid          = "order.paid"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvents lists every lifecycle event, for audit.Subscribe.
var OrderEvents = []string{EventOrderPlaced, EventOrderPaid, EventOrderStatusChanged, EventOrderDeleted}

// OrderEvent is the payload of every order lifecycle event.
type OrderEvent struct {
	Name    string
	OrderID uint
	Actor   string
	Detail  map[string]string
}

func (e OrderEvent) AuditEntry() audit.Entry {
	return audit.Entry{
		Event:   e.Name,
		OrderID: e.OrderID,
		Actor:   e.Actor,
		Detail:  e.Detail,
	}
}

func fire(ctx context.Context, bus *event.Bus, e OrderEvent) {
	if bus == nil {
		return
	}
	bus.Fire(ctx, e.Name, e)
}
