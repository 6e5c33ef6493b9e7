package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
)

type OrderService struct {
	core
}

func NewOrderService(store repository.Store, pub events.Publisher, log *zap.Logger) *OrderService {
	return &OrderService{core: newCore(store, pub, log)}
}

type PlaceOrderInput struct {
	ServiceID     string                    `json:"serviceId"`
	RoomID        *string                   `json:"roomId"`
	GuestID       *string                   `json:"guestId"`
	PaymentMethod models.OrderPaymentMethod `json:"paymentMethod"`
	Notes         string                    `json:"notes"`
}

// PlaceOrder prices the order from the service's basePrice. A room_tab order
// and its single tab item are written in the same unit of work.
func (s *OrderService) PlaceOrder(ctx context.Context, scope Scope, in PlaceOrderInput) (*models.Order, error) {
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	in.RoomID = optionalString(in.RoomID)
	in.GuestID = optionalString(in.GuestID)
	if in.ServiceID == "" {
		return nil, invalidInput("serviceId is required")
	}
	if _, err := models.ParseOrderPaymentMethod(string(in.PaymentMethod)); err != nil {
		return nil, invalidInput("paymentMethod must be immediate or room_tab")
	}
	tab := in.PaymentMethod == models.OrderPayRoomTab
	if tab && in.GuestID == nil {
		return nil, invalidInput("guestId is required for room_tab orders")
	}

	var order *models.Order
	err := s.run(ctx, "order.place", scope, func(tx repository.Tx) error {
		svc, err := tx.GetService(scope.TenantID, in.ServiceID)
		if err != nil {
			return fromRepo(err, "service")
		}
		if !svc.IsActive {
			return invalidState("service %s is not active", svc.Name)
		}

		var guest *models.Guest
		if in.GuestID != nil {
			guest, err = tx.GetGuest(scope.TenantID, *in.GuestID, tab)
			if err != nil {
				return fromRepo(err, "guest")
			}
			if tab && !guest.InHouse() {
				return invalidState("guest is not checked in")
			}
			switch {
			case in.RoomID == nil:
				in.RoomID = strPtr(guest.RoomID)
			case tab && *in.RoomID != guest.RoomID:
				return invalidInput("room_tab orders are charged to the guest's room")
			}
		}
		if in.RoomID != nil {
			if _, err := tx.GetRoom(scope.TenantID, *in.RoomID, false); err != nil {
				return fromRepo(err, "room")
			}
		}

		order = &models.Order{
			OrganizationID: scope.TenantID,
			ServiceID:      svc.ID,
			RoomID:         in.RoomID,
			GuestID:        in.GuestID,
			Status:         models.OrderPending,
			Amount:         svc.BasePrice,
			PaymentMethod:  in.PaymentMethod,
			OrderDate:      s.now(),
			Notes:          strings.TrimSpace(in.Notes),
		}
		if err := tx.CreateOrder(order); err != nil {
			return fromRepo(err, "order")
		}
		if tab {
			if err := tx.CreateTabItem(&models.GuestTabItem{
				OrganizationID: scope.TenantID,
				GuestID:        guest.ID,
				ServiceID:      svc.ID,
				OrderID:        strPtr(order.ID),
				Amount:         order.Amount,
				CreatedAt:      order.OrderDate,
			}); err != nil {
				return fromRepo(err, "tab item")
			}
		}
		return s.audit(tx, scope, "order.placed", "order", order.ID, map[string]interface{}{
			"serviceId":     svc.ID,
			"amount":        order.Amount,
			"paymentMethod": order.PaymentMethod,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.OrderPlaced, scope.TenantID, map[string]interface{}{
		"orderId":   order.ID,
		"serviceId": order.ServiceID,
		"roomId":    order.RoomID,
	}))
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, scope Scope, status, guestID string) ([]models.Order, error) {
	f := repository.OrderFilter{GuestID: guestID}
	if status != "" {
		st, err := models.ParseOrderStatus(status)
		if err != nil {
			return nil, invalidInput("%v", err)
		}
		f.Status = st
	}
	var out []models.Order
	err := s.run(ctx, "order.list", scope, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListOrders(scope.TenantID, f)
		return fromRepo(err, "order")
	})
	return out, err
}

// UpdateOrderStatus moves an order along pending -> confirmed -> delivered.
// A room_tab order cannot be canceled; its charge is already on the guest tab.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, scope Scope, id string, to models.OrderStatus) (*models.Order, error) {
	if _, err := models.ParseOrderStatus(string(to)); err != nil {
		return nil, invalidInput("%v", err)
	}
	var order *models.Order
	err := s.run(ctx, "order.status", scope, func(tx repository.Tx) error {
		var err error
		order, err = tx.GetOrder(scope.TenantID, id, true)
		if err != nil {
			return fromRepo(err, "order")
		}
		if to == models.OrderCanceled && order.PaymentMethod == models.OrderPayRoomTab {
			return invalidState("room_tab orders cannot be canceled; refund through the ledger")
		}
		from := order.Status
		if err := order.TransitionTo(to); err != nil {
			return invalidState("%v", err)
		}
		if err := tx.SaveOrder(order); err != nil {
			return fromRepo(err, "order")
		}
		return s.audit(tx, scope, "order.status_changed", "order", order.ID, map[string]interface{}{
			"from": from,
			"to":   to,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
