package models

import (
	"fmt"
	"strings"
)

// parseEnum normalizes raw and checks it against the closed set of allowed values.
func parseEnum[T ~string](kind, raw string, allowed ...T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(raw)))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q", kind, raw)
}

// ---------------- RoomType ----------------

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeSuite  RoomType = "suite"
	RoomTypeDeluxe RoomType = "deluxe"
)

var roomTypes = []RoomType{RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe}

func ParseRoomType(s string) (RoomType, error) { return parseEnum("room type", s, roomTypes...) }

func (t *RoomType) UnmarshalText(b []byte) error {
	v, err := ParseRoomType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ---------------- PaymentMethod ----------------

// PaymentMethod is how money moved for a ledger Transaction.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentPOS          PaymentMethod = "pos"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

var paymentMethods = []PaymentMethod{PaymentCash, PaymentPOS, PaymentBankTransfer}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	return parseEnum("payment method", s, paymentMethods...)
}

func (m PaymentMethod) Valid() bool {
	_, err := ParsePaymentMethod(string(m))
	return err == nil
}

func (m *PaymentMethod) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*m = ""
		return nil
	}
	v, err := ParsePaymentMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ---------------- TransactionType ----------------

type TransactionType string

const (
	TransactionPayment TransactionType = "payment"
	TransactionRefund  TransactionType = "refund"
)

func ParseTransactionType(s string) (TransactionType, error) {
	return parseEnum("transaction type", s, TransactionPayment, TransactionRefund)
}

func (t *TransactionType) UnmarshalText(b []byte) error {
	v, err := ParseTransactionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ---------------- ReservationSource ----------------

type ReservationSource string

const (
	SourceWalkIn       ReservationSource = "walk_in"
	SourcePhone        ReservationSource = "phone"
	SourceWhatsApp     ReservationSource = "whatsapp"
	SourceWebsite      ReservationSource = "website"
	SourceEmailAIAgent ReservationSource = "email_ai_agent"
)

func ParseReservationSource(s string) (ReservationSource, error) {
	return parseEnum("reservation source", s,
		SourceWalkIn, SourcePhone, SourceWhatsApp, SourceWebsite, SourceEmailAIAgent)
}

func (s *ReservationSource) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = ""
		return nil
	}
	v, err := ParseReservationSource(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ---------------- ServiceType ----------------

type ServiceType string

const (
	ServiceMeal      ServiceType = "meal"
	ServiceLaundry   ServiceType = "laundry"
	ServiceChauffeur ServiceType = "chauffeur"
	ServiceCustom    ServiceType = "custom"
)

func ParseServiceType(s string) (ServiceType, error) {
	return parseEnum("service type", s, ServiceMeal, ServiceLaundry, ServiceChauffeur, ServiceCustom)
}

func (t *ServiceType) UnmarshalText(b []byte) error {
	v, err := ParseServiceType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ---------------- OrderPaymentMethod ----------------

// OrderPaymentMethod decides whether an order is paid on the spot or charged to the guest tab.
type OrderPaymentMethod string

const (
	OrderPayImmediate OrderPaymentMethod = "immediate"
	OrderPayRoomTab   OrderPaymentMethod = "room_tab"
)

func ParseOrderPaymentMethod(s string) (OrderPaymentMethod, error) {
	return parseEnum("order payment method", s, OrderPayImmediate, OrderPayRoomTab)
}

func (m *OrderPaymentMethod) UnmarshalText(b []byte) error {
	v, err := ParseOrderPaymentMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ---------------- UserRole ----------------

type UserRole string

const (
	RoleOwner      UserRole = "owner"
	RoleAdmin      UserRole = "admin"
	RoleFrontdesk  UserRole = "frontdesk"
	RoleRestaurant UserRole = "restaurant"
)

func ParseUserRole(s string) (UserRole, error) {
	return parseEnum("role", s, RoleOwner, RoleAdmin, RoleFrontdesk, RoleRestaurant)
}

func (r *UserRole) UnmarshalText(b []byte) error {
	v, err := ParseUserRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
