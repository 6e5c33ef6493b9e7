package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"hotel-pms/repository"
)

// Kind classifies a failure so callers can react without parsing messages.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInvalidState    Kind = "invalid_state"
	KindInvalidInput    Kind = "invalid_input"
	KindPaymentRequired Kind = "payment_required"
	KindUnauthorized    Kind = "unauthorized"
	KindInternal        Kind = "internal"
)

// Error is the only error type services return. Data carries the details a
// caller needs to retry, e.g. outstandingBalance for KindPaymentRequired.
type Error struct {
	Kind    Kind
	Message string
	Data    map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(entity string) error {
	return newError(KindNotFound, "%s not found", entity)
}

func invalidInput(format string, args ...interface{}) error {
	return newError(KindInvalidInput, format, args...)
}

func invalidState(format string, args ...interface{}) error {
	return newError(KindInvalidState, format, args...)
}

func conflict(format string, args ...interface{}) error {
	return newError(KindConflict, format, args...)
}

func paymentRequired(balance decimal.Decimal) error {
	return &Error{
		Kind:    KindPaymentRequired,
		Message: "outstanding balance must be settled before check-out",
		Data:    map[string]interface{}{"outstandingBalance": balance},
	}
}

// moneyScale is the number of decimal places every money column stores.
const moneyScale = 2

// checkMoney rejects amounts the database would round on write.
func checkMoney(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return invalidInput("%s must have at most %d decimal places", field, moneyScale)
	}
	return nil
}

// overpaid reports a payment larger than what is owed. The excess is not
// held as credit; it goes through a refund transaction instead.
func overpaid(field string, amount, balance decimal.Decimal) error {
	return &Error{
		Kind:    KindInvalidInput,
		Message: field + " exceeds the outstanding balance; record any excess as a refund",
		Data: map[string]interface{}{
			"outstandingBalance": balance,
			"excess":             amount.Sub(balance),
			"excessHandling":     "refund",
		},
	}
}

// fromRepo turns repository sentinels into service errors. entity names the
// record for NotFound messages.
func fromRepo(err error, entity string) error {
	var se *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &se):
		return se
	case errors.Is(err, repository.ErrNotFound):
		return notFound(entity)
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Kind: KindConflict, Message: entity + " already exists", Err: err}
	case errors.Is(err, repository.ErrLockConflict):
		return &Error{Kind: KindConflict, Message: "concurrent update, retry the request", Err: err}
	default:
		return &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}
}
