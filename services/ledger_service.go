package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
	"hotel-pms/utils"
)

// LedgerService is the read side of the ledger plus the explicit money
// movements that are not part of a stay transition.
type LedgerService struct {
	core
}

func NewLedgerService(store repository.Store, pub events.Publisher, log *zap.Logger) *LedgerService {
	return &LedgerService{core: newCore(store, pub, log)}
}

type RecordTransactionInput struct {
	Type          models.TransactionType `json:"type"`
	Method        models.PaymentMethod   `json:"method"`
	Amount        decimal.Decimal        `json:"amount"`
	ReservationID *string                `json:"reservationId"`
	GuestID       *string                `json:"guestId"`
	Description   string                 `json:"description"`
}

// RecordTransaction appends a free-standing entry, typically a refund. It does
// not touch reservation balances; use RecordReservationPayment for that.
func (s *LedgerService) RecordTransaction(ctx context.Context, scope Scope, in RecordTransactionInput) (*models.Transaction, error) {
	if in.Type == "" {
		in.Type = models.TransactionPayment
	}
	if _, err := models.ParseTransactionType(string(in.Type)); err != nil {
		return nil, invalidInput("%v", err)
	}
	if !in.Method.Valid() {
		return nil, invalidInput("method must be one of cash, pos, bank_transfer")
	}
	if !in.Amount.IsPositive() {
		return nil, invalidInput("amount must be greater than 0")
	}
	if err := checkMoney("amount", in.Amount); err != nil {
		return nil, err
	}
	in.ReservationID = optionalString(in.ReservationID)
	in.GuestID = optionalString(in.GuestID)
	if in.ReservationID == nil && in.GuestID == nil {
		return nil, invalidInput("reservationId or guestId is required")
	}
	ref, err := utils.TransactionReference()
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}

	txn := &models.Transaction{
		OrganizationID: scope.TenantID,
		Type:           in.Type,
		Method:         in.Method,
		Amount:         in.Amount,
		ReferenceID:    ref,
		ReservationID:  in.ReservationID,
		GuestID:        in.GuestID,
		Description:    strings.TrimSpace(in.Description),
	}
	err = s.run(ctx, "ledger.record", scope, func(tx repository.Tx) error {
		if in.ReservationID != nil {
			if _, err := tx.GetReservation(scope.TenantID, *in.ReservationID, false); err != nil {
				return fromRepo(err, "reservation")
			}
		}
		if in.GuestID != nil {
			if _, err := tx.GetGuest(scope.TenantID, *in.GuestID, false); err != nil {
				return fromRepo(err, "guest")
			}
		}
		txn.CreatedAt = s.now()
		if err := tx.AppendTransaction(txn); err != nil {
			return fromRepo(err, "transaction")
		}
		return s.audit(tx, scope, "ledger."+string(txn.Type), "transaction", txn.ID, map[string]interface{}{
			"amount": txn.Amount,
			"method": txn.Method,
		})
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, scope Scope, f repository.TransactionFilter) ([]models.Transaction, error) {
	var out []models.Transaction
	err := s.run(ctx, "ledger.list", scope, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListTransactions(scope.TenantID, f)
		return fromRepo(err, "transaction")
	})
	return out, err
}

type GuestTab struct {
	GuestID string                `json:"guestId"`
	Items   []models.GuestTabItem `json:"items"`
	Balance decimal.Decimal       `json:"balance"`
}

func (s *LedgerService) GuestTab(ctx context.Context, scope Scope, guestID string) (*GuestTab, error) {
	tab := &GuestTab{GuestID: guestID}
	err := s.run(ctx, "ledger.tab", scope, func(tx repository.Tx) error {
		if _, err := tx.GetGuest(scope.TenantID, guestID, false); err != nil {
			return fromRepo(err, "guest")
		}
		items, err := tx.ListTabItems(scope.TenantID, guestID, false, false)
		if err != nil {
			return fromRepo(err, "tab item")
		}
		tab.Items = items
		tab.Balance = models.SumUnpaid(items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tab, nil
}

type SettleTabInput struct {
	Method models.PaymentMethod `json:"method"`
	Amount decimal.Decimal      `json:"amount"`
}

// SettleGuestTab pays every open tab item at once while the guest stays
// in-house. Partial settlement is refused.
func (s *LedgerService) SettleGuestTab(ctx context.Context, scope Scope, guestID string, in SettleTabInput) (*models.Transaction, error) {
	if !in.Method.Valid() {
		return nil, invalidInput("method must be one of cash, pos, bank_transfer")
	}
	if in.Amount.IsNegative() {
		return nil, invalidInput("amount must not be negative")
	}
	if err := checkMoney("amount", in.Amount); err != nil {
		return nil, err
	}
	ref, err := utils.TransactionReference()
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}

	var txn *models.Transaction
	err = s.run(ctx, "ledger.settle", scope, func(tx repository.Tx) error {
		guest, err := tx.GetGuest(scope.TenantID, guestID, true)
		if err != nil {
			return fromRepo(err, "guest")
		}
		items, err := tx.ListTabItems(scope.TenantID, guest.ID, true, true)
		if err != nil {
			return fromRepo(err, "tab item")
		}
		balance := models.SumUnpaid(items)
		if balance.IsZero() {
			return invalidInput("guest tab has no outstanding balance")
		}
		if in.Amount.LessThan(balance) {
			return paymentRequired(balance)
		}

		now := s.now()
		txn = &models.Transaction{
			OrganizationID: scope.TenantID,
			Type:           models.TransactionPayment,
			Method:         in.Method,
			Amount:         in.Amount,
			ReferenceID:    ref,
			ReservationID:  guest.ReservationID,
			GuestID:        strPtr(guest.ID),
			Description:    "Tab settlement",
			CreatedAt:      now,
		}
		if err := tx.AppendTransaction(txn); err != nil {
			return fromRepo(err, "transaction")
		}
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		if err := tx.MarkTabItemsPaid(scope.TenantID, ids, now); err != nil {
			return fromRepo(err, "tab item")
		}
		return s.audit(tx, scope, "ledger.tab_settled", "guest", guest.ID, map[string]interface{}{
			"amount": in.Amount,
			"items":  len(ids),
		})
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *LedgerService) ListAudit(ctx context.Context, scope Scope, limit int) ([]models.AuditLog, error) {
	var out []models.AuditLog
	err := s.run(ctx, "audit.list", scope, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListAudit(scope.TenantID, limit)
		return fromRepo(err, "audit log")
	})
	return out, err
}
