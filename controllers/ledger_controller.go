package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-pms/repository"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type LedgerController struct {
	Ledger *services.LedgerService
	Log    *zap.Logger
}

func NewLedgerController(ledger *services.LedgerService, log *zap.Logger) *LedgerController {
	return &LedgerController{Ledger: ledger, Log: log}
}

// GET /api/transactions?guestId=&reservationId=
func (lc *LedgerController) List(c *gin.Context) {
	txns, err := lc.Ledger.ListTransactions(c.Request.Context(), scopeOf(c), repository.TransactionFilter{
		GuestID:       c.Query("guestId"),
		ReservationID: c.Query("reservationId"),
	})
	if err != nil {
		renderError(c, lc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, txns)
}

func (lc *LedgerController) Record(c *gin.Context) {
	var in services.RecordTransactionInput
	if !bind(c, &in) {
		return
	}
	txn, err := lc.Ledger.RecordTransaction(c.Request.Context(), scopeOf(c), in)
	if err != nil {
		renderError(c, lc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, txn)
}

// GET /api/audit-logs?limit=
func (lc *LedgerController) Audit(c *gin.Context) {
	logs, err := lc.Ledger.ListAudit(c.Request.Context(), scopeOf(c), queryInt(c, "limit", 100))
	if err != nil {
		renderError(c, lc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}
