package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-pms/services"
	"hotel-pms/utils"
)

// GuestController serves in-house guests: listing, the tab and check-out.
type GuestController struct {
	Guests *services.GuestService
	Stays  *services.StayService
	Ledger *services.LedgerService
	Log    *zap.Logger
}

func NewGuestController(guests *services.GuestService, stays *services.StayService, ledger *services.LedgerService, log *zap.Logger) *GuestController {
	return &GuestController{Guests: guests, Stays: stays, Ledger: ledger, Log: log}
}

// GET /api/guests?inHouse=true&roomId=
func (gc *GuestController) List(c *gin.Context) {
	guests, err := gc.Guests.ListGuests(c.Request.Context(), scopeOf(c), c.Query("inHouse") == "true", c.Query("roomId"))
	if err != nil {
		renderError(c, gc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (gc *GuestController) Get(c *gin.Context) {
	guest, err := gc.Guests.GetGuest(c.Request.Context(), scopeOf(c), c.Param("id"))
	if err != nil {
		renderError(c, gc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// POST /api/guests/:id/checkout. An empty body is a checkout without payment.
func (gc *GuestController) CheckOut(c *gin.Context) {
	var in services.CheckOutInput
	if !bindOptional(c, &in) {
		return
	}
	in.GuestID = c.Param("id")
	out, err := gc.Stays.CheckOut(c.Request.Context(), scopeOf(c), in)
	if err != nil {
		renderError(c, gc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

func (gc *GuestController) Tab(c *gin.Context) {
	tab, err := gc.Ledger.GuestTab(c.Request.Context(), scopeOf(c), c.Param("id"))
	if err != nil {
		renderError(c, gc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tab)
}

// POST /api/guests/:id/tab/settle
func (gc *GuestController) SettleTab(c *gin.Context) {
	var in services.SettleTabInput
	if !bind(c, &in) {
		return
	}
	txn, err := gc.Ledger.SettleGuestTab(c.Request.Context(), scopeOf(c), c.Param("id"), in)
	if err != nil {
		renderError(c, gc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, txn)
}
