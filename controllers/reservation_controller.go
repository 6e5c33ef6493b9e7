package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
	Stays        *services.StayService
	Log          *zap.Logger
}

func NewReservationController(res *services.ReservationService, stays *services.StayService, log *zap.Logger) *ReservationController {
	return &ReservationController{Reservations: res, Stays: stays, Log: log}
}

// GET /api/reservations?status=&roomId=
func (rc *ReservationController) List(c *gin.Context) {
	out, err := rc.Reservations.ListReservations(c.Request.Context(), scopeOf(c), c.Query("status"), c.Query("roomId"))
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

func (rc *ReservationController) Create(c *gin.Context) {
	var in services.CreateReservationInput
	if !bind(c, &in) {
		return
	}
	res, err := rc.Reservations.CreateReservation(c.Request.Context(), scopeOf(c), in)
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}

func (rc *ReservationController) Get(c *gin.Context) {
	res, err := rc.Reservations.GetReservation(c.Request.Context(), scopeOf(c), c.Param("id"))
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

func (rc *ReservationController) Confirm(c *gin.Context) {
	rc.transition(c, rc.Reservations.ConfirmReservation)
}

func (rc *ReservationController) Cancel(c *gin.Context) {
	rc.transition(c, rc.Reservations.CancelReservation)
}

func (rc *ReservationController) NoShow(c *gin.Context) {
	rc.transition(c, rc.Reservations.MarkNoShow)
}

type transitionFunc func(ctx context.Context, scope services.Scope, id string) (*models.Reservation, error)

func (rc *ReservationController) transition(c *gin.Context, fn transitionFunc) {
	res, err := fn(c.Request.Context(), scopeOf(c), c.Param("id"))
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// POST /api/reservations/:id/payments
func (rc *ReservationController) RecordPayment(c *gin.Context) {
	var in services.ReservationPaymentInput
	if !bind(c, &in) {
		return
	}
	txn, err := rc.Reservations.RecordReservationPayment(c.Request.Context(), scopeOf(c), c.Param("id"), in)
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, txn)
}

// POST /api/reservations/:id/checkin
func (rc *ReservationController) CheckIn(c *gin.Context) {
	var in services.CheckInInput
	if !bind(c, &in) {
		return
	}
	in.ReservationID = c.Param("id")
	guest, err := rc.Stays.CheckIn(c.Request.Context(), scopeOf(c), in)
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}
