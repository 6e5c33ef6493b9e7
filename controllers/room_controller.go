package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type RoomController struct {
	Rooms *services.RoomService
	Log   *zap.Logger
}

func NewRoomController(rooms *services.RoomService, log *zap.Logger) *RoomController {
	return &RoomController{Rooms: rooms, Log: log}
}

// GET /api/rooms?status=
func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Rooms.ListRooms(c.Request.Context(), scopeOf(c), c.Query("status"))
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// POST /api/rooms
func (rc *RoomController) Create(c *gin.Context) {
	var in services.RoomInput
	if !bind(c, &in) {
		return
	}
	room, err := rc.Rooms.CreateRoom(c.Request.Context(), scopeOf(c), in)
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) Get(c *gin.Context) {
	room, err := rc.Rooms.GetRoom(c.Request.Context(), scopeOf(c), c.Param("id"))
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// PATCH /api/rooms/:id
func (rc *RoomController) Update(c *gin.Context) {
	var in services.RoomInput
	if !bind(c, &in) {
		return
	}
	room, err := rc.Rooms.UpdateRoom(c.Request.Context(), scopeOf(c), c.Param("id"), in)
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type roomStatusRequest struct {
	Status models.RoomStatus `json:"status" binding:"required"`
}

// PATCH /api/rooms/:id/status
func (rc *RoomController) ChangeStatus(c *gin.Context) {
	var req roomStatusRequest
	if !bind(c, &req) {
		return
	}
	room, err := rc.Rooms.ChangeRoomStatus(c.Request.Context(), scopeOf(c), c.Param("id"), req.Status)
	if err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) Delete(c *gin.Context) {
	if err := rc.Rooms.DeleteRoom(c.Request.Context(), scopeOf(c), c.Param("id")); err != nil {
		renderError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": c.Param("id"), "deleted": true})
}
