package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type CatalogController struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
	Log     *zap.Logger
}

func NewCatalogController(catalog *services.CatalogService, orders *services.OrderService, log *zap.Logger) *CatalogController {
	return &CatalogController{Catalog: catalog, Orders: orders, Log: log}
}

// GET /api/services?active=true
func (cc *CatalogController) ListServices(c *gin.Context) {
	out, err := cc.Catalog.ListServices(c.Request.Context(), scopeOf(c), c.Query("active") == "true")
	if err != nil {
		renderError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

func (cc *CatalogController) CreateService(c *gin.Context) {
	var in services.CreateServiceInput
	if !bind(c, &in) {
		return
	}
	svc, err := cc.Catalog.CreateService(c.Request.Context(), scopeOf(c), in)
	if err != nil {
		renderError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, svc)
}

type activeRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// PATCH /api/services/:id/active
func (cc *CatalogController) SetActive(c *gin.Context) {
	var req activeRequest
	if !bind(c, &req) {
		return
	}
	svc, err := cc.Catalog.SetServiceActive(c.Request.Context(), scopeOf(c), c.Param("id"), *req.IsActive)
	if err != nil {
		renderError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

// GET /api/orders?status=&guestId=
func (cc *CatalogController) ListOrders(c *gin.Context) {
	out, err := cc.Orders.ListOrders(c.Request.Context(), scopeOf(c), c.Query("status"), c.Query("guestId"))
	if err != nil {
		renderError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

func (cc *CatalogController) PlaceOrder(c *gin.Context) {
	var in services.PlaceOrderInput
	if !bind(c, &in) {
		return
	}
	order, err := cc.Orders.PlaceOrder(c.Request.Context(), scopeOf(c), in)
	if err != nil {
		renderError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, order)
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/orders/:id/status
func (cc *CatalogController) UpdateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if !bind(c, &req) {
		return
	}
	order, err := cc.Orders.UpdateOrderStatus(c.Request.Context(), scopeOf(c), c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		renderError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}
