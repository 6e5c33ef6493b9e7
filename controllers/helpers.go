package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"
)

var kindStatus = map[services.Kind]int{
	services.KindNotFound:        http.StatusNotFound,
	services.KindConflict:        http.StatusConflict,
	services.KindInvalidState:    http.StatusUnprocessableEntity,
	services.KindInvalidInput:    http.StatusBadRequest,
	services.KindPaymentRequired: http.StatusPaymentRequired,
	services.KindUnauthorized:    http.StatusUnauthorized,
}

// renderError writes err in the failure envelope. Internal errors are logged
// and answered with a generic message.
func renderError(c *gin.Context, log *zap.Logger, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		if code, ok := kindStatus[se.Kind]; ok {
			utils.JSONError(c, code, string(se.Kind), se.Message, se.Data)
			return
		}
	}
	_ = c.Error(err)
	log.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.String("tenant_id", c.GetString(middleware.KeyTenantID)),
		zap.Error(err),
	)
	utils.JSONError(c, http.StatusInternalServerError, string(services.KindInternal), "internal server error", nil)
}

// bind decodes the JSON body into dst and answers 400 itself on failure.
func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, string(services.KindInvalidInput), "invalid request body",
			map[string]interface{}{"details": err.Error()})
		return false
	}
	return true
}

// bindOptional is bind for endpoints whose body may be left out. An empty body,
// chunked or not, leaves dst untouched.
func bindOptional(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	utils.JSONError(c, http.StatusBadRequest, string(services.KindInvalidInput), "invalid request body",
		map[string]interface{}{"details": err.Error()})
	return false
}

func scopeOf(c *gin.Context) services.Scope {
	return services.Scope{
		TenantID: c.GetString(middleware.KeyTenantID),
		UserID:   c.GetString(middleware.KeyUserID),
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil {
		return n
	}
	return def
}
