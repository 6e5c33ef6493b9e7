package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-pms/services"
	"hotel-pms/utils"
)

// AuthController covers first-run setup, login and staff accounts.
type AuthController struct {
	Accounts *services.AccountService
	Log      *zap.Logger
}

func NewAuthController(accounts *services.AccountService, log *zap.Logger) *AuthController {
	return &AuthController{Accounts: accounts, Log: log}
}

// GET /api/setup/check
func (ac *AuthController) SetupCheck(c *gin.Context) {
	required, err := ac.Accounts.SetupRequired(c.Request.Context())
	if err != nil {
		renderError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"setupRequired": required})
}

// POST /api/setup
func (ac *AuthController) Setup(c *gin.Context) {
	var in services.SetupInput
	if !bind(c, &in) {
		return
	}
	out, err := ac.Accounts.Setup(c.Request.Context(), in)
	if err != nil {
		renderError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, out)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	out, err := ac.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		renderError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// POST /api/users
func (ac *AuthController) CreateUser(c *gin.Context) {
	var in services.CreateUserInput
	if !bind(c, &in) {
		return
	}
	user, err := ac.Accounts.CreateUser(c.Request.Context(), scopeOf(c), in)
	if err != nil {
		renderError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}
