package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/response"
	"github.com/IkingariSolorzano/gymcredit-be/services"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// SignupRequest fields are checked by the auth service so signup errors
// carry the same messages regardless of which field is wrong.
type SignupRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := ac.authService.Login(c.Request.Context(), req.Mobile, req.Password)
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := ac.authService.CreateUser(c.Request.Context(), req.Name, req.Mobile, req.Password, models.RoleUser)
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}
