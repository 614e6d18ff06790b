package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/response"
	"github.com/IkingariSolorzano/gymcredit-be/services"
	"github.com/IkingariSolorzano/gymcredit-be/validator"
)

type UserController struct {
	checkInService *services.CheckInService
	accountService *services.AccountService
}

func NewUserController(checkInService *services.CheckInService, accountService *services.AccountService) *UserController {
	return &UserController{
		checkInService: checkInService,
		accountService: accountService,
	}
}

type CheckInRequest struct {
	GymID uint `json:"gymId" binding:"required"`
}

func (uc *UserController) CheckIn(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err))
		return
	}

	result, err := uc.checkInService.CheckIn(c.Request.Context(), p.UserID, req.GymID)
	if err != nil {
		// Unknown gyms and users are a bad check-in request, not a missing page.
		if appErr, ok := apperrors.As(err); ok && appErr.Code == apperrors.ErrCodeNotFound {
			response.Error(c, http.StatusBadRequest, appErr.Code, appErr.Message)
			return
		}
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (uc *UserController) GetCredits(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	credits, err := uc.accountService.Credits(c.Request.Context(), p.UserID)
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"credits": credits})
}

func (uc *UserController) GetAccount(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	account, err := uc.accountService.Account(c.Request.Context(), p.UserID)
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, account)
}
