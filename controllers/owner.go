package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/response"
	"github.com/IkingariSolorzano/gymcredit-be/services"
	"github.com/IkingariSolorzano/gymcredit-be/validator"
)

// OwnerController serves the platform owner's dashboard.
type OwnerController struct {
	authService    *services.AuthService
	gymService     *services.GymService
	accountService *services.AccountService
	statsService   *services.StatsService
}

func NewOwnerController(
	authService *services.AuthService,
	gymService *services.GymService,
	accountService *services.AccountService,
	statsService *services.StatsService,
) *OwnerController {
	return &OwnerController{
		authService:    authService,
		gymService:     gymService,
		accountService: accountService,
		statsService:   statsService,
	}
}

type CreatePartnerRequest struct {
	Name     string          `json:"name" binding:"required"`
	Mobile   string          `json:"mobile" binding:"required,bdmobile"`
	Password string          `json:"password" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required,oneof=admin owner"`
}

type CreateGymRequest struct {
	Name       string  `json:"name" binding:"required"`
	Address    string  `json:"address" binding:"required"`
	District   string  `json:"district" binding:"required"`
	Image      string  `json:"image" binding:"required"`
	OpenTime   string  `json:"openTime"`
	CloseTime  string  `json:"closeTime"`
	Rating     float64 `json:"rating"`
	PartnerID  uint    `json:"partnerId" binding:"required"`
	CreditCost int     `json:"creditCost" binding:"required"`
}

type GrantCreditsRequest struct {
	UserID  uint `json:"userId" binding:"required"`
	Credits int  `json:"credits" binding:"required,gt=0"`
}

type SetRoleRequest struct {
	UserID uint            `json:"userId" binding:"required"`
	Role   models.UserRole `json:"role" binding:"required,oneof=user admin owner"`
}

func (oc *OwnerController) CreatePartner(c *gin.Context) {
	var req CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err))
		return
	}

	user, err := oc.authService.CreateUser(c.Request.Context(), req.Name, req.Mobile, req.Password, req.Role)
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    user,
	})
}

func (oc *OwnerController) CreateGym(c *gin.Context) {
	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err))
		return
	}

	gym, err := oc.gymService.Create(c.Request.Context(), &models.Gym{
		Name:       req.Name,
		Address:    req.Address,
		District:   req.District,
		Image:      req.Image,
		OpenTime:   req.OpenTime,
		CloseTime:  req.CloseTime,
		Rating:     req.Rating,
		PartnerID:  req.PartnerID,
		CreditCost: req.CreditCost,
	})
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Gym listed successfully",
		"gym":     gym,
	})
}

func (oc *OwnerController) GetPartners(c *gin.Context) {
	partners, err := oc.accountService.ListPartners(c.Request.Context())
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

func (oc *OwnerController) GetStats(c *gin.Context) {
	stats, err := oc.statsService.OwnerStats(c.Request.Context())
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (oc *OwnerController) GetAllCheckIns(c *gin.Context) {
	checkIns, err := oc.statsService.AllCheckIns(c.Request.Context())
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkIns": checkIns})
}

func (oc *OwnerController) GrantCredits(c *gin.Context) {
	var req GrantCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err))
		return
	}

	user, purchase, err := oc.accountService.GrantCredits(c.Request.Context(), req.UserID, req.Credits)
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"credits":     user.Credits,
		"transaction": purchase,
	})
}

func (oc *OwnerController) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err))
		return
	}

	user, err := oc.accountService.SetRole(c.Request.Context(), req.UserID, req.Role)
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
