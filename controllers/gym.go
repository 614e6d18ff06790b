package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/response"
	"github.com/IkingariSolorzano/gymcredit-be/services"
)

type GymController struct {
	gymService *services.GymService
}

func NewGymController(gymService *services.GymService) *GymController {
	return &GymController{gymService: gymService}
}

func (gc *GymController) ListGyms(c *gin.Context) {
	gyms, err := gc.gymService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gyms": gyms})
}

func (gc *GymController) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": services.Plans()})
}
