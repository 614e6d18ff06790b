package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/response"
	"github.com/IkingariSolorzano/gymcredit-be/services"
)

type PartnerController struct {
	statsService *services.StatsService
}

func NewPartnerController(statsService *services.StatsService) *PartnerController {
	return &PartnerController{statsService: statsService}
}

func (pc *PartnerController) GetStats(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	stats, err := pc.statsService.PartnerStats(c.Request.Context(), p.UserID)
	if err != nil {
		response.FromError(c, middleware.LoggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
