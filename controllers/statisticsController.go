package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/services"
)

type StatisticsController struct {
	stats *services.StatisticsService
}

func NewStatisticsController(stats *services.StatisticsService) *StatisticsController {
	return &StatisticsController{stats: stats}
}

func (sc *StatisticsController) GetStatistics(c *gin.Context) {
	period := c.DefaultQuery("period", string(models.PeriodDaily))
	filter := c.DefaultQuery("filter", models.FilterAll)

	buckets, err := sc.stats.Aggregate(c.Request.Context(), c.Param("user_id"), period, filter)
	if err != nil {
		respondError(c, err, "Failed to load prayer statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":  period,
		"filter":  filter,
		"buckets": buckets,
	})
}
