package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/services"
)

type PrayerController struct {
	records *services.PrayerRecordService
	today   func() string
}

// NewPrayerController takes today as a date key source so ":date" may be
// given as "today".
func NewPrayerController(records *services.PrayerRecordService, today func() string) *PrayerController {
	return &PrayerController{records: records, today: today}
}

func (pc *PrayerController) dateParam(c *gin.Context) string {
	date := c.Param("date")
	if date == "today" {
		return pc.today()
	}
	return date
}

func (pc *PrayerController) GetPrayerRecord(c *gin.Context) {
	userID := c.Param("user_id")

	record, err := pc.records.Fetch(c.Request.Context(), userID, pc.dateParam(c))
	if err != nil {
		respondError(c, err, "Failed to fetch prayer record")
		return
	}

	c.JSON(http.StatusOK, record)
}

func (pc *PrayerController) UpdatePrayerStatus(c *gin.Context) {
	var update models.PrayerStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID := c.Param("user_id")
	date := pc.dateParam(c)
	prayerName := c.Param("prayer_name")

	if err := pc.records.SetStatus(c.Request.Context(), userID, date, prayerName, update.Status); err != nil {
		respondError(c, err, "Failed to update prayer status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prayer status updated successfully",
		"date":    date,
		"prayer":  prayerName,
		"status":  update.Status,
	})
}
