package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mawaqit/services"
)

type NotificationController struct {
	inspirations *services.InspirationService
	push         *services.PushNotificationService
	today        func() string
}

func NewNotificationController(inspirations *services.InspirationService, push *services.PushNotificationService, today func() string) *NotificationController {
	return &NotificationController{inspirations: inspirations, push: push, today: today}
}

// SendDailyInspiration pushes today's inspiration to every subscribed device.
func (nc *NotificationController) SendDailyInspiration(c *gin.Context) {
	date := nc.today()

	inspiration, err := nc.inspirations.Daily(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to load daily inspiration")
		return
	}

	messageID, err := nc.push.BroadcastDailyInspiration(c.Request.Context(), inspiration)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send push notifications", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Push notifications sent successfully",
		"messageId":   messageID,
		"date":        date,
		"inspiration": inspiration,
	})
}
