package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/services"
)

type InspirationController struct {
	inspirations *services.InspirationService
	tips         *services.SalahTipsService
	verses       *services.VerseSuggestionService
	today        func() string
}

func NewInspirationController(inspirations *services.InspirationService, tips *services.SalahTipsService, verses *services.VerseSuggestionService, today func() string) *InspirationController {
	return &InspirationController{inspirations: inspirations, tips: tips, verses: verses, today: today}
}

func (ic *InspirationController) GetDailyInspiration(c *gin.Context) {
	date := c.DefaultQuery("date", ic.today())

	inspiration, err := ic.inspirations.Daily(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to load daily inspiration")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        date,
		"inspiration": inspiration,
	})
}

func (ic *InspirationController) GetSalahTips(c *gin.Context) {
	c.JSON(http.StatusOK, ic.tips.List())
}

func (ic *InspirationController) GetSalahTip(c *gin.Context) {
	tip, err := ic.tips.Get(c.Param("tip_id"))
	if err != nil {
		respondError(c, err, "Salah tip not found")
		return
	}

	c.JSON(http.StatusOK, tip)
}

func (ic *InspirationController) SuggestVerse(c *gin.Context) {
	var req models.VerseSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please describe what you are facing", "details": err.Error()})
		return
	}

	suggestion, err := ic.verses.Suggest(c.Request.Context(), req.Challenge)
	if errors.Is(err, services.ErrVerseSuggestionDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Verse suggestion service not available"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to suggest a verse")
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
