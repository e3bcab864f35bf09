package controllers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/services"
)

type PasswordResetController struct {
	resets *services.PasswordResetService
}

func NewPasswordResetController(resets *services.PasswordResetService) *PasswordResetController {
	return &PasswordResetController{resets: resets}
}

// ForgotPassword mails a Firebase password reset link. The reply is the same
// whether or not the email has an account.
func (pc *PasswordResetController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email address is required", "details": err.Error()})
		return
	}

	if err := pc.resets.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		log.Error("password reset failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send password reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If this email exists in our system, a password reset link has been sent.",
	})
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
