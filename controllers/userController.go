package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/services"
)

const maxProfileImageBytes = 5 << 20

type UserController struct {
	profiles *services.ProfileService
	push     *services.PushNotificationService
}

func NewUserController(profiles *services.ProfileService, push *services.PushNotificationService) *UserController {
	return &UserController{profiles: profiles, push: push}
}

func (uc *UserController) GetUserProfile(c *gin.Context) {
	profile, err := uc.profiles.GetProfile(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  profile,
		"admin": c.GetBool("admin"),
	})
}

func (uc *UserController) UpdateUserProfile(c *gin.Context) {
	var update models.UserProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile update", "details": err.Error()})
		return
	}

	profile, err := uc.profiles.UpdateProfile(c.Request.Context(), c.Param("user_id"), update)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    profile,
	})
}

func (uc *UserController) UploadProfileImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required", "details": err.Error()})
		return
	}
	if fileHeader.Size > maxProfileImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image", "details": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProfileImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image", "details": err.Error()})
		return
	}

	url, err := uc.profiles.UploadProfileImage(c.Request.Context(), c.Param("user_id"), fileHeader.Filename, data)
	if err != nil {
		respondError(c, err, "Image upload failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile image uploaded successfully",
		"photoURL": url,
	})
}

func (uc *UserController) DeleteProfileImage(c *gin.Context) {
	err := uc.profiles.DeleteProfileImage(c.Request.Context(), c.Param("user_id"), c.Param("file_name"))
	if err != nil {
		respondError(c, err, "Failed to delete profile image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile image deleted successfully"})
}

func (uc *UserController) StorePushToken(c *gin.Context) {
	var req models.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid push token", "details": err.Error()})
		return
	}

	if err := uc.push.SubscribeToDailyInspiration(c.Request.Context(), req); err != nil {
		respondError(c, err, "Failed to register push token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token registered successfully"})
}
