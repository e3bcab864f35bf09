package services

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/go-playground/validator/v10"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/stores"
)

const maxProfileImageSide = 512

type ProfileService struct {
	profiles stores.UserProfileStore
	images   stores.ImageStore
	validate *validator.Validate
}

func NewProfileService(profiles stores.UserProfileStore, images stores.ImageStore) *ProfileService {
	return &ProfileService{profiles: profiles, images: images, validate: models.NewValidator()}
}

// GetProfile returns an all-empty profile for users who never saved one.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	profile, _, err := s.profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update models.UserProfileUpdate) (models.UserProfile, error) {
	if err := s.validate.Struct(update); err != nil {
		return models.UserProfile{}, models.ValidationFailure(err)
	}
	if update.IsEmpty() {
		return models.UserProfile{}, models.NewValidationError("profile", "no fields to update")
	}

	if err := s.profiles.MergeUserProfile(ctx, userID, update); err != nil {
		return models.UserProfile{}, err
	}
	return s.GetProfile(ctx, userID)
}

// UploadProfileImage shrinks the image to fit a 512px square, stores it under
// the user's folder and points photoURL at it.
func (s *ProfileService) UploadProfileImage(ctx context.Context, userID, fileName string, data []byte) (string, error) {
	fileName = path.Base(fileName)
	if fileName == "." || fileName == "/" || fileName == "" {
		return "", models.NewValidationError("image", "missing file name")
	}

	format, err := imaging.FormatFromFilename(fileName)
	if err != nil || (format != imaging.JPEG && format != imaging.PNG) {
		return "", models.NewValidationError("image", "only JPEG and PNG images are supported")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", models.NewValidationError("image", "could not decode image")
	}
	bounds := img.Bounds()
	if bounds.Dx() > maxProfileImageSide || bounds.Dy() > maxProfileImageSide {
		img = imaging.Fit(img, maxProfileImageSide, maxProfileImageSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}

	contentType := "image/png"
	if format == imaging.JPEG {
		contentType = "image/jpeg"
	}

	url, err := s.images.UploadImage(ctx, stores.ProfileImagePath(userID, fileName), contentType, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}

	if err := s.profiles.MergeUserProfile(ctx, userID, models.UserProfileUpdate{Photo_URL: &url}); err != nil {
		return "", err
	}

	log.Info("profile image uploaded", "user", userID, "file", fileName, "bytes", buf.Len())
	return url, nil
}

func (s *ProfileService) DeleteProfileImage(ctx context.Context, userID, fileName string) error {
	fileName = path.Base(fileName)
	if fileName == "." || fileName == "/" || fileName == "" {
		return models.NewValidationError("image", "missing file name")
	}

	if err := s.images.DeleteImage(ctx, stores.ProfileImagePath(userID, fileName)); err != nil {
		return err
	}

	cleared := ""
	return s.profiles.MergeUserProfile(ctx, userID, models.UserProfileUpdate{Photo_URL: &cleared})
}
