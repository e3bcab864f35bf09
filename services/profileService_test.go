package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/stores"
)

func strPtr(s string) *string { return &s }

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 47, G: 125, B: 109, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGetProfileMissingDocument(t *testing.T) {
	service := NewProfileService(newTestStore(), stores.NewMemoryImageStore("https://cdn.test"))

	profile, err := service.GetProfile(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, models.UserProfile{User_ID: "user-1"}, profile)
}

func TestUpdateProfile(t *testing.T) {
	tests := []struct {
		name    string
		update  models.UserProfileUpdate
		wantErr bool
	}{
		{name: "valid display name", update: models.UserProfileUpdate{Display_Name: strPtr("Aisha")}},
		{name: "clearing display name", update: models.UserProfileUpdate{Display_Name: strPtr("")}},
		{name: "display name too short", update: models.UserProfileUpdate{Display_Name: strPtr("A")}, wantErr: true},
		{name: "valid phone", update: models.UserProfileUpdate{Phone_Number: strPtr("+60 (12) 345-6789")}},
		{name: "phone with letters", update: models.UserProfileUpdate{Phone_Number: strPtr("call me")}, wantErr: true},
		{name: "photo url", update: models.UserProfileUpdate{Photo_URL: strPtr("https://cdn.test/a.png")}},
		{name: "photo not a url", update: models.UserProfileUpdate{Photo_URL: strPtr("a.png")}, wantErr: true},
		{name: "nothing to update", update: models.UserProfileUpdate{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			service := NewProfileService(store, stores.NewMemoryImageStore("https://cdn.test"))

			_, err := service.UpdateProfile(context.Background(), "user-1", tt.update)

			if tt.wantErr {
				assert.True(t, errors.Is(err, models.ErrValidation))
				assert.Zero(t, store.Writes)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, store.Writes)
			}
		})
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	store := newTestStore()
	service := NewProfileService(store, stores.NewMemoryImageStore("https://cdn.test"))
	ctx := context.Background()

	_, err := service.UpdateProfile(ctx, "user-1", models.UserProfileUpdate{Display_Name: strPtr("Aisha"), Email: strPtr("aisha@example.com")})
	require.NoError(t, err)

	profile, err := service.UpdateProfile(ctx, "user-1", models.UserProfileUpdate{Phone_Number: strPtr("0123456789")})
	require.NoError(t, err)

	assert.Equal(t, "Aisha", profile.Display_Name)
	assert.Equal(t, "aisha@example.com", profile.Email)
	assert.Equal(t, "0123456789", profile.Phone_Number)
}

func TestUploadProfileImage(t *testing.T) {
	store := newTestStore()
	images := stores.NewMemoryImageStore("https://cdn.test")
	service := NewProfileService(store, images)

	url, err := service.UploadProfileImage(context.Background(), "user-1", "avatar.png", pngBytes(t, 1024, 600))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/profileImages/user-1/avatar.png", url)

	stored, ok := images.Objects["profileImages/user-1/avatar.png"]
	require.True(t, ok)
	cfg, err := png.DecodeConfig(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 300, cfg.Height)

	profile, err := service.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, url, profile.Photo_URL)
}

func TestUploadProfileImageRejectsBadInput(t *testing.T) {
	service := NewProfileService(newTestStore(), stores.NewMemoryImageStore("https://cdn.test"))
	ctx := context.Background()

	_, err := service.UploadProfileImage(ctx, "user-1", "avatar.gif", pngBytes(t, 10, 10))
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = service.UploadProfileImage(ctx, "user-1", "avatar.png", []byte("not an image"))
	assert.True(t, errors.Is(err, models.ErrValidation))
}

type failingImageStore struct{ err error }

func (f failingImageStore) UploadImage(ctx context.Context, path, contentType string, data []byte) (string, error) {
	return "", f.err
}

func (f failingImageStore) DeleteImage(ctx context.Context, path string) error { return f.err }

func TestUploadProfileImageStorageFailure(t *testing.T) {
	store := newTestStore()
	service := NewProfileService(store, failingImageStore{err: models.NewStorageError("upload", errors.New("bucket gone"))})

	_, err := service.UploadProfileImage(context.Background(), "user-1", "avatar.png", pngBytes(t, 10, 10))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "image upload failed")
	assert.True(t, errors.Is(err, models.ErrStorageUnavailable))
	assert.Zero(t, store.Writes)
}

func TestDeleteProfileImage(t *testing.T) {
	store := newTestStore()
	images := stores.NewMemoryImageStore("https://cdn.test")
	service := NewProfileService(store, images)
	ctx := context.Background()

	_, err := service.UploadProfileImage(ctx, "user-1", "avatar.png", pngBytes(t, 10, 10))
	require.NoError(t, err)

	require.NoError(t, service.DeleteProfileImage(ctx, "user-1", "avatar.png"))
	assert.Empty(t, images.Objects)

	profile, err := service.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "", profile.Photo_URL)

	// Already gone is fine.
	assert.NoError(t, service.DeleteProfileImage(ctx, "user-1", "avatar.png"))
}
