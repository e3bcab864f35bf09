// Package stores holds the document, file and relational backends the
// services read and write through. Every implementation reports backend
// failures as models.StorageError.
package stores

import (
	"context"

	"github.com/Mawaqit/models"
)

// RawDocument is a stored document before normalization.
type RawDocument = map[string]interface{}

type PrayerRecordStore interface {
	GetPrayerRecord(ctx context.Context, userID, dateKey string) (RawDocument, bool, error)
	// GetPrayerRecords batches point reads; days without a document are
	// absent from the result.
	GetPrayerRecords(ctx context.Context, userID string, dateKeys []string) (map[string]RawDocument, error)
	// CreatePrayerRecord writes a full record unless one already exists, in
	// which case it reports false and leaves the stored document alone.
	// PRAYED entries without a completion time are stamped by the backend.
	CreatePrayerRecord(ctx context.Context, userID string, record models.PrayerRecord) (bool, error)
	// UpdatePrayerEntry touches only name.status and name.completionTime.
	UpdatePrayerEntry(ctx context.Context, userID, dateKey string, name models.PrayerName, status models.PrayerStatus) error
}

type UserProfileStore interface {
	GetUserProfile(ctx context.Context, userID string) (models.UserProfile, bool, error)
	MergeUserProfile(ctx context.Context, userID string, update models.UserProfileUpdate) error
}

type InspirationStore interface {
	ListInspirations(ctx context.Context) ([]models.DailyInspiration, error)
	SeedInspirations(ctx context.Context, inspirations []models.DailyInspiration) error
}

type ImageStore interface {
	UploadImage(ctx context.Context, path, contentType string, data []byte) (string, error)
	// DeleteImage treats a missing object as already deleted.
	DeleteImage(ctx context.Context, path string) error
}

// DocumentStore is what a single backend provides for the services.
type DocumentStore interface {
	PrayerRecordStore
	UserProfileStore
	InspirationStore
}

func PrayerRecordPath(userID, dateKey string) string {
	return "users/" + userID + "/prayers/" + dateKey
}

func UserProfilePath(userID string) string {
	return "users/" + userID
}

func ProfileImagePath(userID, fileName string) string {
	return "profileImages/" + userID + "/" + fileName
}
