package controllers

import (
	"time"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/stores"
)

// Test fixture data for use in tests

var fixedNow = time.Date(2024, 3, 10, 6, 15, 0, 0, time.UTC)

func fixedToday() string {
	return models.DateKey(fixedNow)
}

// MockUser creates a sample authenticated user for testing
func MockUser() models.AuthUser {
	return models.AuthUser{
		User_ID: "user-1",
		Email:   "test@example.com",
		Admin:   false,
	}
}

// MockAdminUser creates a sample admin user for testing
func MockAdminUser() models.AuthUser {
	return models.AuthUser{
		User_ID: "admin-1",
		Email:   "admin@example.com",
		Admin:   true,
	}
}

// MockMemoryStore returns an in-memory store stamped with fixedNow
func MockMemoryStore() *stores.MemoryStore {
	return stores.NewMemoryStore(func() time.Time { return fixedNow })
}

// MockLegacyPrayerDay is a day written by the old web client.
func MockLegacyPrayerDay() stores.RawDocument {
	return stores.RawDocument{
		"Fajr":  map[string]interface{}{"completed": true, "timestamp": fixedNow},
		"Dhuhr": map[string]interface{}{"completed": false, "timestamp": nil},
	}
}
