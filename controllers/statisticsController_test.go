package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mawaqit/services"
	"github.com/Mawaqit/stores"
)

func TestGetStatistics(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectBuckets  int
		bucketKey      string
	}{
		{name: "defaults to daily", query: "", expectedStatus: http.StatusOK, expectBuckets: 7, bucketKey: "date"},
		{name: "weekly for one prayer", query: "?period=weekly&filter=Fajr", expectedStatus: http.StatusOK, expectBuckets: 4, bucketKey: "week"},
		{name: "monthly", query: "?period=monthly&filter=all", expectedStatus: http.StatusOK, expectBuckets: 3, bucketKey: "name"},
		{name: "unknown period", query: "?period=yearly", expectedStatus: http.StatusBadRequest},
		{name: "unknown filter", query: "?period=daily&filter=Witr", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := MockMemoryStore()
			store.Put(stores.PrayerRecordPath("user-1", "2024-03-10"), stores.RawDocument{
				"Fajr": map[string]interface{}{"status": "PRAYED"},
			})
			stats := services.NewStatisticsService(store, func() time.Time { return fixedNow }, time.UTC, services.StatisticsConfig{})
			controller := NewStatisticsController(stats)

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser())
			c.Request = httptest.NewRequest(http.MethodGet, "/users/user-1/stats"+tt.query, nil)
			c.Params = gin.Params{{Key: "user_id", Value: "user-1"}}

			controller.GetStatistics(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			response := decodeBody(t, w)
			buckets, ok := response["buckets"].([]interface{})
			require.True(t, ok)
			assert.Len(t, buckets, tt.expectBuckets)
			for _, b := range buckets {
				assert.Contains(t, b.(map[string]interface{}), tt.bucketKey)
			}
		})
	}
}

func TestGetStatisticsStorageFailure(t *testing.T) {
	store := MockMemoryStore()
	store.FailOn = "2024-03-05"
	stats := services.NewStatisticsService(store, func() time.Time { return fixedNow }, time.UTC, services.StatisticsConfig{})
	controller := NewStatisticsController(stats)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser())
	c.Request = httptest.NewRequest(http.MethodGet, "/users/user-1/stats?period=daily", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "user-1"}}

	controller.GetStatistics(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["retryable"])
}
