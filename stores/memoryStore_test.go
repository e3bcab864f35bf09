package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mawaqit/models"
)

func TestMemoryStoreCreateDoesNotOverwrite(t *testing.T) {
	store := NewMemoryStore(func() time.Time { return fixedNow })
	ctx := context.Background()

	first := models.NewPrayerRecord("2024-01-01")
	first.Entries[models.Fajr] = models.PrayerEntry{Status: models.StatusPrayed}
	created, err := store.CreatePrayerRecord(ctx, "user-1", first)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreatePrayerRecord(ctx, "user-1", models.NewPrayerRecord("2024-01-01"))
	require.NoError(t, err)
	assert.False(t, created)

	raw, found, err := store.GetPrayerRecord(ctx, "user-1", "2024-01-01")
	require.NoError(t, err)
	require.True(t, found)
	record := models.DecodePrayerRecord("2024-01-01", raw)
	assert.Equal(t, models.StatusPrayed, record.Entries[models.Fajr].Status)
	require.NotNil(t, record.Entries[models.Fajr].Completion_Time)
	assert.True(t, fixedNow.Equal(*record.Entries[models.Fajr].Completion_Time))
}

func TestMemoryStoreUpdateAddsMissingEntry(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	store.Put(PrayerRecordPath("user-1", "2024-01-01"), RawDocument{
		"Fajr": map[string]interface{}{"completed": true},
	})

	require.NoError(t, store.UpdatePrayerEntry(ctx, "user-1", "2024-01-01", models.Isha, models.StatusNotPrayed))

	doc, _ := store.Get(PrayerRecordPath("user-1", "2024-01-01"))
	assert.Equal(t, map[string]interface{}{"completed": true}, doc["Fajr"])
	assert.Equal(t, map[string]interface{}{"status": "NOT_PRAYED", "completionTime": nil}, doc["Isha"])
}

func TestMemoryStoreFailureInjection(t *testing.T) {
	store := NewMemoryStore(nil)
	store.FailOn = "2024-01-02"

	_, err := store.GetPrayerRecords(context.Background(), "user-1", []string{"2024-01-01", "2024-01-02"})

	assert.True(t, errors.Is(err, models.ErrStorageUnavailable))
}

func TestMemoryStoreMergeUserProfile(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	name := "Yusuf"
	phone := "555-0100"

	require.NoError(t, store.MergeUserProfile(ctx, "user-1", models.UserProfileUpdate{Display_Name: &name}))
	require.NoError(t, store.MergeUserProfile(ctx, "user-1", models.UserProfileUpdate{Phone_Number: &phone}))

	profile, found, err := store.GetUserProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Yusuf", profile.Display_Name)
	assert.Equal(t, "555-0100", profile.Phone_Number)
	assert.Equal(t, "", profile.Email)
}

func TestDownloadURL(t *testing.T) {
	url := DownloadURL("mawaqit.appspot.com", ProfileImagePath("user-1", "me.jpg"), "tok-1")

	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/mawaqit.appspot.com/o/profileImages%2Fuser-1%2Fme.jpg?alt=media&token=tok-1",
		url)
}
