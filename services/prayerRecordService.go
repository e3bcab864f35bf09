package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/stores"
)

// PrayerRecordService reconciles a user's stored day with the five-entry
// record the clients expect.
type PrayerRecordService struct {
	store  stores.PrayerRecordStore
	strict bool
}

func NewPrayerRecordService(store stores.PrayerRecordStore, strictTransitions bool) *PrayerRecordService {
	return &PrayerRecordService{store: store, strict: strictTransitions}
}

// CheckTransition reports whether an entry may move from one status to
// another. Every move is allowed unless strict is set, in which case a marked
// entry can no longer return to NOT_MARKED.
func CheckTransition(from, to models.PrayerStatus, strict bool) error {
	if strict && from != models.StatusNotMarked && to == models.StatusNotMarked {
		return fmt.Errorf("%w: %s to %s", models.ErrIllegalTransition, from, to)
	}
	return nil
}

func (s *PrayerRecordService) Fetch(ctx context.Context, userID, dateKey string) (models.PrayerRecord, error) {
	if _, err := models.ParseDateKey(dateKey); err != nil {
		return models.PrayerRecord{}, err
	}

	raw, found, err := s.store.GetPrayerRecord(ctx, userID, dateKey)
	if err != nil {
		return models.PrayerRecord{}, err
	}
	if found {
		return models.DecodePrayerRecord(dateKey, raw), nil
	}

	record := models.NewPrayerRecord(dateKey)
	created, err := s.store.CreatePrayerRecord(ctx, userID, record)
	if err != nil {
		return models.PrayerRecord{}, err
	}
	if created {
		log.Debug("initialized prayer record", "user", userID, "date", dateKey)
		return record, nil
	}

	// Another writer created the day between our read and create.
	raw, found, err = s.store.GetPrayerRecord(ctx, userID, dateKey)
	if err != nil {
		return models.PrayerRecord{}, err
	}
	if !found {
		return record, nil
	}
	return models.DecodePrayerRecord(dateKey, raw), nil
}

func (s *PrayerRecordService) SetStatus(ctx context.Context, userID, dateKey, prayerName, prayerStatus string) error {
	if _, err := models.ParseDateKey(dateKey); err != nil {
		return err
	}
	name, err := models.ParsePrayerName(prayerName)
	if err != nil {
		return err
	}
	status, err := models.ParsePrayerStatus(prayerStatus)
	if err != nil {
		return err
	}

	raw, found, err := s.store.GetPrayerRecord(ctx, userID, dateKey)
	if err != nil {
		return err
	}

	if !found {
		record := models.NewPrayerRecord(dateKey)
		record.Entries[name] = models.PrayerEntry{Status: status}
		created, err := s.store.CreatePrayerRecord(ctx, userID, record)
		if err != nil {
			return err
		}
		if created {
			return nil
		}
		log.Debug("prayer record created concurrently, updating entry", "user", userID, "date", dateKey, "prayer", name)

		raw, found, err = s.store.GetPrayerRecord(ctx, userID, dateKey)
		if err != nil {
			return err
		}
	}

	if found {
		current := models.DecodePrayerRecord(dateKey, raw).Entries[name].Status
		if err := CheckTransition(current, status, s.strict); err != nil {
			return err
		}
	}

	return s.store.UpdatePrayerEntry(ctx, userID, dateKey, name, status)
}
