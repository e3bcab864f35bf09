package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/stores"
)

const (
	dailyWindow   = 7
	weeklyBuckets = 4
	monthlyWindow = 30

	DefaultStatsBatchSize      = 10
	DefaultStatsMaxConcurrency = 4
)

type StatisticsConfig struct {
	BatchSize      int
	MaxConcurrency int
}

// StatisticsService turns the stored days of a trailing window into chart
// buckets. Nothing is cached; every call reads the window again.
type StatisticsService struct {
	store    stores.PrayerRecordStore
	now      func() time.Time
	location *time.Location
	config   StatisticsConfig
}

func NewStatisticsService(store stores.PrayerRecordStore, now func() time.Time, location *time.Location, config StatisticsConfig) *StatisticsService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultStatsBatchSize
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = DefaultStatsMaxConcurrency
	}
	return &StatisticsService{store: store, now: now, location: location, config: config}
}

func (s *StatisticsService) Aggregate(ctx context.Context, userID, period, filter string) ([]models.StatBucket, error) {
	statPeriod, err := models.ParseStatPeriod(period)
	if err != nil {
		return nil, err
	}
	names, err := models.ParseStatFilter(filter)
	if err != nil {
		return nil, err
	}

	today := s.now().In(s.location)

	switch statPeriod {
	case models.PeriodDaily:
		keys := models.DateKeysEndingAt(today, dailyWindow)
		records, err := s.fetchWindow(ctx, userID, keys)
		if err != nil {
			return nil, err
		}
		buckets := make([]models.StatBucket, 0, len(keys))
		for _, key := range keys {
			buckets = append(buckets, models.StatBucket{Date: key, Count: countPrayed(records, key, names)})
		}
		return buckets, nil

	case models.PeriodWeekly:
		keys := models.DateKeysEndingAt(today, weeklyBuckets*dailyWindow)
		records, err := s.fetchWindow(ctx, userID, keys)
		if err != nil {
			return nil, err
		}
		buckets := make([]models.StatBucket, 0, weeklyBuckets)
		for week := 0; week < weeklyBuckets; week++ {
			count := 0
			for _, key := range keys[week*dailyWindow : (week+1)*dailyWindow] {
				count += countPrayed(records, key, names)
			}
			buckets = append(buckets, models.StatBucket{Week: fmt.Sprintf("Week %d", week+1), Count: count})
		}
		return buckets, nil

	default:
		keys := models.DateKeysEndingAt(today, monthlyWindow)
		records, err := s.fetchWindow(ctx, userID, keys)
		if err != nil {
			return nil, err
		}
		var prayed, notPrayed, notMarked int
		for _, key := range keys {
			record, ok := records[key]
			if !ok {
				notMarked += len(names)
				continue
			}
			prayed += record.CountStatus(models.StatusPrayed, names)
			notPrayed += record.CountStatus(models.StatusNotPrayed, names)
			notMarked += record.CountStatus(models.StatusNotMarked, names)
		}
		return []models.StatBucket{
			{Name: models.BucketPrayed, Count: prayed},
			{Name: models.BucketNotPrayed, Count: notPrayed},
			{Name: models.BucketNotMarked, Count: notMarked},
		}, nil
	}
}

// fetchWindow reads the given days in batches, several batches at a time.
// Days with no stored document are absent from the result. The first failed
// batch cancels the others and the whole window is reported as failed.
func (s *StatisticsService) fetchWindow(ctx context.Context, userID string, keys []string) (map[string]models.PrayerRecord, error) {
	batches := chunk(keys, s.config.BatchSize)
	results := make([]map[string]stores.RawDocument, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.MaxConcurrency)
	for i, batch := range batches {
		g.Go(func() error {
			docs, err := s.store.GetPrayerRecords(gctx, userID, batch)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("statistics window read failed", "user", userID, "err", err)
		return nil, err
	}

	records := make(map[string]models.PrayerRecord, len(keys))
	for _, docs := range results {
		for key, raw := range docs {
			records[key] = models.DecodePrayerRecord(key, raw)
		}
	}
	return records, nil
}

func countPrayed(records map[string]models.PrayerRecord, key string, names []models.PrayerName) int {
	record, ok := records[key]
	if !ok {
		return 0
	}
	return record.CountStatus(models.StatusPrayed, names)
}

func chunk(keys []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		batches = append(batches, keys[start:end])
	}
	return batches
}
