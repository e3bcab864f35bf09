package services

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/stores"
)

var FallbackInspiration = models.DailyInspiration{
	ID:      "fallback",
	Type:    models.InspirationTypeQuote,
	Content: "The best of deeds are those that are consistent, even if they are few.",
	Source:  "Prophet Muhammad (peace be upon him)",
}

// DefaultInspirations is what an empty collection gets seeded with.
var DefaultInspirations = []models.DailyInspiration{
	{Type: models.InspirationTypeVerse, Content: "Indeed, with hardship [will be] ease.", Source: "Quran 94:6"},
	{Type: models.InspirationTypeQuote, Content: "The world is a prison for the believer and a paradise for the disbeliever.", Source: "Hadith Muslim"},
	{Type: models.InspirationTypeVerse, Content: "And seek help through patience and prayer, and indeed, it is difficult except for the humbly submissive [to Allah].", Source: "Quran 2:45"},
	{Type: models.InspirationTypeQuote, Content: "Do not lose hope, nor be sad.", Source: "Quran 3:139 (paraphrased)"},
	{Type: models.InspirationTypeVerse, Content: "So remember Me; I will remember you. And be grateful to Me and do not deny Me.", Source: "Quran 2:152"},
}

// InspirationID derives a stable document id from the first twenty
// characters of the content.
func InspirationID(content string) string {
	runes := []rune(content)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	return strings.ReplaceAll(string(runes), " ", "_")
}

func SeedInspirations() []models.DailyInspiration {
	seeds := make([]models.DailyInspiration, len(DefaultInspirations))
	for i, insp := range DefaultInspirations {
		insp.ID = InspirationID(insp.Content)
		seeds[i] = insp
	}
	return seeds
}

type InspirationService struct {
	store stores.InspirationStore
}

func NewInspirationService(store stores.InspirationStore) *InspirationService {
	return &InspirationService{store: store}
}

// Daily picks the inspiration for a day. The same date always maps to the same
// entry while the collection is unchanged. Storage problems are logged and
// answered with FallbackInspiration.
func (s *InspirationService) Daily(ctx context.Context, dateKey string) (models.DailyInspiration, error) {
	day, err := models.ParseDateKey(dateKey)
	if err != nil {
		return models.DailyInspiration{}, err
	}

	inspirations, err := s.store.ListInspirations(ctx)
	if err != nil {
		log.Warn("listing daily inspirations failed, using fallback", "err", err)
		return FallbackInspiration, nil
	}

	if len(inspirations) == 0 {
		if err := s.store.SeedInspirations(ctx, SeedInspirations()); err != nil {
			log.Warn("seeding daily inspirations failed, using fallback", "err", err)
			return FallbackInspiration, nil
		}
		inspirations, err = s.store.ListInspirations(ctx)
		if err != nil || len(inspirations) == 0 {
			log.Warn("no daily inspirations after seeding, using fallback", "err", err)
			return FallbackInspiration, nil
		}
	}

	index := int(day.Unix()/int64(24*time.Hour/time.Second)) % len(inspirations)
	if index < 0 {
		index += len(inspirations)
	}
	return inspirations[index], nil
}
