package services

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Mawaqit/models"
)

//go:embed content/salah_tips.yaml
var salahTipsYAML []byte

type SalahTipsService struct {
	tips []models.SalahTip
	byID map[string]models.SalahTip
}

func NewSalahTipsService() (*SalahTipsService, error) {
	return ParseSalahTips(salahTipsYAML)
}

func ParseSalahTips(data []byte) (*SalahTipsService, error) {
	var tips []models.SalahTip
	if err := yaml.Unmarshal(data, &tips); err != nil {
		return nil, fmt.Errorf("failed to parse salah tips: %w", err)
	}

	byID := make(map[string]models.SalahTip, len(tips))
	for _, tip := range tips {
		if tip.ID == "" {
			return nil, fmt.Errorf("salah tip %q has no id", tip.Title)
		}
		if _, dup := byID[tip.ID]; dup {
			return nil, fmt.Errorf("duplicate salah tip id %q", tip.ID)
		}
		byID[tip.ID] = tip
	}
	return &SalahTipsService{tips: tips, byID: byID}, nil
}

func (s *SalahTipsService) List() []models.SalahTip {
	out := make([]models.SalahTip, len(s.tips))
	copy(out, s.tips)
	return out
}

func (s *SalahTipsService) Get(id string) (models.SalahTip, error) {
	tip, ok := s.byID[id]
	if !ok {
		return models.SalahTip{}, fmt.Errorf("salah tip %s: %w", id, models.ErrNotFound)
	}
	return tip, nil
}
