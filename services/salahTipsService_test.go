package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mawaqit/models"
)

func TestEmbeddedSalahTips(t *testing.T) {
	service, err := NewSalahTipsService()
	require.NoError(t, err)

	tips := service.List()
	require.NotEmpty(t, tips)
	for _, tip := range tips {
		assert.NotEmpty(t, tip.Title, tip.ID)
		assert.NotEmpty(t, tip.Summary, tip.ID)
		assert.NotEmpty(t, tip.Content, tip.ID)
	}

	tip, err := service.Get("fajr-routine")
	require.NoError(t, err)
	assert.Equal(t, "Waking Up for Fajr", tip.Title)

	_, err = service.Get("missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestParseSalahTipsRejectsBadContent(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not a list", yaml: "id: one"},
		{name: "missing id", yaml: "- title: No id\n"},
		{name: "duplicate id", yaml: "- id: a\n  title: A\n- id: a\n  title: B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSalahTips([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
