package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mawaqit/models"
)

type fakeMessenger struct {
	sent       []*messaging.Message
	subscribed []string
	topic      string
	failures   int
	err        error
}

func (f *fakeMessenger) Send(ctx context.Context, message *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, message)
	return "projects/mawaqit/messages/1", nil
}

func (f *fakeMessenger) SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.subscribed = append(f.subscribed, tokens...)
	f.topic = topic
	resp := &messaging.TopicManagementResponse{SuccessCount: len(tokens) - f.failures, FailureCount: f.failures}
	if f.failures > 0 {
		resp.Errors = []*messaging.ErrorInfo{{Index: 0, Reason: "invalid-registration-token"}}
	}
	return resp, nil
}

func TestSubscribeToDailyInspiration(t *testing.T) {
	tests := []struct {
		name       string
		messenger  *fakeMessenger
		token      string
		wantErr    bool
		validation bool
	}{
		{name: "subscribed", messenger: &fakeMessenger{}, token: "fcm-token-1"},
		{name: "expo token", messenger: &fakeMessenger{}, token: "ExponentPushToken[abc]", wantErr: true, validation: true},
		{name: "token rejected", messenger: &fakeMessenger{failures: 1}, token: "stale", wantErr: true, validation: true},
		{name: "fcm unavailable", messenger: &fakeMessenger{err: errors.New("unavailable")}, token: "fcm-token-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewPushNotificationService(tt.messenger)

			err := service.SubscribeToDailyInspiration(context.Background(), models.PushTokenRequest{PushToken: tt.token, Platform: "android"})

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, []string{tt.token}, tt.messenger.subscribed)
				assert.Equal(t, DailyInspirationTopic, tt.messenger.topic)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.validation, errors.Is(err, models.ErrValidation))
		})
	}
}

func TestBroadcastDailyInspiration(t *testing.T) {
	messenger := &fakeMessenger{}
	service := NewPushNotificationService(messenger)

	id, err := service.BroadcastDailyInspiration(context.Background(), models.DailyInspiration{
		ID: "So_remember_Me;_I_wi", Type: models.InspirationTypeVerse,
		Content: "So remember Me; I will remember you.", Source: "Quran 2:152",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, messenger.sent, 1)
	msg := messenger.sent[0]
	assert.Equal(t, DailyInspirationTopic, msg.Topic)
	assert.Equal(t, "Verse of the Day", msg.Notification.Title)
	assert.Equal(t, "So_remember_Me;_I_wi", msg.Data["inspirationId"])
}

func TestPushWithoutClient(t *testing.T) {
	service := NewPushNotificationService(nil)

	assert.Error(t, service.SubscribeToDailyInspiration(context.Background(), models.PushTokenRequest{PushToken: "t", Platform: "ios"}))
	_, err := service.BroadcastDailyInspiration(context.Background(), FallbackInspiration)
	assert.Error(t, err)
}
