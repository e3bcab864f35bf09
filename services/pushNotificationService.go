package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/charmbracelet/log"

	"github.com/Mawaqit/models"
)

const DailyInspirationTopic = "daily-inspiration"

// Messenger is the part of the FCM client used here.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
}

type PushNotificationService struct {
	fcmClient Messenger
	timeout   time.Duration
}

// NewPushNotificationService accepts a nil client when Firebase is not
// configured; every call then fails.
func NewPushNotificationService(fcmClient Messenger) *PushNotificationService {
	return &PushNotificationService{fcmClient: fcmClient, timeout: 10 * time.Second}
}

// SubscribeToDailyInspiration adds a device to the daily inspiration topic.
func (s *PushNotificationService) SubscribeToDailyInspiration(ctx context.Context, req models.PushTokenRequest) error {
	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if strings.HasPrefix(req.PushToken, "ExponentPushToken[") {
		return models.NewValidationError("pushToken", "Expo tokens cannot subscribe to FCM topics")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.fcmClient.SubscribeToTopic(ctx, []string{req.PushToken}, DailyInspirationTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", DailyInspirationTopic, err)
	}
	if response != nil && response.FailureCount > 0 {
		reason := "rejected by FCM"
		if len(response.Errors) > 0 && response.Errors[0] != nil {
			reason = response.Errors[0].Reason
		}
		return models.NewValidationError("pushToken", reason)
	}

	log.Info("device subscribed to topic", "topic", DailyInspirationTopic, "platform", req.Platform)
	return nil
}

// BroadcastDailyInspiration sends the inspiration to every subscribed device
// and returns the FCM message id.
func (s *PushNotificationService) BroadcastDailyInspiration(ctx context.Context, inspiration models.DailyInspiration) (string, error) {
	if s.fcmClient == nil {
		return "", fmt.Errorf("FCM client not initialized")
	}

	title := "Daily Inspiration"
	if inspiration.Type == models.InspirationTypeVerse {
		title = "Verse of the Day"
	}

	message := &messaging.Message{
		Topic: DailyInspirationTopic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  inspiration.Content + " (" + inspiration.Source + ")",
		},
		Data: map[string]string{
			"type":          "daily_inspiration",
			"inspirationId": inspiration.ID,
		},
		Android: &messaging.AndroidConfig{
			Priority: "normal",
			Notification: &messaging.AndroidNotification{
				Title: title,
				Body:  inspiration.Content,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  inspiration.Content,
					},
					Sound: "default",
				},
			},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		log.Error("FCM topic send failed", "topic", DailyInspirationTopic, "err", err)
		return "", fmt.Errorf("failed to send FCM topic message: %w", err)
	}

	log.Info("sent daily inspiration", "topic", DailyInspirationTopic, "message_id", response)
	return response, nil
}
