package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/jmoiron/sqlx"
	"google.golang.org/api/option"
)

// FCMService handles Firebase Cloud Messaging
type FCMService struct {
	client *messaging.Client
}

// NewFCMService creates a new FCM service instance from a credentials file
func NewFCMService(credentialsFile string) (*FCMService, error) {
	ctx := context.Background()

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// NewFCMServiceFromBase64 creates a new FCM service instance from
// base64-encoded credentials, useful for cloud deployments where uploading a
// file is awkward.
func NewFCMServiceFromBase64(credentialsBase64 string) (*FCMService, error) {
	ctx := context.Background()

	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}

	opt := option.WithCredentialsJSON(credentialsJSON)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// SendMulticast sends the same message to every registered device
func (s *FCMService) SendMulticast(tokens []string, title, body string, data map[string]string) error {
	ctx := context.Background()

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast message: %w", err)
	}

	log.Printf("✅ Multicast sent: %d success, %d failures", response.SuccessCount, response.FailureCount)
	return nil
}

// PushNotifier adapts FCM plus the registered household devices to the
// Notifier capability the reminder scheduler consumes. Without a messaging
// client, a database, or at least one registered device, permission is
// reported as absent and nothing is ever sent.
type PushNotifier struct {
	fcm *FCMService
	db  *sqlx.DB
}

func NewPushNotifier(fcm *FCMService, db *sqlx.DB) *PushNotifier {
	return &PushNotifier{fcm: fcm, db: db}
}

func (n *PushNotifier) HasPermission() bool {
	if n.fcm == nil || n.db == nil {
		return false
	}
	var count int
	if err := n.db.Get(&count, "SELECT COUNT(*) FROM device_tokens"); err != nil {
		return false
	}
	return count > 0
}

func (n *PushNotifier) Send(title, body string) error {
	if !n.HasPermission() {
		return ErrNoPermission
	}
	var tokens []string
	if err := n.db.Select(&tokens, "SELECT token FROM device_tokens"); err != nil {
		return fmt.Errorf("load device tokens: %w", err)
	}
	return n.fcm.SendMulticast(tokens, title, body, map[string]string{"type": "waste_reminder"})
}
