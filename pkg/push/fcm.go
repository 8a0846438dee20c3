package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Sender delivers one push message to one device token. Delivery is
// best effort; reservation state never depends on the outcome.
type Sender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCMSender sends via Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
	log    *zap.Logger
}

func NewFCMSender(ctx context.Context, credentialsFile string, log *zap.Logger) (*FCMSender, error) {
	opt := option.WithCredentialsFile(credentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	return &FCMSender{
		client: client,
		log:    log.With(zap.String("component", "fcm")),
	}, nil
}

func (s *FCMSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send FCM message: %w", err)
	}

	s.log.Debug("Push delivered", zap.String("message_id", response))
	return nil
}

// NopSender is used when no FCM credentials are configured.
type NopSender struct{}

func (NopSender) Send(_ context.Context, _, _, _ string, _ map[string]string) error {
	return nil
}
