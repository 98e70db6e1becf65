package services

import (
	"fmt"

	"weight-circle-backend/internal/config"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/certificate"
	"github.com/sideshow/apns2/payload"
)

// PushService delivers reminder notifications over APNS
type PushService struct {
	client *apns2.Client
	topic  string
}

// NewPushService creates a new push service from an APNS certificate
func NewPushService(cfg config.APNSConfig) (*PushService, error) {
	cert, err := certificate.FromP12File(cfg.CertPath, cfg.CertPass)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNS certificate: %w", err)
	}

	client := apns2.NewClient(cert)
	if cfg.Sandbox {
		client = client.Development()
	} else {
		client = client.Production()
	}

	return &PushService{client: client, topic: cfg.Topic}, nil
}

// SendReminder pushes a log-your-weight nudge to a device token
func (s *PushService) SendReminder(deviceToken, groupName string) error {
	notification := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       s.topic,
		Payload: payload.NewPayload().
			AlertTitle("Time to check in").
			AlertBody(fmt.Sprintf("Your group %q hasn't seen a weigh-in from you in a while.", groupName)).
			Sound("default"),
	}

	res, err := s.client.Push(notification)
	if err != nil {
		return fmt.Errorf("failed to push reminder: %w", err)
	}
	if !res.Sent() {
		return fmt.Errorf("reminder push rejected: %s", res.Reason)
	}
	return nil
}
