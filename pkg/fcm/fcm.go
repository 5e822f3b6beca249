package fcm

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
)

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client around an already-initialized
// messaging client
func NewClient(messagingClient *messaging.Client) *Client {
	return &Client{
		messagingClient: messagingClient,
	}
}

// NotificationData contains the data to send in a push notification
type NotificationData struct {
	Title string
	Body  string
	Data  map[string]string // Custom data payload
}

// TokenOutcome is the delivery result for one token of a multicast send.
type TokenOutcome struct {
	Token  string
	OK     bool
	Reason string
}

// BatchResult is the vendor batch response mapped to a neutral shape at the
// boundary. Outcomes keep the order of the tokens passed in.
type BatchResult struct {
	SuccessCount int
	FailureCount int
	Outcomes     []TokenOutcome
}

// SendToDevice sends a push notification to a specific device token
func (c *Client) SendToDevice(ctx context.Context, token string, notification NotificationData) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: notification.Title,
				Body:  notification.Body,
				Icon:  "/icons/icon-192.png",
			},
		},
	}

	response, err := c.messagingClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	logrus.Infof("[FCM] Message sent successfully: %s", response)
	return nil
}

// SendToDevices sends a push notification to multiple device tokens in one
// multicast call and reports the per-token outcome.
func (c *Client) SendToDevices(ctx context.Context, tokens []string, notification NotificationData) (*BatchResult, error) {
	if len(tokens) == 0 {
		return &BatchResult{}, nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: notification.Title,
				Body:  notification.Body,
				Icon:  "/icons/icon-192.png",
			},
		},
	}

	response, err := c.messagingClient.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to send FCM multicast message: %w", err)
	}

	logrus.Infof("[FCM] Multicast sent: %d success, %d failures", response.SuccessCount, response.FailureCount)

	result := &BatchResult{
		SuccessCount: response.SuccessCount,
		FailureCount: response.FailureCount,
	}
	for i, resp := range response.Responses {
		outcome := TokenOutcome{Token: tokens[i], OK: resp.Success}
		if resp.Error != nil {
			outcome.Reason = resp.Error.Error()
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}
