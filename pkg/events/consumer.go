package events

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Consumer pulls document events from a Pub/Sub subscription and feeds the
// router. Every message is acked regardless of handler outcome: a stuck,
// retrying trigger is worse than a silently dropped notification.
type Consumer struct {
	client  *pubsub.Client
	subName string
	router  *Router
}

// NewConsumer creates a Pub/Sub client for the given project and binds it to
// the router.
func NewConsumer(ctx context.Context, projectID, subscription, credentialsFile string, router *Router) (*Consumer, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &Consumer{
		client:  client,
		subName: subscription,
		router:  router,
	}, nil
}

// Start blocks receiving messages until the context is cancelled or the
// receive loop fails.
func (c *Consumer) Start(ctx context.Context) {
	logrus.Infof("[Events] Listening for document events on subscription: %s", c.subName)

	sub := c.client.Subscription(c.subName)
	err := sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		c.router.Route(ctx, msg.Data)
		msg.Ack()
	})
	if err != nil {
		logrus.Errorf("[Events] Receive loop ended: %v", err)
	}
}

// Close releases the underlying Pub/Sub client.
func (c *Consumer) Close() error {
	return c.client.Close()
}
