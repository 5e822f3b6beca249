package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"farmvet-backend/internal/notify/domain"
	"farmvet-backend/internal/notify/repository"
	"farmvet-backend/pkg/fcm"
)

// Sender is the push transport the dispatcher writes to.
type Sender interface {
	SendToDevice(ctx context.Context, token string, notification fcm.NotificationData) error
	SendToDevices(ctx context.Context, tokens []string, notification fcm.NotificationData) (*fcm.BatchResult, error)
}

// Dispatcher turns an envelope and a resolved token set into sender calls
// and a delivery report.
type Dispatcher struct {
	sender Sender
	logs   repository.DeliveryLogRepository
}

// NewDispatcher creates a new Dispatcher. logs may be nil, in which case no
// audit rows are written.
func NewDispatcher(sender Sender, logs repository.DeliveryLogRepository) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		logs:   logs,
	}
}

// DispatchToSet sends the envelope to every token in one multicast call. An
// empty token set short-circuits to a zero report without touching the
// sender. The counts in the report come verbatim from the sender's response.
func (d *Dispatcher) DispatchToSet(ctx context.Context, env domain.MessageEnvelope, tokens []string) (domain.DeliveryReport, error) {
	if len(tokens) == 0 {
		logrus.Infof("[Dispatch] No recipients for %q, nothing sent", env.Title)
		d.record(env, 0, domain.DeliveryReport{})
		return domain.DeliveryReport{}, nil
	}

	result, err := d.sender.SendToDevices(ctx, tokens, fcm.NotificationData{
		Title: env.Title,
		Body:  env.Body,
		Data:  env.Data,
	})
	if err != nil {
		return domain.DeliveryReport{}, fmt.Errorf("multicast send failed: %w", err)
	}

	report := domain.DeliveryReport{
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
	}
	for _, outcome := range result.Outcomes {
		report.Outcomes = append(report.Outcomes, domain.TargetOutcome{
			Token:  outcome.Token,
			OK:     outcome.OK,
			Reason: outcome.Reason,
		})
	}

	d.record(env, len(tokens), report)
	return report, nil
}

// DispatchToOne sends the envelope to a single token. A sender rejection is
// returned as a *domain.DeliveryError so callers can log it and keep their
// pipeline alive.
func (d *Dispatcher) DispatchToOne(ctx context.Context, env domain.MessageEnvelope, token string) error {
	err := d.sender.SendToDevice(ctx, token, fcm.NotificationData{
		Title: env.Title,
		Body:  env.Body,
		Data:  env.Data,
	})
	if err != nil {
		d.record(env, 1, domain.DeliveryReport{FailureCount: 1})
		return &domain.DeliveryError{Token: token, Reason: err.Error()}
	}

	d.record(env, 1, domain.DeliveryReport{SuccessCount: 1})
	return nil
}

// record writes the audit row best-effort; a failed write never affects the
// dispatch outcome.
func (d *Dispatcher) record(env domain.MessageEnvelope, targets int, report domain.DeliveryReport) {
	if d.logs == nil {
		return
	}

	kind := env.Data["type"]
	if kind == "" {
		kind = "unknown"
	}
	entry := &domain.DeliveryLog{
		Kind:         kind,
		Title:        env.Title,
		TargetCount:  targets,
		SuccessCount: report.SuccessCount,
		FailureCount: report.FailureCount,
	}
	if err := d.logs.Record(entry); err != nil {
		logrus.Warnf("[Dispatch] Failed to record delivery log: %v", err)
	}
}
