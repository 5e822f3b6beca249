package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmvet-backend/internal/notify/domain"
	"farmvet-backend/pkg/fcm"
)

func testEnvelope() domain.MessageEnvelope {
	return domain.MessageEnvelope{
		Title: "New Farm Alert",
		Body:  "water levels critical",
		Data:  map[string]string{"type": "alert", "click_action": "/alerts"},
	}
}

func TestDispatchToSetEmptySkipsSender(t *testing.T) {
	sender := &fakeSender{}
	logs := &fakeLogRepo{}
	dispatcher := NewDispatcher(sender, logs)

	report, err := dispatcher.DispatchToSet(context.Background(), testEnvelope(), nil)

	require.NoError(t, err)
	assert.Zero(t, sender.multiCalls)
	assert.Equal(t, domain.DeliveryReport{}, report)

	// The no-recipients outcome still leaves an audit row with zero targets.
	require.Len(t, logs.entries, 1)
	assert.Zero(t, logs.entries[0].TargetCount)
}

func TestDispatchToSetCountsComeFromSender(t *testing.T) {
	sender := &fakeSender{result: &fcm.BatchResult{
		SuccessCount: 1,
		FailureCount: 1,
		Outcomes: []fcm.TokenOutcome{
			{Token: "tokA", OK: true},
			{Token: "tokB", OK: false, Reason: "registration-token-not-registered"},
		},
	}}
	dispatcher := NewDispatcher(sender, nil)

	report, err := dispatcher.DispatchToSet(context.Background(), testEnvelope(), []string{"tokA", "tokB"})

	require.NoError(t, err)
	assert.Equal(t, 1, sender.multiCalls)
	assert.Equal(t, []string{"tokA", "tokB"}, sender.lastTokens)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailureCount)
	require.Len(t, report.Outcomes, 2)
	assert.True(t, report.Outcomes[0].OK)
	assert.False(t, report.Outcomes[1].OK)
	assert.Equal(t, "registration-token-not-registered", report.Outcomes[1].Reason)
}

func TestDispatchToSetPassesEnvelopeThrough(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewDispatcher(sender, nil)

	_, err := dispatcher.DispatchToSet(context.Background(), testEnvelope(), []string{"tokA"})

	require.NoError(t, err)
	assert.Equal(t, "New Farm Alert", sender.lastData.Title)
	assert.Equal(t, "water levels critical", sender.lastData.Body)
	assert.Equal(t, "/alerts", sender.lastData.Data["click_action"])
}

func TestDispatchToSetSenderError(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("quota exceeded")}
	dispatcher := NewDispatcher(sender, nil)

	_, err := dispatcher.DispatchToSet(context.Background(), testEnvelope(), []string{"tokA"})

	assert.Error(t, err)
}

func TestDispatchToOneConvertsRejection(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("invalid registration token")}
	logs := &fakeLogRepo{}
	dispatcher := NewDispatcher(sender, logs)

	err := dispatcher.DispatchToOne(context.Background(), testEnvelope(), "tokX")

	var deliveryErr *domain.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "tokX", deliveryErr.Token)
	assert.Contains(t, deliveryErr.Reason, "invalid registration token")

	require.Len(t, logs.entries, 1)
	assert.Equal(t, 1, logs.entries[0].FailureCount)
}

func TestDispatchToOneSuccessRecordsAudit(t *testing.T) {
	sender := &fakeSender{}
	logs := &fakeLogRepo{}
	dispatcher := NewDispatcher(sender, logs)

	err := dispatcher.DispatchToOne(context.Background(), testEnvelope(), "tokA")

	require.NoError(t, err)
	assert.Equal(t, 1, sender.singleCalls)
	assert.Equal(t, "tokA", sender.lastToken)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "alert", logs.entries[0].Kind)
	assert.Equal(t, 1, logs.entries[0].SuccessCount)
}
