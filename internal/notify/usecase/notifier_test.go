package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmvet-backend/internal/notify/domain"
	"farmvet-backend/pkg/events"
)

func newTestNotifier(repo *fakeUserRepo, sender *fakeSender) *Notifier {
	resolver := NewResolver(repo)
	dispatcher := NewDispatcher(sender, nil)
	return NewNotifier(resolver, dispatcher, repo, "FARMVET2024")
}

func TestHandleRequestCreatedTargetsVetsWithTokens(t *testing.T) {
	repo := &fakeUserRepo{users: []domain.User{
		{ID: "v1", Role: domain.RoleVeterinarian, FCMToken: "tokA"},
		{ID: "v2", Role: domain.RoleVeterinarian},
		{ID: "f1", Role: domain.RoleFarmer, FCMToken: "tok-f1"},
	}}
	sender := &fakeSender{}
	notifier := newTestNotifier(repo, sender)

	notifier.HandleRequestCreated(context.Background(), domain.TreatmentRequest{
		ID:         "req-1",
		FarmerID:   "f1",
		FarmerName: "Alex",
		AnimalType: "Cow",
		Status:     domain.StatusPending,
	})

	assert.Equal(t, 1, sender.multiCalls)
	assert.Equal(t, []string{"tokA"}, sender.lastTokens)
	assert.Equal(t, "New Treatment Request", sender.lastData.Title)
	assert.Equal(t, "req-1", sender.lastData.Data["requestId"])
	assert.Equal(t, "/requests/req-1", sender.lastData.Data["click_action"])
}

func TestHandleRequestUpdatedIsEdgeTriggered(t *testing.T) {
	repo := &fakeUserRepo{users: []domain.User{
		{ID: "f1", Role: domain.RoleFarmer, FCMToken: "tok-f1"},
	}}
	sender := &fakeSender{}
	notifier := newTestNotifier(repo, sender)

	completed := domain.TreatmentRequest{ID: "req-1", FarmerID: "f1", AnimalType: "Cow", Status: domain.StatusCompleted}
	pending := completed
	pending.Status = domain.StatusPending
	inProgress := completed
	inProgress.Status = domain.StatusInProgress

	// A write that keeps the status at completed must not re-dispatch.
	notifier.HandleRequestUpdated(context.Background(), completed, completed)
	assert.Zero(t, sender.singleCalls)

	// Transitions between non-completed states stay silent too.
	notifier.HandleRequestUpdated(context.Background(), pending, inProgress)
	assert.Zero(t, sender.singleCalls)

	// The transition into completed dispatches exactly once.
	notifier.HandleRequestUpdated(context.Background(), inProgress, completed)
	assert.Equal(t, 1, sender.singleCalls)
	assert.Equal(t, "tok-f1", sender.lastToken)
	assert.Equal(t, "Treatment Completed", sender.lastData.Title)
}

func TestHandleReportCreatedSkipsMissingFarmer(t *testing.T) {
	repo := &fakeUserRepo{}
	sender := &fakeSender{}
	notifier := newTestNotifier(repo, sender)

	// Never panics, never dispatches; the trigger host sees success.
	notifier.HandleReportCreated(context.Background(), domain.TreatmentReport{
		ID:       "rep-1",
		FarmerID: "ghost",
		VetName:  "Kim",
	})

	assert.Zero(t, sender.singleCalls)
	assert.Zero(t, sender.multiCalls)
}

func TestHandleReportCreatedSkipsTokenlessFarmer(t *testing.T) {
	repo := &fakeUserRepo{users: []domain.User{
		{ID: "f1", Role: domain.RoleFarmer},
	}}
	sender := &fakeSender{}
	notifier := newTestNotifier(repo, sender)

	notifier.HandleReportCreated(context.Background(), domain.TreatmentReport{
		ID:       "rep-1",
		FarmerID: "f1",
		VetName:  "Kim",
	})

	assert.Zero(t, sender.singleCalls)
}

func TestHandleAlertCreatedDeliversToUser(t *testing.T) {
	repo := &fakeUserRepo{users: []domain.User{
		{ID: "f1", Role: domain.RoleFarmer, FCMToken: "tok-f1"},
	}}
	sender := &fakeSender{}
	notifier := newTestNotifier(repo, sender)

	notifier.HandleAlertCreated(context.Background(), domain.Alert{
		ID:      "al-1",
		UserID:  "f1",
		Type:    domain.AlertTypeWarning,
		Message: "storm approaching",
	})

	assert.Equal(t, 1, sender.singleCalls)
	assert.Equal(t, "tok-f1", sender.lastToken)
	assert.Equal(t, "storm approaching", sender.lastData.Body)
	assert.Equal(t, "al-1", sender.lastData.Data["alertId"])
}

func TestRegisterTokenIsIdempotent(t *testing.T) {
	repo := &fakeUserRepo{}
	notifier := newTestNotifier(repo, &fakeSender{})

	require.NoError(t, notifier.RegisterToken(context.Background(), "u1", "tok-1"))
	require.NoError(t, notifier.RegisterToken(context.Background(), "u1", "tok-1"))

	assert.Equal(t, "tok-1", repo.saved["u1"])
	assert.Equal(t, 2, repo.saveCalls)
}

func TestRegisterTokenRejectsEmpty(t *testing.T) {
	repo := &fakeUserRepo{}
	notifier := newTestNotifier(repo, &fakeSender{})

	err := notifier.RegisterToken(context.Background(), "u1", "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Zero(t, repo.saveCalls)
}

func TestValidateAdminCode(t *testing.T) {
	notifier := newTestNotifier(&fakeUserRepo{}, &fakeSender{})

	assert.True(t, notifier.ValidateAdminCode("FARMVET2024"))
	assert.False(t, notifier.ValidateAdminCode("farmvet2024"))
	assert.False(t, notifier.ValidateAdminCode(""))
	assert.False(t, notifier.ValidateAdminCode("FARMVET2024 "))
}

func TestRegistrationsRouteDocumentEvents(t *testing.T) {
	repo := &fakeUserRepo{users: []domain.User{
		{ID: "v1", Role: domain.RoleVeterinarian, FCMToken: "tokA"},
		{ID: "f1", Role: domain.RoleFarmer, FCMToken: "tok-f1"},
	}}
	sender := &fakeSender{}
	notifier := newTestNotifier(repo, sender)
	router := events.NewRouter(notifier.Registrations())

	// vetRequests/created fans out to veterinarians.
	router.Route(context.Background(), []byte(`{
		"collection": "vetRequests",
		"eventKind": "created",
		"documentId": "req-1",
		"after": {"farmerId": "f1", "farmerName": "Alex", "animalType": "Cow", "status": "pending"}
	}`))
	assert.Equal(t, 1, sender.multiCalls)
	assert.Equal(t, []string{"tokA"}, sender.lastTokens)

	// An update that stays completed is silent.
	router.Route(context.Background(), []byte(`{
		"collection": "vetRequests",
		"eventKind": "updated",
		"documentId": "req-1",
		"before": {"farmerId": "f1", "status": "completed"},
		"after": {"farmerId": "f1", "animalType": "Cow", "status": "completed"}
	}`))
	assert.Zero(t, sender.singleCalls)

	// The transition into completed notifies the farmer.
	router.Route(context.Background(), []byte(`{
		"collection": "vetRequests",
		"eventKind": "updated",
		"documentId": "req-1",
		"before": {"farmerId": "f1", "status": "in_progress"},
		"after": {"farmerId": "f1", "animalType": "Cow", "status": "completed"}
	}`))
	assert.Equal(t, 1, sender.singleCalls)
	assert.Equal(t, "tok-f1", sender.lastToken)

	// alerts/created notifies the addressed user.
	router.Route(context.Background(), []byte(`{
		"collection": "alerts",
		"eventKind": "created",
		"documentId": "al-1",
		"after": {"userId": "f1", "type": "warning", "message": "storm approaching"}
	}`))
	assert.Equal(t, 2, sender.singleCalls)
}
