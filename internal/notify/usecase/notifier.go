package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"farmvet-backend/internal/notify/domain"
	"farmvet-backend/internal/notify/repository"
	"farmvet-backend/pkg/events"
)

// Document collections the triggers are bound to.
const (
	collectionVetRequests = "vetRequests"
	collectionVetReports  = "vetReports"
	collectionAlerts      = "alerts"
)

// Notifier owns the trigger reactions and the direct entry points of the
// notification layer.
type Notifier struct {
	resolver   *Resolver
	dispatcher *Dispatcher
	users      repository.UserRepository
	adminCode  string
}

// NewNotifier creates a new Notifier
func NewNotifier(resolver *Resolver, dispatcher *Dispatcher, users repository.UserRepository, adminCode string) *Notifier {
	return &Notifier{
		resolver:   resolver,
		dispatcher: dispatcher,
		users:      users,
		adminCode:  adminCode,
	}
}

// Registrations binds the document-change triggers to their collections.
// Passed to the event consumer's routing table at startup.
func (n *Notifier) Registrations() []events.Registration {
	return []events.Registration{
		{Collection: collectionVetRequests, Kind: events.KindCreated, Handle: n.onRequestCreated},
		{Collection: collectionVetRequests, Kind: events.KindUpdated, Handle: n.onRequestUpdated},
		{Collection: collectionVetReports, Kind: events.KindCreated, Handle: n.onReportCreated},
		{Collection: collectionAlerts, Kind: events.KindCreated, Handle: n.onAlertCreated},
	}
}

func (n *Notifier) onRequestCreated(ctx context.Context, evt events.DocumentEvent) {
	var req domain.TreatmentRequest
	if !decodeDocument(evt.After, &req) {
		return
	}
	req.ID = evt.DocumentID
	n.HandleRequestCreated(ctx, req)
}

func (n *Notifier) onRequestUpdated(ctx context.Context, evt events.DocumentEvent) {
	var before, after domain.TreatmentRequest
	if !decodeDocument(evt.Before, &before) || !decodeDocument(evt.After, &after) {
		return
	}
	after.ID = evt.DocumentID
	n.HandleRequestUpdated(ctx, before, after)
}

func (n *Notifier) onReportCreated(ctx context.Context, evt events.DocumentEvent) {
	var report domain.TreatmentReport
	if !decodeDocument(evt.After, &report) {
		return
	}
	report.ID = evt.DocumentID
	n.HandleReportCreated(ctx, report)
}

func (n *Notifier) onAlertCreated(ctx context.Context, evt events.DocumentEvent) {
	var alert domain.Alert
	if !decodeDocument(evt.After, &alert) {
		return
	}
	alert.ID = evt.DocumentID
	n.HandleAlertCreated(ctx, alert)
}

// HandleRequestCreated notifies every veterinarian about a new treatment
// request.
func (n *Notifier) HandleRequestCreated(ctx context.Context, req domain.TreatmentRequest) {
	tokens, err := n.resolver.ResolveByRole(ctx, domain.RoleVeterinarian)
	if err != nil {
		logrus.Errorf("[Notify] Could not resolve veterinarians for request %s: %v", req.ID, err)
		return
	}

	env := newRequestEnvelope(req.FarmerName, req.AnimalType, req.Symptoms, req.Urgency, req.ID)
	if _, err := n.dispatcher.DispatchToSet(ctx, env, tokens); err != nil {
		logrus.Errorf("[Notify] Dispatch failed for request %s: %v", req.ID, err)
	}
}

// HandleRequestUpdated notifies the farmer when their request transitions
// into completed. Edge-triggered: repeated writes that keep the status at
// completed stay silent.
func (n *Notifier) HandleRequestUpdated(ctx context.Context, before, after domain.TreatmentRequest) {
	if before.Status == domain.StatusCompleted || after.Status != domain.StatusCompleted {
		return
	}
	n.notifyUser(ctx, after.FarmerID, completionEnvelope(after))
}

// HandleReportCreated notifies the farmer their treatment report is
// available.
func (n *Notifier) HandleReportCreated(ctx context.Context, report domain.TreatmentReport) {
	n.notifyUser(ctx, report.FarmerID, reportEnvelope(report.VetName, report.AnimalType, report.Diagnosis, report.Treatment, report.ID))
}

// HandleAlertCreated notifies the addressed user about a new alert.
func (n *Notifier) HandleAlertCreated(ctx context.Context, alert domain.Alert) {
	n.notifyUser(ctx, alert.UserID, alertEnvelope(alert.Type, alert.Message, alert.CreatedByName, alert.ID))
}

// notifyUser resolves a single user and delivers best-effort. A missing user
// or missing token is a logged no-op; a trigger never fails its host.
func (n *Notifier) notifyUser(ctx context.Context, userID string, env domain.MessageEnvelope) {
	token, err := n.resolver.ResolveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logrus.Warnf("[Notify] User %s not found, dropping %q", userID, env.Title)
		} else {
			logrus.Errorf("[Notify] Could not resolve user %s: %v", userID, err)
		}
		return
	}
	if token == "" {
		logrus.Infof("[Notify] User %s has no delivery token, skipping %q", userID, env.Title)
		return
	}

	if err := n.dispatcher.DispatchToOne(ctx, env, token); err != nil {
		logrus.Errorf("[Notify] Delivery to user %s failed: %v", userID, err)
	}
}

// BroadcastAlertToFarmers sends a farm alert to every farmer with a token.
func (n *Notifier) BroadcastAlertToFarmers(ctx context.Context, alertType, message, createdByName string) (domain.DeliveryReport, error) {
	tokens, err := n.resolver.ResolveByRole(ctx, domain.RoleFarmer)
	if err != nil {
		return domain.DeliveryReport{}, err
	}
	return n.dispatcher.DispatchToSet(ctx, alertEnvelope(alertType, message, createdByName, ""), tokens)
}

// BroadcastNewRequestToVets announces a treatment request to every
// veterinarian with a token.
func (n *Notifier) BroadcastNewRequestToVets(ctx context.Context, farmerName, animalType, symptoms, urgency string) (domain.DeliveryReport, error) {
	tokens, err := n.resolver.ResolveByRole(ctx, domain.RoleVeterinarian)
	if err != nil {
		return domain.DeliveryReport{}, err
	}
	return n.dispatcher.DispatchToSet(ctx, newRequestEnvelope(farmerName, animalType, symptoms, urgency, ""), tokens)
}

// BroadcastTreatmentToFarmers announces a filed treatment to every farmer
// with a token.
func (n *Notifier) BroadcastTreatmentToFarmers(ctx context.Context, vetName, animalType, diagnosis, treatment string) (domain.DeliveryReport, error) {
	tokens, err := n.resolver.ResolveByRole(ctx, domain.RoleFarmer)
	if err != nil {
		return domain.DeliveryReport{}, err
	}
	return n.dispatcher.DispatchToSet(ctx, reportEnvelope(vetName, animalType, diagnosis, treatment, ""), tokens)
}

// RegisterToken merges the caller's delivery token into their user record.
// Re-registering the same token is a no-op overwrite, not an error.
func (n *Notifier) RegisterToken(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(token) == "" {
		return domain.ErrInvalidArgument
	}
	if err := n.users.SaveToken(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to store token for user %s: %w", userID, err)
	}
	logrus.Infof("[Notify] Registered delivery token for user %s", userID)
	return nil
}

// ValidateAdminCode checks a submitted code against the configured value.
// Plain, case-sensitive comparison over an open endpoint; a known weakness
// of the admin flow that is out of scope to fix here.
func (n *Notifier) ValidateAdminCode(code string) bool {
	return code == n.adminCode
}

func decodeDocument(raw json.RawMessage, v interface{}) bool {
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logrus.Errorf("[Notify] Could not decode event document: %v", err)
		return false
	}
	return true
}
