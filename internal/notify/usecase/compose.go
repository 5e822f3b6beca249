package usecase

import (
	"fmt"

	"farmvet-backend/internal/notify/domain"
)

// Envelope composition is pure data assembly: interpolated title/body plus a
// data map carrying the entity id, entity type and a client-side deep link.

func newRequestEnvelope(farmerName, animalType, symptoms, urgency, requestID string) domain.MessageEnvelope {
	body := fmt.Sprintf("%s has requested treatment for their %s", farmerName, animalType)
	if urgency != "" {
		body = fmt.Sprintf("%s (urgency: %s)", body, urgency)
	}
	if symptoms != "" {
		body = fmt.Sprintf("%s. Symptoms: %s", body, symptoms)
	}

	return domain.MessageEnvelope{
		Title: "New Treatment Request",
		Body:  body,
		Data: map[string]string{
			"type":         "vet_request",
			"requestId":    requestID,
			"click_action": deepLink("/requests", requestID),
		},
	}
}

func reportEnvelope(vetName, animalType, diagnosis, treatment, reportID string) domain.MessageEnvelope {
	body := fmt.Sprintf("Dr. %s has filed a treatment report for your %s", vetName, animalType)
	if diagnosis != "" {
		body = fmt.Sprintf("%s. Diagnosis: %s", body, diagnosis)
	}
	if treatment != "" {
		body = fmt.Sprintf("%s. Treatment: %s", body, treatment)
	}

	return domain.MessageEnvelope{
		Title: "Treatment Report Available",
		Body:  body,
		Data: map[string]string{
			"type":         "vet_report",
			"reportId":     reportID,
			"click_action": deepLink("/reports", reportID),
		},
	}
}

func completionEnvelope(req domain.TreatmentRequest) domain.MessageEnvelope {
	return domain.MessageEnvelope{
		Title: "Treatment Completed",
		Body:  fmt.Sprintf("The treatment request for your %s has been completed", req.AnimalType),
		Data: map[string]string{
			"type":         "request_completed",
			"requestId":    req.ID,
			"click_action": deepLink("/requests", req.ID),
		},
	}
}

func alertEnvelope(alertType, message, createdByName, alertID string) domain.MessageEnvelope {
	body := message
	if createdByName != "" {
		body = fmt.Sprintf("%s: %s", createdByName, message)
	}

	return domain.MessageEnvelope{
		Title: "New Farm Alert",
		Body:  body,
		Data: map[string]string{
			"type":         "alert",
			"alertId":      alertID,
			"alertType":    alertType,
			"click_action": deepLink("/alerts", alertID),
		},
	}
}

func deepLink(base, id string) string {
	if id == "" {
		return base
	}
	return base + "/" + id
}
