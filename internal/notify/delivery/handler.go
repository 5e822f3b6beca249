package delivery

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farmvet-backend/internal/notify/domain"
	"farmvet-backend/internal/notify/repository"
	"farmvet-backend/internal/notify/usecase"
)

// NotifyHandler exposes the broadcast, token-registration and admin-code
// endpoints.
type NotifyHandler struct {
	notifier *usecase.Notifier
	logs     repository.DeliveryLogRepository
}

// NewNotifyHandler creates a new NotifyHandler. logs may be nil when no
// audit store is configured.
func NewNotifyHandler(notifier *usecase.Notifier, logs repository.DeliveryLogRepository) *NotifyHandler {
	return &NotifyHandler{
		notifier: notifier,
		logs:     logs,
	}
}

type newAlertRequest struct {
	AlertType     string `json:"alertType" binding:"required"`
	AlertMessage  string `json:"alertMessage" binding:"required"`
	CreatedByName string `json:"createdByName"`
}

// NotifyFarmersNewAlert broadcasts a farm alert to every farmer.
func (h *NotifyHandler) NotifyFarmersNewAlert(c *gin.Context) {
	var req newAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alertType and alertMessage are required"})
		return
	}

	report, err := h.notifier.BroadcastAlertToFarmers(c.Request.Context(), req.AlertType, req.AlertMessage, req.CreatedByName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"successCount": report.SuccessCount,
		"failureCount": report.FailureCount,
	})
}

type newRequestRequest struct {
	FarmerName string `json:"farmerName" binding:"required"`
	AnimalType string `json:"animalType" binding:"required"`
	Symptoms   string `json:"symptoms"`
	Urgency    string `json:"urgency"`
}

// NotifyVetsNewRequest announces a treatment request to every veterinarian.
func (h *NotifyHandler) NotifyVetsNewRequest(c *gin.Context) {
	var req newRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "farmerName and animalType are required"})
		return
	}

	report, err := h.notifier.BroadcastNewRequestToVets(c.Request.Context(), req.FarmerName, req.AnimalType, req.Symptoms, req.Urgency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"successCount": report.SuccessCount,
		"failureCount": report.FailureCount,
	})
}

type treatmentRequest struct {
	VetName    string `json:"vetName" binding:"required"`
	AnimalType string `json:"animalType" binding:"required"`
	Diagnosis  string `json:"diagnosis"`
	Treatment  string `json:"treatment"`
}

// NotifyFarmerTreatment announces a filed treatment to every farmer.
func (h *NotifyHandler) NotifyFarmerTreatment(c *gin.Context) {
	var req treatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vetName and animalType are required"})
		return
	}

	report, err := h.notifier.BroadcastTreatmentToFarmers(c.Request.Context(), req.VetName, req.AnimalType, req.Diagnosis, req.Treatment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"successCount": report.SuccessCount,
		"failureCount": report.FailureCount,
	})
}

type validateCodeRequest struct {
	Code string `json:"code"`
}

// ValidateAdminCode reports whether the submitted code matches the
// configured admin code. No auth, no side effects.
func (h *NotifyHandler) ValidateAdminCode(c *gin.Context) {
	var req validateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": h.notifier.ValidateAdminCode(req.Code)})
}

type registerTokenRequest struct {
	FCMToken string `json:"fcmToken"`
}

// RegisterToken stores the authenticated caller's delivery token on their
// user record. Idempotent; repeated calls with the same token succeed.
func (h *NotifyHandler) RegisterToken(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req registerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.FCMToken) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fcmToken is required"})
		return
	}

	if err := h.notifier.RegisterToken(c.Request.Context(), userID, req.FCMToken); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fcmToken is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RecentDeliveries lists the latest delivery audit rows.
func (h *NotifyHandler) RecentDeliveries(c *gin.Context) {
	if h.logs == nil {
		c.JSON(http.StatusOK, gin.H{"deliveries": []domain.DeliveryLog{}})
		return
	}

	entries, err := h.logs.FindRecent(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load delivery log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveries": entries})
}
