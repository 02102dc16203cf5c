package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"pmupro/config"
	"pmupro/internal/domain"
	"pmupro/internal/models"
	"pmupro/internal/repository"
	"pmupro/internal/service"

	"github.com/gin-gonic/gin"
)

type DepositWebhookHandler struct {
	depositSvc *service.DepositService
	clientRepo *repository.ClientRepository
	auditRepo  *repository.AuditLogRepository
	notifSvc   *service.NotificationService
	cfg        *config.Config
}

func NewDepositWebhookHandler(
	depositSvc *service.DepositService,
	clientRepo *repository.ClientRepository,
	auditRepo *repository.AuditLogRepository,
	notifSvc *service.NotificationService,
	cfg *config.Config,
) *DepositWebhookHandler {
	return &DepositWebhookHandler{
		depositSvc: depositSvc,
		clientRepo: clientRepo,
		auditRepo:  auditRepo,
		notifSvc:   notifSvc,
		cfg:        cfg,
	}
}

// Handle processes the payment page's confirmation callback. Expects JSON
// { "link": "...", "status": "PAID", "paid_at": "RFC3339 optional" } and an
// X-Webhook-Signature HMAC when a secret is configured. Replays of a PAID
// callback are acknowledged without effect.
func (h *DepositWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if h.cfg.Payment.WebhookSecret != "" {
		sig := c.GetHeader("X-Webhook-Signature")
		if !h.verifySignature(body, sig) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}
	var payload struct {
		Link   string `json:"link"`
		Status string `json:"status"`
		PaidAt string `json:"paid_at"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.Link == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link required"})
		return
	}
	d, err := h.depositSvc.GetByLink(payload.Link)
	if err != nil {
		// unknown link: acknowledge so the provider stops retrying
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if d.Status == domain.DepositPaid {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if payload.Status != domain.DepositPaid && payload.Status != "paid" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	extra := service.StatusUpdate{}
	if payload.PaidAt != "" {
		if t, perr := time.Parse(time.RFC3339, payload.PaidAt); perr == nil {
			extra.PaidAt = &t
		}
	}
	updated, err := h.depositSvc.UpdateStatus(d.ID, domain.DepositPaid, extra)
	if err != nil {
		if err == domain.ErrInvalidTransition {
			// e.g. link already expired or cancelled; nothing to retry
			c.JSON(http.StatusOK, gin.H{"received": true, "ignored": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	clientName := ""
	if client, cerr := h.clientRepo.GetByID(updated.ClientID); cerr == nil {
		clientName = client.FullName()
	}
	_ = h.notifSvc.NotifyDepositPaid(updated.UserID, updated.ID, clientName, updated.AmountCents)
	_ = h.auditRepo.Create(&models.AuditLog{
		UserID:     &updated.UserID,
		Action:     "deposit_paid",
		Resource:   "deposit_payment",
		ResourceID: strconv.FormatUint(uint64(updated.ID), 10),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *DepositWebhookHandler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.cfg.Payment.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
