package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pmupro/internal/domain"
	"pmupro/internal/middleware"
	"pmupro/internal/models"
	"pmupro/internal/repository"
	"pmupro/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DepositHandler struct {
	depositSvc *service.DepositService
	clientRepo *repository.ClientRepository
}

func NewDepositHandler(depositSvc *service.DepositService, clientRepo *repository.ClientRepository) *DepositHandler {
	return &DepositHandler{depositSvc: depositSvc, clientRepo: clientRepo}
}

type createDepositRequest struct {
	ClientID           uint   `json:"client_id" binding:"required"`
	AmountCents        int64  `json:"amount_cents" binding:"required"`
	TotalAmountCents   int64  `json:"total_amount_cents" binding:"required"`
	AppointmentID      *uint  `json:"appointment_id"`
	Currency           string `json:"currency"`
	Notes              string `json:"notes"`
	LinkExpirationDays int    `json:"link_expiration_days"`
}

func (h *DepositHandler) Create(c *gin.Context) {
	var req createDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	// the client must belong to the requesting artist
	if _, err := h.clientRepo.GetOwned(req.ClientID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}
	d, err := h.depositSvc.Create(service.CreateDepositInput{
		ClientID:           req.ClientID,
		UserID:             userID,
		AmountCents:        req.AmountCents,
		TotalAmountCents:   req.TotalAmountCents,
		AppointmentID:      req.AppointmentID,
		Currency:           req.Currency,
		Notes:              req.Notes,
		LinkExpirationDays: req.LinkExpirationDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrDepositExceedsTotal):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"deposit": d, "pay_url": h.depositSvc.PayURL(d.DepositLink)})
}

func (h *DepositHandler) ListMine(c *gin.Context) {
	list, err := h.depositSvc.ListForUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": list})
}

func (h *DepositHandler) ListForClient(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || clientID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}
	if _, err := h.clientRepo.GetOwned(uint(clientID), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	list, err := h.depositSvc.ListForClient(uint(clientID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": list})
}

func (h *DepositHandler) Stats(c *gin.Context) {
	stats, err := h.depositSvc.Stats(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DepositHandler) Cancel(c *gin.Context) {
	d, ok := h.ownedDeposit(c)
	if !ok {
		return
	}
	updated, err := h.depositSvc.UpdateStatus(d.ID, domain.DepositCancelled, service.StatusUpdate{})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type refundRequest struct {
	AmountCents *int64 `json:"amount_cents"`
	Reason      string `json:"reason"`
}

func (h *DepositHandler) Refund(c *gin.Context) {
	d, ok := h.ownedDeposit(c)
	if !ok {
		return
	}
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.depositSvc.UpdateStatus(d.ID, domain.DepositRefunded, service.StatusUpdate{
		RefundAmountCents: req.AmountCents,
		RefundReason:      req.Reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refund failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DepositHandler) Resend(c *gin.Context) {
	d, ok := h.ownedDeposit(c)
	if !ok {
		return
	}
	if d.Status != domain.DepositPending {
		c.JSON(http.StatusConflict, gin.H{"error": "deposit is not pending"})
		return
	}
	if err := h.depositSvc.ResendLink(d); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": err.Code})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PublicLookup resolves a payment link for the hosted payment page. Expired
// links still resolve; the response carries an expired flag so the page can
// render the right state.
func (h *DepositHandler) PublicLookup(c *gin.Context) {
	link := c.Param("link")
	d, err := h.depositSvc.GetByLink(link)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deposit not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deposit": gin.H{
			"amount_cents":       d.AmountCents,
			"total_amount_cents": d.TotalAmountCents,
			"remaining_cents":    d.RemainingCents,
			"currency":           d.Currency,
			"status":             d.Status,
			"expires_at":         d.DepositLinkExpiresAt,
		},
		"expired": d.Expired(time.Now()),
	})
}

func (h *DepositHandler) ownedDeposit(c *gin.Context) (*models.DepositPayment, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deposit id"})
		return nil, false
	}
	d, err := h.depositSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deposit not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return nil, false
	}
	if d.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your deposit"})
		return nil, false
	}
	return d, true
}
