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

type DocumentHandler struct {
	docRepo    *repository.DocumentRepository
	clientRepo *repository.ClientRepository
	notifSvc   *service.NotificationService
}

func NewDocumentHandler(docRepo *repository.DocumentRepository, clientRepo *repository.ClientRepository, notifSvc *service.NotificationService) *DocumentHandler {
	return &DocumentHandler{docRepo: docRepo, clientRepo: clientRepo, notifSvc: notifSvc}
}

type createDocumentRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	if _, err := h.clientRepo.GetOwned(req.ClientID, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	d := &models.Document{
		UserID:   userID,
		ClientID: req.ClientID,
		Title:    req.Title,
		Body:     req.Body,
		Status:   domain.DocumentDraft,
	}
	if err := h.docRepo.Create(d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *DocumentHandler) Send(c *gin.Context) {
	d, ok := h.ownedDoc(c)
	if !ok {
		return
	}
	if d.Status != domain.DocumentDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "document already " + d.Status})
		return
	}
	d.Status = domain.DocumentSent
	if err := h.docRepo.Update(d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, d)
}

type signDocumentRequest struct {
	SignerName string `json:"signer_name" binding:"required"`
}

// Sign captures the client's signature on a sent document. Reached from the
// client-facing signing page; the document ID doubles as its access token
// in this version (no separate capability link).
func (h *DocumentHandler) Sign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	var req signDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := h.docRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	if d.Status != domain.DocumentSent {
		c.JSON(http.StatusConflict, gin.H{"error": "document is not awaiting signature"})
		return
	}
	now := time.Now()
	d.Status = domain.DocumentSigned
	d.SignerName = req.SignerName
	d.SignatureIP = c.ClientIP()
	d.SignedAt = &now
	if err := h.docRepo.Update(d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	_ = h.notifSvc.NotifyDocumentSigned(d.UserID, d.ID, req.SignerName)
	c.JSON(http.StatusOK, d)
}

func (h *DocumentHandler) ListForClient(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || clientID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}
	if _, err := h.clientRepo.GetOwned(uint(clientID), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	list, err := h.docRepo.ListByClientID(uint(clientID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": list})
}

func (h *DocumentHandler) ownedDoc(c *gin.Context) (*models.Document, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return nil, false
	}
	d, err := h.docRepo.GetOwned(uint(id), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return nil, false
	}
	return d, true
}
