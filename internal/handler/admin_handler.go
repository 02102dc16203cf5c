package handler

import (
	"net/http"
	"strconv"

	"pmupro/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminHandler is the back-office surface: staff management, global deposit
// listing, and the audit trail.
type AdminHandler struct {
	userRepo    *repository.UserRepository
	depositRepo *repository.DepositRepository
	auditRepo   *repository.AuditLogRepository
}

func NewAdminHandler(userRepo *repository.UserRepository, depositRepo *repository.DepositRepository, auditRepo *repository.AuditLogRepository) *AdminHandler {
	return &AdminHandler{userRepo: userRepo, depositRepo: depositRepo, auditRepo: auditRepo}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.userRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list})
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userRepo.SetActive(uint(id), *req.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) ListDeposits(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.depositRepo.ListAll(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": list})
}

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.auditRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit_logs": list})
}
