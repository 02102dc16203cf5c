package handler

import (
	"net/http"
	"strconv"

	"pmupro/internal/models"
	"pmupro/internal/repository"

	"github.com/gin-gonic/gin"
)

// ServiceHandler manages the studio procedure catalog. Writes are admin-only
// (enforced by the router); reads are available to all staff.
type ServiceHandler struct {
	serviceRepo *repository.ServiceRepository
}

func NewServiceHandler(serviceRepo *repository.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{serviceRepo: serviceRepo}
}

type serviceRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	PriceCents     int64  `json:"price_cents" binding:"required"`
	DurationMin    int    `json:"duration_min"`
	DepositPercent int    `json:"deposit_percent"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s := &models.StudioService{
		Name:           req.Name,
		Description:    req.Description,
		PriceCents:     req.PriceCents,
		DurationMin:    req.DurationMin,
		DepositPercent: req.DepositPercent,
		Active:         true,
	}
	if s.DurationMin <= 0 {
		s.DurationMin = 120
	}
	if s.DepositPercent <= 0 || s.DepositPercent > 100 {
		s.DepositPercent = 30
	}
	if err := h.serviceRepo.Create(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.serviceRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": list})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}
	s, err := h.serviceRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.Name = req.Name
	s.Description = req.Description
	s.PriceCents = req.PriceCents
	if req.DurationMin > 0 {
		s.DurationMin = req.DurationMin
	}
	if req.DepositPercent > 0 && req.DepositPercent <= 100 {
		s.DepositPercent = req.DepositPercent
	}
	if err := h.serviceRepo.Update(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ServiceHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}
	if err := h.serviceRepo.Deactivate(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deactivate failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
