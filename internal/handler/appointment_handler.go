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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	apptRepo    *repository.AppointmentRepository
	clientRepo  *repository.ClientRepository
	serviceRepo *repository.ServiceRepository
	notifSvc    *service.NotificationService
}

func NewAppointmentHandler(
	apptRepo *repository.AppointmentRepository,
	clientRepo *repository.ClientRepository,
	serviceRepo *repository.ServiceRepository,
	notifSvc *service.NotificationService,
) *AppointmentHandler {
	return &AppointmentHandler{apptRepo: apptRepo, clientRepo: clientRepo, serviceRepo: serviceRepo, notifSvc: notifSvc}
}

type createAppointmentRequest struct {
	ClientID  uint      `json:"client_id" binding:"required"`
	ServiceID uint      `json:"service_id" binding:"required"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	Notes     string    `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	client, err := h.clientRepo.GetOwned(req.ClientID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	svc, err := h.serviceRepo.GetByID(req.ServiceID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	endsAt := req.StartsAt.Add(time.Duration(svc.DurationMin) * time.Minute)
	overlap, err := h.apptRepo.HasOverlap(userID, req.StartsAt, endsAt, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "availability check failed"})
		return
	}
	if overlap {
		c.JSON(http.StatusConflict, gin.H{"error": "time slot is taken"})
		return
	}
	a := &models.Appointment{
		Reference:  uuid.NewString(),
		UserID:     userID,
		ClientID:   req.ClientID,
		ServiceID:  req.ServiceID,
		StartsAt:   req.StartsAt,
		EndsAt:     endsAt,
		Status:     domain.AppointmentScheduled,
		PriceCents: svc.PriceCents,
		Notes:      req.Notes,
	}
	if err := h.apptRepo.Create(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	_ = h.notifSvc.NotifyAppointmentBooked(userID, a.ID, client.FullName())
	c.JSON(http.StatusCreated, a)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		from, _ = time.Parse(time.RFC3339, v)
	}
	if v := c.Query("to"); v != "" {
		to, _ = time.Parse(time.RFC3339, v)
	}
	list, err := h.apptRepo.ListByUserID(middleware.GetUserID(c), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": list})
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}
	var req updateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case domain.AppointmentCompleted, domain.AppointmentCancelled, domain.AppointmentNoShow:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	a, err := h.apptRepo.GetOwned(uint(id), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}
	if a.Status != domain.AppointmentScheduled {
		c.JSON(http.StatusConflict, gin.H{"error": "appointment already " + a.Status})
		return
	}
	a.Status = req.Status
	if err := h.apptRepo.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, a)
}
