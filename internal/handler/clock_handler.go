package handler

import (
	"errors"
	"net/http"

	"pmupro/internal/middleware"
	"pmupro/internal/service"

	"github.com/gin-gonic/gin"
)

type ClockHandler struct {
	clockSvc *service.ClockService
}

func NewClockHandler(clockSvc *service.ClockService) *ClockHandler {
	return &ClockHandler{clockSvc: clockSvc}
}

type clockInRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

func (h *ClockHandler) ClockIn(c *gin.Context) {
	var req clockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.clockSvc.ClockIn(middleware.GetUserID(c), req.Latitude, req.Longitude)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOutsideGeofence):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyClockedIn):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "clock in failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ClockHandler) ClockOut(c *gin.Context) {
	entry, err := h.clockSvc.ClockOut(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotClockedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clock out failed"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ClockHandler) History(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.clockSvc.History(middleware.GetUserID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": list})
}
