package handler

import (
	"net/http"
	"strconv"

	"pmupro/internal/middleware"
	"pmupro/internal/repository"
	"pmupro/pkg/vision"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler runs the AI skin/pigment assessment for a client photo and
// stores the result on the client record.
type AnalysisHandler struct {
	analyzer   *vision.Analyzer
	clientRepo *repository.ClientRepository
}

func NewAnalysisHandler(analyzer *vision.Analyzer, clientRepo *repository.ClientRepository) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, clientRepo: clientRepo}
}

type analyzeRequest struct {
	PhotoURL string `json:"photo_url"` // optional override; defaults to the client's photo
}

func (h *AnalysisHandler) AnalyzeClient(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || clientID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}
	client, err := h.clientRepo.GetOwned(uint(clientID), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	var req analyzeRequest
	_ = c.ShouldBindJSON(&req)
	photoURL := req.PhotoURL
	if photoURL == "" {
		photoURL = client.PhotoURL
	}
	if photoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no photo to analyze"})
		return
	}
	result, err := h.analyzer.AnalyzeSkin(c.Request.Context(), photoURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed"})
		return
	}
	if err := h.clientRepo.SaveAnalysis(client.ID, result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": result})
}
