package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pmupro/internal/middleware"
	"pmupro/internal/repository"
	"pmupro/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	cloud      cloudinary.Client
	clientRepo *repository.ClientRepository
}

func NewUploadHandler(cloud cloudinary.Client, clientRepo *repository.ClientRepository) *UploadHandler {
	return &UploadHandler{cloud: cloud, clientRepo: clientRepo}
}

// UploadClientPhoto accepts a multipart "file" and attaches it to the client record.
func (h *UploadHandler) UploadClientPhoto(c *gin.Context) {
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
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer f.Close()
	publicID := fmt.Sprintf("client_%d_%d", client.ID, time.Now().Unix())
	url, thumb, err := h.cloud.UploadImage(c.Request.Context(), f, "clients", publicID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	client.PhotoURL = url
	if err := h.clientRepo.Update(client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "thumbnail_url": thumb})
}
