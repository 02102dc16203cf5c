package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pmupro/config"
	"pmupro/internal/middleware"
	"pmupro/internal/models"
	"pmupro/internal/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

// CalendarOAuthHandler connects a staff member's Google Calendar. The state
// parameter carries the user ID signed into the session that initiated the
// connect flow; event sync itself happens client-side against the stored token.
type CalendarOAuthHandler struct {
	cfg          *config.Config
	calendarRepo *repository.CalendarRepository
}

func NewCalendarOAuthHandler(cfg *config.Config, calendarRepo *repository.CalendarRepository) *CalendarOAuthHandler {
	return &CalendarOAuthHandler{cfg: cfg, calendarRepo: calendarRepo}
}

func (h *CalendarOAuthHandler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.cfg.OAuth.GoogleClientID,
		ClientSecret: h.cfg.OAuth.GoogleClientSecret,
		RedirectURL:  h.cfg.OAuth.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar.events",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
}

// Connect returns the consent URL for the authenticated user.
func (h *CalendarOAuthHandler) Connect(c *gin.Context) {
	if h.cfg.OAuth.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}
	userID := middleware.GetUserID(c)
	state := h.stateForUser(userID)
	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	c.JSON(http.StatusOK, gin.H{"auth_url": url})
}

type googleUserInfo struct {
	Email string `json:"email"`
}

// Callback exchanges the code and stores the tokens for the user in state.
func (h *CalendarOAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}
	userID, ok := h.userFromState(state)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}
	ctx := c.Request.Context()
	conf := h.oauth2Config()
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exchange failed"})
		return
	}
	var email string
	resp, err := conf.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err == nil && resp.StatusCode == http.StatusOK {
		var info googleUserInfo
		if json.NewDecoder(resp.Body).Decode(&info) == nil {
			email = info.Email
		}
		resp.Body.Close()
	}
	account := &models.CalendarAccount{
		UserID:       userID,
		Provider:     "GOOGLE",
		Email:        email,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		account.TokenExpiry = &expiry
	}
	if err := h.calendarRepo.Upsert(account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true, "email": email})
}

// Status reports whether the user has a connected calendar.
func (h *CalendarOAuthHandler) Status(c *gin.Context) {
	account, err := h.calendarRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"connected": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true, "provider": account.Provider, "email": account.Email})
}

// Disconnect removes the stored tokens.
func (h *CalendarOAuthHandler) Disconnect(c *gin.Context) {
	if err := h.calendarRepo.Delete(middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "disconnect failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": false})
}

// stateForUser binds the OAuth state to the initiating user: "<id>.<hmac>".
func (h *CalendarOAuthHandler) stateForUser(userID uint) string {
	id := strconv.FormatUint(uint64(userID), 10)
	return id + "." + h.signState(id)
}

func (h *CalendarOAuthHandler) userFromState(state string) (uint, bool) {
	parts := strings.SplitN(state, ".", 2)
	if len(parts) != 2 {
		return 0, false
	}
	if !hmac.Equal([]byte(parts[1]), []byte(h.signState(parts[0]))) {
		return 0, false
	}
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *CalendarOAuthHandler) signState(id string) string {
	mac := hmac.New(sha256.New, []byte(h.cfg.JWT.AccessSecret))
	mac.Write([]byte("calendar-oauth:" + id))
	return hex.EncodeToString(mac.Sum(nil))
}
