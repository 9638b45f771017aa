package handlers

import (
	"net/http"

	"podbooker/models"
	"podbooker/services/calendar"
	"podbooker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// AuthHandler runs the Google OAuth connect flow for hosts. Thin I/O
// wrapper: the scheduling core only ever sees the resulting token store
// state.
type AuthHandler struct {
	OAuth  *oauth2.Config
	Tokens calendar.TokenStore
	Hosts  []models.Host
	Logger *zap.Logger
}

func NewAuthHandler(oauthCfg *oauth2.Config, tokens calendar.TokenStore, hosts []models.Host, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{OAuth: oauthCfg, Tokens: tokens, Hosts: hosts, Logger: logger}
}

func (h *AuthHandler) hostByID(id string) (models.Host, bool) {
	for _, host := range h.Hosts {
		if host.ID == id {
			return host, true
		}
	}
	return models.Host{}, false
}

// GoogleAuthHandler redirects the host to the Google consent screen. The
// hostId rides through the flow in the state parameter.
func (h *AuthHandler) GoogleAuthHandler(c *gin.Context) {
	hostID := c.Query("hostId")
	if hostID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing hostId query parameter.", "")
		return
	}
	if _, ok := h.hostByID(hostID); !ok {
		utils.JSONError(c, http.StatusNotFound, "Unknown host.", hostID)
		return
	}

	// offline access plus a forced consent screen so a refresh token is
	// always issued.
	authURL := h.OAuth.AuthCodeURL(hostID,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	c.Redirect(http.StatusFound, authURL)
}

// GoogleCallbackHandler exchanges the authorization code and stores the
// host's token.
func (h *AuthHandler) GoogleCallbackHandler(c *gin.Context) {
	code := c.Query("code")
	hostID := c.Query("state")

	host, ok := h.hostByID(hostID)
	if !ok {
		h.Logger.Error("oauth callback for unknown host", zap.String("hostId", hostID))
		utils.JSONError(c, http.StatusNotFound, "Unknown host.", hostID)
		return
	}

	tok, err := h.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		h.Logger.Error("token exchange failed", zap.String("hostId", hostID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Authentication failed", "")
		return
	}

	if err := h.Tokens.Save(c.Request.Context(), hostID, tok); err != nil {
		h.Logger.Error("token save failed", zap.String("hostId", hostID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Authentication failed", "")
		return
	}

	h.Logger.Info("host calendar connected", zap.String("hostId", hostID), zap.String("host", host.Name))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<script>window.close();</script>"))
}
