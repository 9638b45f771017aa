package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHostsHandler reports the host roster with connection status.
func (h *BookingHandler) GetHostsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.HostStatuses(c.Request.Context()))
}
