package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tallerhq/facturas/internal/api/dto"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/service"
)

type PresenceHandler struct {
	service service.PresenceService
	log     *logger.Logger
}

func NewPresenceHandler(
	service service.PresenceService,
	log *logger.Logger,
) *PresenceHandler {
	return &PresenceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Register a heartbeat
// @Description Register a heartbeat for the calling user
// @Tags Presence
// @Accept json
// @Produce json
// @Param heartbeat body dto.HeartbeatRequest true "Heartbeat"
// @Success 200 {object} dto.HeartbeatResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /presence/heartbeat [post]
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	var req dto.HeartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Heartbeat(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List active users
// @Description List users seen within the active window
// @Tags Presence
// @Accept json
// @Produce json
// @Success 200 {array} dto.ActiveUserResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /presence/active [get]
func (h *PresenceHandler) ListActive(c *gin.Context) {
	resp, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
