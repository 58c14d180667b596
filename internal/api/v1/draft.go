package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tallerhq/facturas/internal/api/dto"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/service"
)

type DraftHandler struct {
	service service.DraftService
	log     *logger.Logger
}

func NewDraftHandler(
	service service.DraftService,
	log *logger.Logger,
) *DraftHandler {
	return &DraftHandler{
		service: service,
		log:     log,
	}
}

// @Summary Announce a draft
// @Description Announce that the caller is composing a new invoice
// @Tags Drafts
// @Accept json
// @Produce json
// @Param draft body dto.RegisterDraftRequest true "Draft"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /drafts [post]
func (h *DraftHandler) Register(c *gin.Context) {
	var req dto.RegisterDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List drafts
// @Description List all announced drafts in progress
// @Tags Drafts
// @Accept json
// @Produce json
// @Success 200 {array} dto.DraftResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /drafts [get]
func (h *DraftHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Clear a draft
// @Description Remove the user's draft announcement
// @Tags Drafts
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /drafts/{user_id} [delete]
func (h *DraftHandler) Clear(c *gin.Context) {
	userID, err := parseInt64Param(c, "user_id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
