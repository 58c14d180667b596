package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tallerhq/facturas/internal/api/dto"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/service"
)

type LockHandler struct {
	service service.LockService
	log     *logger.Logger
}

func NewLockHandler(
	service service.LockService,
	log *logger.Logger,
) *LockHandler {
	return &LockHandler{
		service: service,
		log:     log,
	}
}

// @Summary Acquire an edit lock
// @Description Acquire or refresh the edit lock on an invoice
// @Tags Locks
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param lock body dto.AcquireLockRequest true "Lock"
// @Success 200 {object} dto.LockResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/lock [post]
func (h *LockHandler) Acquire(c *gin.Context) {
	invoiceID, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.AcquireLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Acquire(c.Request.Context(), invoiceID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Release an edit lock
// @Description Release the edit lock if held by the caller
// @Tags Locks
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param lock body dto.ReleaseLockRequest true "Lock"
// @Success 200 {object} dto.LockResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/lock [delete]
func (h *LockHandler) Release(c *gin.Context) {
	invoiceID, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.ReleaseLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Release(c.Request.Context(), invoiceID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get lock status
// @Description Get the current lock status of an invoice
// @Tags Locks
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.LockStatusResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/lock [get]
func (h *LockHandler) Status(c *gin.Context) {
	invoiceID, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.Status(c.Request.Context(), invoiceID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
