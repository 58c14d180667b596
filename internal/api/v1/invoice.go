package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tallerhq/facturas/internal/api/dto"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/service"
	"github.com/tallerhq/facturas/internal/types"
)

type InvoiceHandler struct {
	service service.InvoiceService
	log     *logger.Logger
}

func NewInvoiceHandler(
	service service.InvoiceService,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create an invoice
// @Description Create a quote or invoice with its line items
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an invoice
// @Description Get an invoice with its line items and payment totals
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List invoices
// @Description List invoices with optional filtering
// @Tags Invoices
// @Accept json
// @Produce json
// @Param filter query types.InvoiceFilter false "Filter"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var filter types.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListInvoices(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an invoice
// @Description Replace the editable fields of an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Invoice"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateInvoice(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update invoice status
// @Description Patch the document type or workflow statuses
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param status body dto.UpdateInvoiceStatusRequest true "Status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateInvoiceStatus(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an invoice
// @Description Delete an invoice and its line items
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	userID, err := parseInt64Query(c, "user_id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeleteInvoice(c.Request.Context(), id, userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
