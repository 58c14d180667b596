package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tallerhq/facturas/internal/api/dto"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/service"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(
	service service.PaymentService,
	log *logger.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// @Summary Record a payment
// @Description Record a payment against an invoice
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param payment body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	invoiceID, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RecordPayment(c.Request.Context(), invoiceID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List payments
// @Description List payments recorded against an invoice
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	invoiceID, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListPayments(c.Request.Context(), invoiceID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a payment
// @Description Delete a payment recorded against an invoice
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/payments/{payment_id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	invoiceID, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	paymentID, err := parseInt64Param(c, "payment_id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeletePayment(c.Request.Context(), invoiceID, paymentID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
