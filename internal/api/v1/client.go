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

type ClientHandler struct {
	service service.ClientService
	log     *logger.Logger
}

func NewClientHandler(
	service service.ClientService,
	log *logger.Logger,
) *ClientHandler {
	return &ClientHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a client
// @Description Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClient(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a client
// @Description Get a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List clients
// @Description List clients
// @Tags Clients
// @Accept json
// @Produce json
// @Param filter query types.ClientFilter false "Filter"
// @Success 200 {object} dto.ListClientsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	var filter types.ClientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListClients(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a client
// @Description Update a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param client body dto.UpdateClientRequest true "Client"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateClient(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a client
// @Description Delete a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
