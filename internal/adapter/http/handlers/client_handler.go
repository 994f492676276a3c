package handlers

import (
	"errors"
	"net/http"

	request "supportforge/internal/adapter/http/dto/request"
	response "supportforge/internal/adapter/http/dto/response"
	"supportforge/internal/usecase"
	"supportforge/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidClientPayload = pkg.NewDomainErrorSimple("INVALID_CLIENT_INPUT", "Invalid client payload", http.StatusBadRequest)

// ClientHandler handles HTTP requests for billing clients.

type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

// CreateClient godoc
//
//	@Summary	Register a billing client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Param		client	body	request.CreateClientRequest	true	"client to create"
//	@Success	201	{object}	response.ClientResponse
//	@Router		/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var payload request.CreateClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidClientPayload.HTTPStatus, errInvalidClientPayload.ToHTTPError())
		return
	}

	client, err := h.usecase.Create(c.Request.Context(), usecase.CreateClientInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Company: payload.Company,
	})
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromClient(client))
}

// GetClient godoc
//
//	@Summary	Fetch a client by id
//	@Tags		clients
//	@Produce	json
//	@Param		id	path	string	true	"client id"
//	@Success	200	{object}	response.ClientResponse
//	@Router		/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

// ListClients godoc
//
//	@Summary	List all clients
//	@Tags		clients
//	@Produce	json
//	@Success	200	{object}	response.ClientListResponse
//	@Router		/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromClients(clients))
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
