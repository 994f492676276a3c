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

var errInvalidInvoicePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)

// InvoiceHandler handles HTTP requests for the invoice lifecycle.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// CreateInvoice godoc
//
//	@Summary	Create an invoice with its line items
//	@Tags		invoices
//	@Accept		json
//	@Produce	json
//	@Param		invoice	body	request.CreateInvoiceRequest	true	"invoice to create"
//	@Success	201	{object}	response.InvoiceResponse
//	@Router		/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	res, err := h.usecase.Create(c.Request.Context(), usecase.CreateInvoiceInput{
		ClientID: payload.ResolveClientID(),
		DueDate:  payload.DueDate,
		Items:    payload.ToItems(),
		Notify:   payload.Notify,
	})
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromInvoiceResult(res.Invoice, res.NotificationSent))
}

// GetInvoice godoc
//
//	@Summary	Fetch a single invoice by id
//	@Tags		invoices
//	@Produce	json
//	@Param		id	path	string	true	"invoice id"
//	@Success	200	{object}	response.InvoiceResponse
//	@Router		/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// GetInvoiceByNumber godoc
//
//	@Summary	Fetch a single invoice by its business number
//	@Tags		invoices
//	@Produce	json
//	@Param		number	path	string	true	"invoice number"
//	@Success	200	{object}	response.InvoiceResponse
//	@Router		/invoices/number/{number} [get]
func (h *InvoiceHandler) GetInvoiceByNumber(c *gin.Context) {
	inv, err := h.usecase.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// ListInvoices godoc
//
//	@Summary	List invoices, optionally filtered by status and client
//	@Tags		invoices
//	@Produce	json
//	@Param		status		query	string	false	"status filter"
//	@Param		client_id	query	string	false	"client filter"
//	@Param		limit		query	int		false	"page size"
//	@Param		cursor		query	string	false	"pagination cursor"
//	@Success	200	{object}	response.InvoicePageResponse
//	@Router		/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var query struct {
		Status   string `form:"status"`
		ClientID string `form:"client_id"`
		Limit    int32  `form:"limit"`
		Cursor   string `form:"cursor"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	page, err := h.usecase.List(c.Request.Context(), usecase.ListInvoicesInput{
		Status:   query.Status,
		ClientID: query.ClientID,
		Limit:    query.Limit,
		Cursor:   query.Cursor,
	})
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoicePage(page))
}

// SetInvoiceStatus godoc
//
//	@Summary	Transition an invoice to a new status
//	@Tags		invoices
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string							true	"invoice id"
//	@Param		status	body	request.SetInvoiceStatusRequest	true	"target status"
//	@Success	200	{object}	response.InvoiceResponse
//	@Router		/invoices/{id}/status [patch]
func (h *InvoiceHandler) SetInvoiceStatus(c *gin.Context) {
	var payload request.SetInvoiceStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	res, err := h.usecase.SetStatus(c.Request.Context(), c.Param("id"), payload.Status, payload.PaidDate)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoiceResult(res.Invoice, res.NotificationSent))
}

// ReplaceInvoiceItems godoc
//
//	@Summary	Replace the full line-item set and recompute the amount
//	@Tags		invoices
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string								true	"invoice id"
//	@Param		items	body	request.ReplaceInvoiceItemsRequest	true	"replacement items"
//	@Success	200	{object}	response.InvoiceResponse
//	@Router		/invoices/{id}/items [put]
func (h *InvoiceHandler) ReplaceInvoiceItems(c *gin.Context) {
	var payload request.ReplaceInvoiceItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	inv, err := h.usecase.ReplaceItems(c.Request.Context(), c.Param("id"), payload.ToItems())
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// GetStatusTotal godoc
//
//	@Summary	Sum invoice amounts for a stored status
//	@Tags		invoices
//	@Produce	json
//	@Param		status	path	string	true	"status"
//	@Success	200	{object}	response.StatusTotalResponse
//	@Router		/invoices/totals/{status} [get]
func (h *InvoiceHandler) GetStatusTotal(c *gin.Context) {
	status := c.Param("status")
	total, err := h.usecase.TotalByStatus(c.Request.Context(), status)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.StatusTotalResponse{
		Status: status,
		Total:  total.StringFixed(2),
	})
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Status must be pending, paid, overdue or cancelled", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceCancelled):
		return pkg.NewDomainErrorSimple("INVOICE_CANCELLED", "Invoice is cancelled and cannot change status", http.StatusConflict)
	case errors.Is(err, usecase.ErrNumberExhausted):
		// Rare operational fault; no partial state was committed, retrying the
		// whole call is safe.
		return pkg.NewDomainError("NUMBER_GENERATION_EXHAUSTED", "Could not complete the operation, please retry", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
