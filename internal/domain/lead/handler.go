package lead

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotewizard/internal/domain/quote"
	"quotewizard/internal/pkg/response"
	"quotewizard/internal/pkg/validator"
)

// Submitter runs the submission pipeline
type Submitter interface {
	Submit(ctx context.Context, req quote.QuoteRequest) (*Submission, error)
}

// Handler handles lead HTTP requests
type Handler struct {
	service   *Service
	submitter Submitter
}

// NewHandler creates lead handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, submitter: service}
}

// SubmitQuote handles POST /api/v1/quotes (public)
// @Summary Submit quote request
// @Description Public endpoint that stores a finished wizard and notifies the sales team
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body SubmitQuoteRequest true "Quote request"
// @Success 201 {object} response.Response{data=SubmitQuoteResponse}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /quotes [post]
func (h *Handler) SubmitQuote(c *gin.Context) {
	var req SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	qr, err := req.ToQuoteRequest()
	if err != nil {
		writeSubmitError(c, err)
		return
	}

	sub, err := h.submitter.Submit(c.Request.Context(), qr)
	if err != nil {
		writeSubmitError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, SubmitQuoteResponse{
		Lead:             sub.Lead,
		Summary:          sub.Summary,
		NotificationSent: sub.NotificationSent(),
	})
}

func writeSubmitError(c *gin.Context, err error) {
	var verr *quote.ValidationError
	var perr *PersistenceError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", verr.Message, verr)
	case errors.Is(err, quote.ErrOverrideUnavailable):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(),
			quote.ValidationError{Step: quote.StepBudget, Field: "budget_override", Message: err.Error()})
	case errors.As(err, &perr):
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Could not save your request, please try again")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// GetQuote handles GET /api/v1/admin/quotes/:id
// @Summary Get quote request by ID
// @Tags Admin Quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Response{data=Lead}
// @Failure 404 {object} response.Response
// @Router /admin/quotes/{id} [get]
func (h *Handler) GetQuote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lead, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Quote request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"lead":    lead,
		"summary": Summarize(lead),
	})
}

// ListQuotes handles GET /api/v1/admin/quotes
// @Summary List quote requests
// @Description Newest first. Without status, limit or offset every lead is returned and limit is 0.
// @Tags Admin Quotes
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(Pendente, Em Andamento, Finalizada, Cancelada)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response{data=ListResponse}
// @Failure 400 {object} response.Response
// @Router /admin/quotes [get]
func (h *Handler) ListQuotes(c *gin.Context) {
	if !paged(c) {
		leads, err := h.service.ListAll(c.Request.Context())
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
			return
		}
		if leads == nil {
			leads = []Lead{}
		}
		response.Success(c, http.StatusOK, ListResponse{Leads: leads, Total: int64(len(leads))})
		return
	}

	var f Filter
	if s := c.Query("status"); s != "" {
		status := Status(s)
		f.Status = &status
	}

	f.Limit = 50
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			f.Limit = v
		}
	}

	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			f.Offset = v
		}
	}

	leads, total, err := h.service.ListLeads(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown status")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if leads == nil {
		leads = []Lead{}
	}

	response.Success(c, http.StatusOK, ListResponse{
		Leads:  leads,
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

// UpdateStatus handles PATCH /api/v1/admin/quotes/:id/status
// @Summary Update quote request status
// @Tags Admin Quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/quotes/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown status")
		case errors.Is(err, ErrLeadNotFound):
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Quote request not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// GetStats handles GET /api/v1/admin/quotes/stats
// @Summary Quote request statistics
// @Tags Admin Quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=StatsResponse}
// @Router /admin/quotes/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	counts, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	response.Success(c, http.StatusOK, StatsResponse{Total: total, ByStatus: counts})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid quote request ID")
		return uuid.Nil, false
	}
	return id, true
}

// paged reports whether the request asked for a filtered or paged listing
func paged(c *gin.Context) bool {
	q := c.Request.URL.Query()
	return q.Has("status") || q.Has("limit") || q.Has("offset")
}
