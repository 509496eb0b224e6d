package notification

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quotewizard/internal/domain/lead"
	"quotewizard/internal/pkg/response"
)

// Handler serves admin PDF downloads and the live event feed
type Handler struct {
	leads    LeadSource
	renderer *Renderer
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates the handler. checkOrigin guards websocket upgrades; nil
// allows same-origin requests only.
func NewHandler(leads LeadSource, renderer *Renderer, hub *Hub, checkOrigin func(r *http.Request) bool) *Handler {
	return &Handler{
		leads:    leads,
		renderer: renderer,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// DownloadPDF godoc
// @Summary Download quote request summary as PDF
// @Tags Admin Quotes
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Lead ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Response
// @Router /admin/quotes/{id}/pdf [get]
func (h *Handler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid quote request ID")
		return
	}

	l, err := h.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, lead.ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Quote request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	data, err := h.renderer.PDF(l)
	if err != nil {
		log.Printf("quote_pdf lead_id=%s error=%q", id, err.Error())
		response.Error(c, http.StatusInternalServerError, "PDF_ERROR", "Could not render PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, DownloadName(l)))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Live godoc
// @Summary Live quote request events
// @Description Websocket feed of lead_created and lead_status_changed events. Pass the token as ?token=
// @Tags Admin Quotes
// @Router /admin/ws [get]
func (h *Handler) Live(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("admin_ws upgrade failed: %v", err)
		return
	}
	h.hub.ServeWS(conn, c.GetString("admin_id"))
}

// RegisterAdminRoutes registers admin notification routes
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/quotes/:id/pdf", h.DownloadPDF)
	r.GET("/ws", h.Live)
}
