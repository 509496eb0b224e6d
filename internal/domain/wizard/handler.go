package wizard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotewizard/internal/domain/quote"
	"quotewizard/internal/pkg/response"
	"quotewizard/internal/pkg/validator"
)

// Handler serves the step definitions browser front ends render from
type Handler struct {
	steps *quote.Registry
}

func NewHandler(steps *quote.Registry) *Handler {
	return &Handler{steps: steps}
}

type CatalogResponse struct {
	Objectives quote.Catalog      `json:"objectives"`
	Inventory  quote.Catalog      `json:"inventory"`
	Budget     quote.BudgetSlider `json:"budget"`
}

type SlideRequest struct {
	Value int `json:"value" validate:"gte=0"`
}

type SlideResponse struct {
	Value       int  `json:"value"`
	Step        int  `json:"step"`
	CanOverride bool `json:"can_override"`
}

// GetSteps godoc
// @Summary Wizard steps
// @Tags Quote Wizard
// @Produce json
// @Success 200 {object} response.Response
// @Router /quote/steps [get]
func (h *Handler) GetSteps(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"steps": h.steps.Steps(),
		"total": h.steps.Len(),
	})
}

// GetCatalog godoc
// @Summary Objective and inventory catalogs with budget slider bounds
// @Tags Quote Wizard
// @Produce json
// @Success 200 {object} response.Response{data=CatalogResponse}
// @Router /quote/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	response.Success(c, http.StatusOK, CatalogResponse{
		Objectives: quote.Objectives,
		Inventory:  quote.Inventory,
		Budget:     quote.DefaultSlider,
	})
}

// SlideBudget godoc
// @Summary Snap a raw slider value to its tier step
// @Tags Quote Wizard
// @Accept json
// @Produce json
// @Param request body SlideRequest true "Raw slider value"
// @Success 200 {object} response.Response{data=SlideResponse}
// @Failure 400 {object} response.Response
// @Router /quote/budget/slide [post]
func (h *Handler) SlideBudget(c *gin.Context) {
	var req SlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	v := quote.RoundSlider(req.Value)
	response.Success(c, http.StatusOK, SlideResponse{
		Value:       v,
		Step:        quote.StepFor(v),
		CanOverride: v >= quote.SliderMax,
	})
}

// RegisterPublicRoutes registers the wizard definition routes
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	q := r.Group("/quote")
	{
		q.GET("/steps", h.GetSteps)
		q.GET("/catalog", h.GetCatalog)
		q.POST("/budget/slide", h.SlideBudget)
	}
}
