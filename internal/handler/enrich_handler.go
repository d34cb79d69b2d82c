package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"enrichly/internal/middleware"
	"enrichly/internal/service"
)

// EnrichHandler handles single-product enrichment endpoints.
type EnrichHandler struct {
	enrichmentService service.EnrichmentService
}

// NewEnrichHandler creates a new EnrichHandler.
func NewEnrichHandler(enrichmentService service.EnrichmentService) *EnrichHandler {
	return &EnrichHandler{enrichmentService: enrichmentService}
}

// Enrich handles POST /api/v1/enrich
// @Summary Enrich a single product
// @Description Extract attribute values for a manufacturer part number via grounded LLM search, optionally with a product image lookup
// @Tags enrichment
// @Accept json
// @Produce json
// @Param request body EnrichmentRequest true "Product to enrich"
// @Success 200 {object} Response{data=domain.EnrichmentRecord} "Enriched product data"
// @Failure 400 {object} ErrorResponseBody "Missing mpn or malformed body"
// @Failure 500 {object} ErrorResponseBody "Enrichment failed"
// @Router /enrich [post]
func (h *EnrichHandler) Enrich(c *gin.Context) {
	var req EnrichmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	includeImages := true
	if req.IncludeImages != nil {
		includeImages = *req.IncludeImages
	}

	record, err := h.enrichmentService.Enrich(c.Request.Context(), &service.EnrichInput{
		MPN:                 req.MPN,
		Manufacturer:        req.Manufacturer,
		Category:            req.Category,
		Subcategory:         req.Subcategory,
		RequestedAttributes: req.AttributesToExtract,
		IncludeImages:       includeImages,
		RequestID:           middleware.GetRequestID(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}
