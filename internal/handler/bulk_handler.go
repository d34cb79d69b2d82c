package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"enrichly/internal/service"
)

// BulkEnrichHandler handles bulk enrichment endpoints.
type BulkEnrichHandler struct {
	bulkService service.BulkService
}

// NewBulkEnrichHandler creates a new BulkEnrichHandler.
func NewBulkEnrichHandler(bulkService service.BulkService) *BulkEnrichHandler {
	return &BulkEnrichHandler{bulkService: bulkService}
}

// BulkEnrich handles POST /api/v1/bulk-enrich
// @Summary Bulk enrich products from a file
// @Description Upload a CSV or XLSX product file; rows are enriched in the background and written to an output artifact
// @Tags enrichment
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file with a mfg_part_number column"
// @Param include_images formData bool false "Include product image lookups" default(false)
// @Param batch_size formData int false "Rows enriched concurrently per window" default(50)
// @Success 202 {object} Response{data=BulkEnrichmentStarted} "Bulk task accepted"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type, or missing column"
// @Failure 500 {object} ErrorResponseBody "Could not start bulk enrichment"
// @Router /bulk-enrich [post]
func (h *BulkEnrichHandler) BulkEnrich(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	includeImages, err := strconv.ParseBool(c.DefaultPostForm("include_images", "false"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "include_images must be a boolean")
		return
	}

	batchSize, err := strconv.Atoi(c.DefaultPostForm("batch_size", "50"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "batch_size must be an integer")
		return
	}

	result, err := h.bulkService.StartBulkEnrichment(c.Request.Context(), &service.BulkEnrichInput{
		Filename:      header.Filename,
		File:          file,
		IncludeImages: includeImages,
		BatchSize:     batchSize,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, BulkEnrichmentStarted{
		Status:               "processing",
		TaskID:               result.TaskID,
		Message:              fmt.Sprintf("Processing %d rows in the background", result.TotalRows),
		TotalRows:            result.TotalRows,
		EstimatedTimeSeconds: result.EstimatedTimeSeconds,
	})
}
