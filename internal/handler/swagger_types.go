package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// EnrichmentRequest represents the single-product enrichment request body.
type EnrichmentRequest struct {
	MPN                 string   `json:"mpn" binding:"required" example:"QO120"`
	Manufacturer        string   `json:"manufacturer" example:"Square D"`
	Category            string   `json:"category" example:"Electrical"`
	Subcategory         string   `json:"subcategory" example:"Circuit Breakers"`
	AttributesToExtract []string `json:"attributes_to_extract" example:"Voltage Rating,Amperage Rating"`
	IncludeImages       *bool    `json:"include_images" example:"true"`
}

// --- Response Types ---

// BulkEnrichmentStarted represents the accepted bulk enrichment task.
type BulkEnrichmentStarted struct {
	Status               string `json:"status" example:"processing"`
	TaskID               string `json:"task_id" example:"task-550e8400-e29b-41d4-a716-446655440000"`
	Message              string `json:"message" example:"Processing 120 rows in the background"`
	TotalRows            int    `json:"total_rows" example:"120"`
	EstimatedTimeSeconds int    `json:"estimated_time_seconds" example:"240"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string  `json:"status" example:"healthy"`
	Timestamp float64 `json:"timestamp" example:"1724567890.123"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
	Meta    *Meta     `json:"meta,omitempty"`
}
