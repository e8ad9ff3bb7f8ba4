package responses

// HealthResponse is the health check response
type HealthResponse struct {
	Status string `json:"status"`
}
