package types

type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthStatus is rendered by the index page.
type HealthStatus struct {
	Status   string
	Provider string
	Model    string
}
