package http

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"months"`
	Message string                 `json:"message,omitempty" example:"months is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
