package httpdto

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func NewErrorResponse(err string, code string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   err,
		Code:    code,
	}
}

// WithDetail attaches the underlying cause. Only used outside release mode.
func (r ErrorResponse) WithDetail(detail string) ErrorResponse {
	r.Detail = detail
	return r
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"`
}

const (
	StorageConnected    = "connected"
	StorageDisconnected = "disconnected"
)
