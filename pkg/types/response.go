package types

type SuccessEnvelope struct {
	Data any  `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries listing counts alongside the payload (shown X of Y).
type Meta struct {
	Count int `json:"count"`
	Total int `json:"total"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
