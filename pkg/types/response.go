package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ActionResult is the storefront's flat response for cart and checkout
// actions. Info carries soft notices that are not failures.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Info    string `json:"info,omitempty"`
}

// StatusResult is returned by order cancel and return actions.
type StatusResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}
