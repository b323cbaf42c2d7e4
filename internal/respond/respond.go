// Package respond writes the JSON envelopes shared by every handler, so
// callers always see the same error shape regardless of where a request
// failed.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is the error envelope returned for every known failure class.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, errText, code, message string) {
	JSON(w, status, ErrorBody{Error: errText, Message: message, Code: code})
}

// NotFound is the fallback for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, http.StatusNotFound, "Not Found", "ROUTE_NOT_FOUND",
		fmt.Sprintf("Route %s not found", r.URL.Path))
}

// MethodNotAllowed is the fallback for matched routes with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Error(w, http.StatusMethodNotAllowed, "Method Not Allowed", "METHOD_NOT_ALLOWED",
		fmt.Sprintf("Method %s not allowed for route %s", r.Method, r.URL.Path))
}
