package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the response wrapper shared by every portal endpoint.
type Envelope struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Data     any    `json:"data,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// JSON writes a response with data. Failed submits use it too so the form state can be rendered.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an error response without data.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Code: status, Message: message})
}

// Redirect tells the caller where to navigate next.
func Redirect(w http.ResponseWriter, status int, message, to string) {
	write(w, status, Envelope{Code: status, Message: message, Redirect: to})
}

// RedirectWith is Redirect with a payload.
func RedirectWith(w http.ResponseWriter, status int, message, to string, data any) {
	write(w, status, Envelope{Code: status, Message: message, Data: data, Redirect: to})
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("respond: encode payload failed", zap.Error(err))
	}
}
