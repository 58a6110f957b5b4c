package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/feedback"
	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/middleware"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/remote"
)

// respondUpstream maps a failed upstream read to a response. Rejections keep the upstream
// status class; transport failures become 502 with the connection-error message.
func respondUpstream(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, fallback string) {
	msg := feedback.Describe(err, fallback)
	if rej, ok := remote.AsRejection(err); ok {
		status := http.StatusUnprocessableEntity
		switch rej.Status {
		case http.StatusUnauthorized:
			respond.Redirect(w, http.StatusUnauthorized, msg, middleware.LoginRoute)
			return
		case http.StatusForbidden, http.StatusNotFound:
			status = rej.Status
		}
		respond.Error(w, status, msg)
		return
	}
	logger.Warn("upstream call failed",
		zap.String("request_id", middleware.RequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	respond.Error(w, http.StatusBadGateway, msg)
}

// failureStatus is the status of a rejected form submit carrying msg.
func failureStatus(msg string) int {
	if msg == feedback.MsgConnectionError {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON payload")
	}
	return nil
}

// mustSession returns the session attached by the auth gate. Routes using it are always gated.
func mustSession(r *http.Request) models.Session {
	sess, _ := middleware.SessionFrom(r.Context())
	return sess
}
