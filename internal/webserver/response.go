package webserver

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/psidex/citygraph/internal/errors"
)

// maxJSONBody bounds every JSON request body. Multipart imports have their own limit.
const maxJSONBody = 16 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	_ = writeJSON(w, status, map[string]string{"error": message})
}

// readJSON decodes the request body into v, answering 400 itself on failure.
func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return err
	}
	return nil
}

// statusFor maps the sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsInvalidRequest(err):
		return http.StatusBadRequest
	case errors.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeStoreError answers with err's own message for client errors and with
// internalMsg otherwise, so file system details stay in the log.
func writeStoreError(w http.ResponseWriter, log *zap.SugaredLogger, err error, internalMsg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorw(internalMsg, "error", err)
		writeError(w, status, internalMsg)
		return
	}
	log.Debugw("request rejected", "status", status, "error", err)
	writeError(w, status, err.Error())
}
