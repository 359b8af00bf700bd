package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/nearmate-api/models"
)

// WriteJSON writes data as an application/json body with statusCode. The
// value is marshalled before anything is sent, so a marshalling failure still
// produces a clean 500 {statusCode, message} body.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		body, _ = json.Marshal(models.ErrorResponse{StatusCode: http.StatusInternalServerError, Message: "response encoding failed"})
		statusCode = http.StatusInternalServerError
		err = fmt.Errorf("encoding %T response failed: %w", data, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	n, writeErr := w.Write(body)
	if err != nil {
		return n, err
	}
	return n, writeErr
}

// WriteError writes the {statusCode, message} body every failed request gets.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{StatusCode: statusCode, Message: message}, statusCode)
}
