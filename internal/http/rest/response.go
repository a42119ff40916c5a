package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vinmasci/bikepathmap/util"
	"github.com/vinmasci/bikepathmap/util/tracing"
)

// ServerResponse is the uniform JSON envelope every handler returns.
type ServerResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Status     string      `json:"status,omitempty"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"data,omitempty"`
}

func respondWithError(err error, message string, status string, tc *tracing.Context) *ServerResponse {
	if err != nil {
		log.Printf("[%s] %s: %v", requestID(tc), message, err)
	} else {
		log.Printf("[%s] %s", requestID(tc), message)
	}

	return &ServerResponse{
		Success:    false,
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func requestID(tc *tracing.Context) string {
	if tc == nil {
		return "-"
	}
	return tc.RequestID
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Println("failed to write response:", err)
	}
}

// writeErrorResponse writes an error envelope directly, for paths that
// run before a Handler is reached (middleware rejections).
func writeErrorResponse(w http.ResponseWriter, err error, status string, message string) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}

	resp := ServerResponse{
		Success:    false,
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
	body, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, body, resp.StatusCode)
}
