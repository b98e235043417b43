package core

import (
	"encoding/json"
	"net/http"
)

// Standard response codes
const (
	CodeOkHealthy = "ok_healthy"
	CodeOkStats   = "ok_stats"

	CodeErrorInvalidReference = "err_invalid_reference"
	CodeErrorNotFound         = "err_not_found"
	CodeErrorInternal         = "err_internal"
	CodeErrorStatsDisabled    = "err_stats_disabled"
)

type jsonResponse struct {
	status int
	body   []byte
}

// JsonBasic contains the basic response fields. All responses must have them
type JsonBasic struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JsonWithData is used for structured JSON responses with data
type JsonWithData struct {
	JsonBasic
	Data interface{} `json:"data,omitempty"`
}

// HeadersJson go on every JSON response. Headers already on the response,
// such as Access-Control-Allow-Origin, are left alone.
var HeadersJson = map[string]string{
	"Content-Type":           "application/json; charset=utf-8",
	"X-Content-Type-Options": "nosniff",
	"Cache-Control":          "no-store",
}

// precomputeBasicResponse marshals the body once at init so error paths
// only copy bytes.
func precomputeBasicResponse(status int, code, message string) jsonResponse {
	body, _ := json.Marshal(JsonBasic{Status: status, Code: code, Message: message})
	return jsonResponse{status: status, body: body}
}

var (
	errorInvalidReference = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidReference, "Invalid webjars reference")
	errorNotFound         = precomputeBasicResponse(http.StatusNotFound, CodeErrorNotFound, "Resource not found")
	errorInternal         = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorInternal, "Internal server error")
	errorStatsDisabled    = precomputeBasicResponse(http.StatusNotFound, CodeErrorStatsDisabled, "Stats are not activated")
	okHealthy             = precomputeBasicResponse(http.StatusOK, CodeOkHealthy, "Service is healthy")
)

func setHeaders(w http.ResponseWriter, headers ...map[string]string) {
	for _, headerMap := range headers {
		for key, value := range headerMap {
			w.Header().Set(key, value)
		}
	}
}

// WriteJsonError writes a precomputed error response.
func WriteJsonError(w http.ResponseWriter, resp jsonResponse) {
	writeJsonResponse(w, resp)
}

func writeJsonResponse(w http.ResponseWriter, resp jsonResponse) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.status)
	_, _ = w.Write(resp.body)
}

// writeJsonWithData writes a structured JSON response with the provided data
func writeJsonWithData(w http.ResponseWriter, resp JsonWithData) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp)
}
