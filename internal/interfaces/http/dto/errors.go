package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain error codes pass through unchanged;
// these cover failures that never reach the application layer.
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes with a fixed HTTP status.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeInternal:   http.StatusInternalServerError,

	// Provisioning conflicts: the attribute is already claimed by a live company.
	"LEGAL_NAME_TAKEN": http.StatusConflict,
	"TAX_ID_TAKEN":     http.StatusConflict,
	"EMAIL_TAKEN":      http.StatusConflict,
	"PHONE_TAKEN":      http.StatusConflict,
	"ALREADY_EXISTS":   http.StatusConflict,

	// The external identity system rejected or failed the admin account.
	"ADMIN_PROVISIONING_FAILED": http.StatusBadGateway,
}

// GetHTTPStatus resolves an error code to its HTTP status.
// Codes without an explicit mapping fall back on their naming convention:
// INVALID_* are domain validation rejections, *_TAKEN are uniqueness
// conflicts. Anything else is treated as an internal fault.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusUnprocessableEntity
	}
	if strings.HasSuffix(code, "_TAKEN") {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
