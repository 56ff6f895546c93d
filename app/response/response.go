// Package response writes JSON bodies and error envelopes for handlers.
package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/wizard"
)

// Error codes returned in the "code" field
const (
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeNotFound           = "not_found"
	CodeInvalidRequestBody = "invalid_request_body"
	CodeValidation         = "validation_failed"
	CodeInvalidFilter      = "invalid_filter"
	CodeInvalidDateRange   = "invalid_date_range"
	CodeInvalidStatus      = "invalid_status"
	CodeInvalidTransition  = "invalid_status_transition"
	CodeRoomUnavailable    = "room_unavailable"
	CodeRoomBooked         = "room_booked"
	CodeStepGuard          = "step_guard"
	CodeWrongStep          = "wrong_step"
	CodeWizardClosed       = "wizard_closed"
	CodePaymentRequired    = "payment_required"
	CodeSubmitInProgress   = "submission_in_progress"
	CodeImageTooLarge      = "image_too_large"
	CodeUnsupportedImage   = "unsupported_image_type"
	CodeStorageDisabled    = "storage_disabled"
	CodeInUse              = "in_use"
	CodeServiceInactive    = "service_inactive"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeExportFailed       = "export_failed"
	CodeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error writes {"error": msg, "code": code} with status
func Error(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// JSON writes v with status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ response.JSON: error encoding response: %v", err)
	}
}

// FromError maps a domain error to its HTTP status and code. Unknown errors are 500s
// and their text is not sent to the client.
func FromError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, CodeInternalError
	msg := "internal error"

	switch {
	case errors.Is(err, models.ErrNotFound):
		status, code = http.StatusNotFound, CodeNotFound
	case errors.Is(err, models.ErrInvalidDateRange):
		status, code = http.StatusBadRequest, CodeInvalidDateRange
	case errors.Is(err, models.ErrInvalidFilter):
		status, code = http.StatusBadRequest, CodeInvalidFilter
	case errors.Is(err, models.ErrInvalidStatus):
		status, code = http.StatusBadRequest, CodeInvalidStatus
	case errors.Is(err, models.ErrInvalidStatusTransition):
		status, code = http.StatusConflict, CodeInvalidTransition
	case errors.Is(err, models.ErrRoomUnavailable):
		status, code = http.StatusConflict, CodeRoomUnavailable
	case errors.Is(err, models.ErrServiceInactive):
		status, code = http.StatusConflict, CodeServiceInactive
	case errors.Is(err, models.ErrRoomBooked):
		status, code = http.StatusConflict, CodeRoomBooked
	case errors.Is(err, models.ErrImageTooLarge):
		status, code = http.StatusRequestEntityTooLarge, CodeImageTooLarge
	case errors.Is(err, models.ErrUnsupportedImageType):
		status, code = http.StatusUnsupportedMediaType, CodeUnsupportedImage
	case errors.Is(err, models.ErrStorageDisabled):
		status, code = http.StatusServiceUnavailable, CodeStorageDisabled
	case errors.Is(err, models.ErrInUse):
		status, code = http.StatusConflict, CodeInUse
	case errors.Is(err, models.ErrForbidden):
		status, code = http.StatusForbidden, CodeForbidden
	case errors.Is(err, models.ErrExportFailed):
		status, code = http.StatusBadGateway, CodeExportFailed
	case errors.Is(err, wizard.ErrStepGuard), errors.Is(err, wizard.ErrNoPreviousStep):
		status, code = http.StatusConflict, CodeStepGuard
	case errors.Is(err, wizard.ErrWrongStep):
		status, code = http.StatusConflict, CodeWrongStep
	case errors.Is(err, wizard.ErrWizardClosed):
		status, code = http.StatusConflict, CodeWizardClosed
	case errors.Is(err, wizard.ErrPaymentRequired), errors.Is(err, wizard.ErrPaymentNotApproved):
		status, code = http.StatusPaymentRequired, CodePaymentRequired
	case errors.Is(err, wizard.ErrSubmissionInProgress):
		status, code = http.StatusConflict, CodeSubmitInProgress
	case errors.Is(err, wizard.ErrGuestCountOutOfRange):
		status, code = http.StatusBadRequest, CodeValidation
	}
	if status != http.StatusInternalServerError {
		msg = err.Error()
	}
	Error(w, status, code, msg)
}
