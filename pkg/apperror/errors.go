package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger Validation (LED) ----
// Permanent errors returned to the caller and never retried.

func ErrInsufficientFunds() *AppError {
	return New("LED_001", "Insufficient balance in account", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("LED_002", "Amount must be positive", http.StatusBadRequest)
}

func ErrDuplicateAccountName() *AppError {
	return New("LED_003", "Account name already exists in wallet", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("LED_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrSameAccount() *AppError {
	return New("LED_005", "Cannot transfer within the same account", http.StatusBadRequest)
}

func ErrUnknownAddress(address string) *AppError {
	return New("LED_006", fmt.Sprintf("Address %s is not tracked by any wallet", address), http.StatusNotFound)
}

// ---- Chain Backend (BCK) ----
// Surfaced immediately during synchronous backend calls; the operation is
// not attempted again automatically.

func ErrBackendUnavailable(err error) *AppError {
	return Wrap("BCK_001", "Chain backend unavailable", http.StatusBadGateway, err)
}

func ErrBackendRejected(err error) *AppError {
	return Wrap("BCK_002", "Chain backend rejected the request", http.StatusBadGateway, err)
}

// ---- System & Store (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// ErrConflictUnresolved is returned when the serializable transaction wrapper
// exhausts its retry budget. Distinguishable from genuine data errors so
// callers can treat it as transient overload.
func ErrConflictUnresolved(attempts int, err error) *AppError {
	return Wrap("SYS_002", fmt.Sprintf("Transaction conflict not resolved after %d attempts", attempts), http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a LED_002-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("LED_002", message, http.StatusBadRequest)
}
