package apperror

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
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

// ---- Validation (VAL) ----

// Validation returns a malformed-input error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrWorkspaceRequired() *AppError {
	return New("VAL_002", "Caller context is missing a workspace", http.StatusBadRequest)
}

// ---- Lookup (NF) ----

func ErrNotFound(entity string) *AppError {
	return New("NF_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Ledger Business Logic (LED) ----

func ErrInsufficientBalance(available, required decimal.Decimal) *AppError {
	return New("LED_001",
		fmt.Sprintf("Insufficient balance: available %s, required %s", available, required),
		http.StatusUnprocessableEntity)
}

func ErrInsufficientFeeBalance(available, required decimal.Decimal) *AppError {
	return New("LED_002",
		fmt.Sprintf("Insufficient fee balance: available %s, required %s", available, required),
		http.StatusUnprocessableEntity)
}

func ErrInvalidStateTransition(from, to string) *AppError {
	return New("LED_003",
		fmt.Sprintf("Illegal state transition %s -> %s", from, to),
		http.StatusConflict)
}

// ---- Uniqueness (DUP) ----

func ErrDuplicateHash() *AppError {
	return New("DUP_001", "Transaction hash already exists", http.StatusConflict)
}

func ErrDuplicateExternalTxID() *AppError {
	return New("DUP_002", "External transaction id already exists", http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
