package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount        = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrInvalidQuantity      = &AppError{http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be greater than zero"}
	ErrInsufficientFunds    = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds"}
	ErrInsufficientHoldings = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_HOLDINGS", "Sell quantity exceeds held quantity"}
	ErrUnknownSymbol        = &AppError{http.StatusUnprocessableEntity, "UNKNOWN_SYMBOL", "Symbol has no quoted price"}
	ErrEmailTaken           = &AppError{http.StatusConflict, "EMAIL_ALREADY_REGISTERED", "Email is already registered"}
	ErrInvalidCurrency      = &AppError{http.StatusBadRequest, "INVALID_CURRENCY", "Invalid currency"}

	ErrMissingIdempotencyKey = &AppError{http.StatusBadRequest, "MISSING_IDEMPOTENCY_KEY", "Idempotency-Key header is required"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
)
