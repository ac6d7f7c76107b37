package helpers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApiResponse is the envelope every endpoint answers with.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func NewApiResponse(statusCode int, data interface{}, message string) ApiResponse {
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	}
}

// RespondJSON writes a success envelope.
func RespondJSON(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, NewApiResponse(statusCode, data, message))
}

// ApiError is an error that already knows its HTTP status and a message
// safe to show the caller. Internal detail stays in Err for the logs.
type ApiError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ApiError) Unwrap() error { return e.Err }

func NewApiError(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

func ErrInvalidArgument(message string) *ApiError {
	return NewApiError(http.StatusBadRequest, message)
}

func ErrUnauthorized(message string) *ApiError {
	return NewApiError(http.StatusUnauthorized, message)
}

func ErrForbidden(message string) *ApiError {
	return NewApiError(http.StatusForbidden, message)
}

func ErrNotFound(message string) *ApiError {
	return NewApiError(http.StatusNotFound, message)
}

func ErrConflict(message string) *ApiError {
	return NewApiError(http.StatusConflict, message)
}

func ErrInternal(message string, err error) *ApiError {
	return &ApiError{StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

// RespondError normalizes any error into the envelope. Store timeouts
// surface as 503, duplicate keys as 409, missing documents as 404,
// everything unexpected as a plain 500 with no internal detail.
func RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	message := "internal server error"

	var apiErr *ApiError
	switch {
	case errors.As(err, &apiErr):
		statusCode = apiErr.StatusCode
		message = apiErr.Message
		if apiErr.Err != nil {
			log.Printf("❌ [RespondError] %d %s: %v\n", statusCode, message, apiErr.Err)
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		statusCode = http.StatusNotFound
		message = "resource not found"
	case mongo.IsDuplicateKeyError(err):
		statusCode = http.StatusConflict
		message = "resource already exists"
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		statusCode = http.StatusServiceUnavailable
		message = "service temporarily unavailable"
	default:
		log.Printf("❌ [RespondError] unexpected: %v\n", err)
	}

	c.JSON(statusCode, NewApiResponse(statusCode, nil, message))
}
