// Package response writes the uniform JSON envelope every endpoint returns.
//
// Successful responses carry `success: true`; failures carry `success: false`
// and a human-readable message, optionally with field-level errors.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	MsgValidationFailed = "Validation failed"
	MsgRouteNotFound    = "Route not found"
	MsgServerError      = "Server error"
	MsgUnauthorized     = "Not authorized to access this route"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the failure envelope.
type ErrorBody struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// MessageBody is a success envelope without payload.
type MessageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataBody is a success envelope with payload.
type DataBody struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// Message writes {success:true, message}.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageBody{Success: true, Message: msg})
}

// Data writes {success:true, message?, data}.
func Data(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, DataBody{Success: true, Message: msg, Data: data})
}

// Fail aborts the chain with {success:false, message}.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Success: false, Message: msg})
}

// ValidationFailed aborts with 400 and the field errors.
func ValidationFailed(c *gin.Context, fields []FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{
		Success: false,
		Message: MsgValidationFailed,
		Errors:  fields,
	})
}

// Internal logs err and aborts with 500. The error text is only exposed
// while gin runs in debug mode, which the server enables for development.
func Internal(c *gin.Context, err error) {
	slog.Error("request failed", "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
	body := ErrorBody{Success: false, Message: MsgServerError}
	if gin.Mode() == gin.DebugMode && err != nil {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// NotFoundRoute is installed as the engine's NoRoute handler.
func NotFoundRoute(c *gin.Context) {
	Fail(c, http.StatusNotFound, MsgRouteNotFound)
}

// Recovery converts a recovered panic into the uniform 500 body.
func Recovery(c *gin.Context, recovered any) {
	Internal(c, fmt.Errorf("panic: %v", recovered))
}

// BindingErrors turns a gin binding error into field errors. Errors that are
// not validator errors (malformed JSON, wrong types) become a single "body" entry.
func BindingErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: jsonFieldName(fe), Message: describe(fe)})
	}
	return out
}

func jsonFieldName(fe validator.FieldError) string {
	// Field() is the struct field name unless a tag name func was registered.
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func describe(fe validator.FieldError) string {
	field := jsonFieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
